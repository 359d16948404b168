package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// GameClaims binds a bearer to one game seat.
type GameClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// GenerateGameToken issues the token handed out when a game is created.
func GenerateGameToken(gameID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &GameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateGameToken checks the signature and expiry and returns the claims.
func ValidateGameToken(tokenString string, secret []byte) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GameClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GameClaims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// AuthorizeGame validates tokenString and requires it to name gameID.
func AuthorizeGame(tokenString, gameID string, secret []byte) error {
	claims, err := ValidateGameToken(tokenString, secret)
	if err != nil {
		return err
	}
	if claims.GameID != gameID {
		return ErrInvalidToken
	}
	return nil
}
