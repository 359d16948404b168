package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const gameCookiePrefix = "game_token_"

// GameCookieName is per game so one browser can hold several seats.
func GameCookieName(gameID string) string {
	return gameCookiePrefix + gameID
}

func SetGameCookie(w http.ResponseWriter, gameID, token string, ttl time.Duration, isProduction bool) {
	cookie := &http.Cookie{
		Name:     GameCookieName(gameID),
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   isProduction, // Only require HTTPS in production
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearGameCookie(w http.ResponseWriter, gameID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     GameCookieName(gameID),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest looks at the game cookie, then the Authorization
// header, then the token query parameter used by websocket clients.
func GetTokenFromRequest(r *http.Request, gameID string) (string, error) {
	if cookie, err := r.Cookie(GameCookieName(gameID)); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token, nil
		}
		return authHeader, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", errors.New("no game token found in cookie, header or query")
}
