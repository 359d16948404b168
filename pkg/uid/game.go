package uid

import "github.com/google/uuid"

// GenerateGameID returns a random UUID string used as a game ID.
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether s parses as an ID from GenerateGameID.
func IsGameID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
