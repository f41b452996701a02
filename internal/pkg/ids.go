package pkg

import "github.com/google/uuid"

// GenerateSessionID - generates a new unique session identifier.
func GenerateSessionID() string {
	return uuid.NewString()
}
