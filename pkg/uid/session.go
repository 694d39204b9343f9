package uid

import "github.com/google/uuid"

// GenerateSessionID returns a random identifier for a game session.
func GenerateSessionID() string {
	return uuid.NewString()
}
