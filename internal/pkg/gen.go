package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateMatchID returns a short random identifier for a new match.
func GenerateMatchID() (string, error) {
	return randomHex(4)
}

// GeneratePlayerID returns a random identifier for an anonymous player.
func GeneratePlayerID() (string, error) {
	return randomHex(8)
}

func randomHex(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
