package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPayload returns the hex-encoded SHA-256 digest of a serialized entity
// payload. The device agent uses it to detect local edits without comparing
// whole payloads.
func HashPayload(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
