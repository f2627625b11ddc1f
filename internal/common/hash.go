package common

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Hex hashes the input with SHA-256 and returns lowercase hex.
func Sha256Hex(input string) string {
	digest := sha256.Sum256([]byte(input))
	return hex.EncodeToString(digest[:])
}
