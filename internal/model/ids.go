package model

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
)

// GenerateID generates a short, URL-safe ID using UUID v4 encoded in base32.
func GenerateID() string {
	id := uuid.New()
	// 16 bytes -> 26 base32 characters, no padding
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(id[:])
	return strings.ToLower(encoded)
}

// ValidateID reports whether id looks like an identifier this program can hold.
// Accepts base32 IDs generated here and hyphenated UUIDs from imported backups.
func ValidateID(id string) bool {
	if len(id) < 4 || len(id) > 40 {
		return false
	}
	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}
