package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// charset is the full alphanumeric alphabet: 62 characters, case-sensitive.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ShortCodeLength is the length of generated short codes.
const ShortCodeLength = 8

// GenerateShortCode generates a random string of fixed length drawn
// uniformly from the alphanumeric charset.
func GenerateShortCode(length int) (string, error) {
	if length <= 0 {
		length = ShortCodeLength
	}
	return gonanoid.Generate(charset, length)
}

// NewID generates a UUID string used as a record identifier.
func NewID() string {
	return uuid.NewString()
}
