// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"errors"
	"fmt"
)

var ErrInvalidEditToken = errors.New("invalid edit token")

// Identifier lengths. Poll and suggestion IDs appear in URLs and stay
// short; the edit token is a bearer secret and gets enough length to
// resist guessing.
const (
	IDLength        = 10
	EditTokenLength = 32
)

// idAlphabet has exactly 64 URL-safe characters, so one random byte
// masked to 6 bits maps to one character without modulo bias.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// GenerateID creates a random URL-safe string of the given length.
// No uniqueness check is performed; at these lengths a primary-key
// collision on insert is the fallback detection and is treated as a
// fatal store error if it ever fires.
func GenerateID(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	for i := range b {
		b[i] = idAlphabet[b[i]&63]
	}
	return string(b), nil
}

// NewEditToken creates the bearer secret returned once at poll
// creation and compared verbatim on privileged operations.
func NewEditToken() (string, error) {
	return GenerateID(EditTokenLength)
}

// ValidateEditToken compares a provided token against the stored one.
// Constant-time comparison; the token is a capability, not a session.
func ValidateEditToken(provided, stored string) error {
	if !hmac.Equal([]byte(provided), []byte(stored)) {
		return ErrInvalidEditToken
	}
	return nil
}
