// Package auth covers password hashing and token issuance for the user
// surface.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize and HashSize match the stored credential layout: the salt is
	// prepended to the derived hash before base64 encoding.
	SaltSize = 16
	HashSize = 20

	hashIterations = 10000
)

func GenerateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateHash derives size bytes from value and salt with PBKDF2-SHA512.
func GenerateHash(value string, salt []byte, size int) []byte {
	return pbkdf2.Key([]byte(value), salt, hashIterations, size, sha512.New)
}
