// Package cryptox implements password hashing for stored credentials.
//
// Passwords are stretched with Argon2id using fixed parameters and a fresh
// 16-byte salt per hash. The stored form is
//
//	base64(salt) + ":" + base64(key)
//
// using standard padded base64. Hashes produced by older deployments use the
// same format and parameters, so the constants below must not change.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltLength   = 16
	keyLength    = 32
	argonTime    = 4
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 8

	separator = ":"
)

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, keyLength)
}

// HashPassword returns the encoded Argon2id hash of password with a new
// random salt. Two calls with the same password yield different values.
func HashPassword(password string) string {
	salt := common.GenerateRandByteArray(saltLength)
	key := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)

	return base64.StdEncoding.EncodeToString(salt) + separator + base64.StdEncoding.EncodeToString(key)
}

// VerifyPassword reports whether password matches the encoded hash.
// A malformed encoded value is a mismatch, never an error.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, separator)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	stored, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	candidate := deriveKey([]byte(password), salt)
	defer common.WipeByteArray(candidate)

	return ConstantTimeEqual(candidate, stored)
}

// ConstantTimeEqual compares a and b without an early exit on the first
// differing byte. Slices of different length are unequal.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
