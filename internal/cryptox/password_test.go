package cryptox

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	encoded := HashPassword("secret-password")

	parts := strings.Split(encoded, ":")
	require.Len(t, parts, 2)

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, salt, saltLength)

	key, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, key, keyLength)
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	a := HashPassword("same")
	b := HashPassword("same")
	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("same", a))
	assert.True(t, VerifyPassword("same", b))
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	encoded := HashPassword("hunter22")

	assert.True(t, VerifyPassword("hunter22", encoded))
	assert.False(t, VerifyPassword("hunter23", encoded))
	assert.False(t, VerifyPassword("", encoded))
}

func TestVerifyPassword_KnownVector(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := deriveKey([]byte("p@ss"), salt)
	encoded := base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(key)

	assert.True(t, VerifyPassword("p@ss", encoded))
	assert.False(t, VerifyPassword("p@sS", encoded))
}

func TestVerifyPassword_Malformed(t *testing.T) {
	good := HashPassword("pw")
	parts := strings.Split(good, ":")

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"no separator", parts[0] + parts[1]},
		{"three parts", good + ":extra"},
		{"bad salt base64", "!!!:" + parts[1]},
		{"bad key base64", parts[0] + ":***"},
		{"short key", parts[0] + ":" + base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				assert.False(t, VerifyPassword("pw", tt.encoded))
			})
		})
	}
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual([]byte("abc"), []byte("abc")))
	assert.True(t, ConstantTimeEqual(nil, []byte{}))
	assert.False(t, ConstantTimeEqual([]byte("abc"), []byte("abd")))
	assert.False(t, ConstantTimeEqual([]byte("abc"), []byte("abcd")))
	assert.False(t, ConstantTimeEqual([]byte("xbc"), []byte("abc")))
}
