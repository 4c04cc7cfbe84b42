// Package models contains the server's domain types.
package models

// User is a registered account. PasswordHash holds the encoded Argon2id
// hash and is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	Favorites []int64 `json:"favorites"`
	Watchlist []int64 `json:"watches"`
}
