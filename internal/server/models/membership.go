package models

import "fmt"

// SetKind names one of the per-user membership sets.
type SetKind string

const (
	SetFavorites SetKind = "favorites"
	SetWatchlist SetKind = "watchlist"
)

// Table returns the storage table backing the set.
func (k SetKind) Table() string {
	switch k {
	case SetFavorites:
		return "favorites"
	case SetWatchlist:
		return "watches"
	}
	panic(fmt.Sprintf("unknown set kind %q", string(k)))
}

func (k SetKind) Valid() bool {
	return k == SetFavorites || k == SetWatchlist
}

// MembershipRecord is one catalog item in a user's set. ID increases with
// every insert and defines the set's order.
type MembershipRecord struct {
	ID     int64
	UserID int64
	ItemID int64
}
