// Package memberships stores the per-user favorites and watchlist sets.
//
// Every set lives in its own table with a unique (user_id, drama_id) key.
// Add relies on that key: a duplicate insert is a no-op, never an error,
// so concurrent adds of the same item leave exactly one row. Records are
// listed in ascending id order, which is insertion order.
package memberships

import (
	"context"

	"github.com/dmitrijs2005/dramahub/internal/server/models"
)

type Repository interface {
	// Add inserts the item and reports whether a new row was created.
	Add(ctx context.Context, kind models.SetKind, userID, itemID int64) (bool, error)
	// Remove deletes the item and reports whether a row existed.
	Remove(ctx context.Context, kind models.SetKind, userID, itemID int64) (bool, error)
	List(ctx context.Context, kind models.SetKind, userID int64) ([]models.MembershipRecord, error)
	// DeleteAllForUser removes the user's whole set and returns the number
	// of rows deleted.
	DeleteAllForUser(ctx context.Context, kind models.SetKind, userID int64) (int64, error)
}

// ItemIDs projects records to their item ids, keeping order. The result is
// never nil.
func ItemIDs(records []models.MembershipRecord) []int64 {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ItemID)
	}
	return ids
}
