package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/dmitrijs2005/dramahub/internal/dbx"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/metrics"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
	"github.com/dmitrijs2005/dramahub/internal/server/repositories/repomanager"
)

// MembershipService manages the favorites and watchlist sets. Adds and
// removes are idempotent; every operation on an unknown user fails with
// common.ErrorUserNotFound.
type MembershipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewMembershipService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *MembershipService {
	return &MembershipService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "membership_service"),
	}
}

func (s *MembershipService) checkKind(kind models.SetKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown set %q", common.ErrorValidation, string(kind))
	}
	return nil
}

func (s *MembershipService) requireUser(ctx context.Context, db dbx.DBTX, userID int64) error {
	ok, err := s.repomanager.Users(db).Exists(ctx, userID)
	if err != nil {
		return storageError("user lookup", err)
	}
	if !ok {
		return common.ErrorUserNotFound
	}
	return nil
}

// Add puts itemID into the user's set. Adding an item already present
// leaves the set unchanged.
func (s *MembershipService) Add(ctx context.Context, kind models.SetKind, userID, itemID int64) error {
	if err := s.checkKind(kind); err != nil {
		return err
	}
	if err := s.requireUser(ctx, s.db, userID); err != nil {
		return err
	}

	added, err := s.repomanager.Memberships(s.db).Add(ctx, kind, userID, itemID)
	if err != nil {
		// the user may have been deleted between the check and the insert
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorUserNotFound
		}
		return storageError("add item", err)
	}

	outcome := "noop"
	if added {
		outcome = "added"
	}
	metrics.MembershipMutations.WithLabelValues(string(kind), "add", outcome).Inc()
	s.logger.Debug(ctx, "membership add", "set", kind, "user_id", userID, "item_id", itemID, "outcome", outcome)

	return nil
}

// Remove takes itemID out of the user's set. Removing an absent item is
// not an error.
func (s *MembershipService) Remove(ctx context.Context, kind models.SetKind, userID, itemID int64) error {
	if err := s.checkKind(kind); err != nil {
		return err
	}
	if err := s.requireUser(ctx, s.db, userID); err != nil {
		return err
	}

	removed, err := s.repomanager.Memberships(s.db).Remove(ctx, kind, userID, itemID)
	if err != nil {
		return storageError("remove item", err)
	}

	outcome := "noop"
	if removed {
		outcome = "removed"
	}
	metrics.MembershipMutations.WithLabelValues(string(kind), "remove", outcome).Inc()
	s.logger.Debug(ctx, "membership remove", "set", kind, "user_id", userID, "item_id", itemID, "outcome", outcome)

	return nil
}

// List returns the user's items in insertion order. An empty set is an
// empty, non-nil slice.
func (s *MembershipService) List(ctx context.Context, kind models.SetKind, userID int64) ([]int64, error) {
	if err := s.checkKind(kind); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	ids, err := listIDs(ctx, s.repomanager.Memberships(s.db), kind, userID)
	if err != nil {
		return nil, storageError("list items", err)
	}
	return ids, nil
}
