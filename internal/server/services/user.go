// Package services contains the server's business logic: the credential
// store (UserService), the per-user membership sets (MembershipService)
// and the ListService facade the transport layer talks to.
package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/dmitrijs2005/dramahub/internal/cryptox"
	"github.com/dmitrijs2005/dramahub/internal/dbx"
	"github.com/dmitrijs2005/dramahub/internal/logging"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
	"github.com/dmitrijs2005/dramahub/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/dramahub/internal/server/repositories/repomanager"
)

// UserService owns user accounts and their password hashes.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "user_service"),
	}
}

// dummyHash is verified against when the login email is unknown so that
// both failure paths cost one Argon2id derivation.
var dummyHash = sync.OnceValue(func() string {
	return cryptox.HashPassword(string(common.GenerateRandByteArray(16)))
})

// SignUp registers a new user. The unique constraint on email decides
// duplicates, so two concurrent sign-ups with one email cannot both win.
func (s *UserService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, validationError("name, email and password are required")
	}

	user := &models.User{Name: name, Email: email, PasswordHash: cryptox.HashPassword(password)}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, storageError("sign up", err)
	}

	u.Favorites = []int64{}
	u.Watchlist = []int64{}

	s.logger.Info(ctx, "user signed up", "user_id", u.ID)
	return u, nil
}

// Login checks credentials and returns the user with both membership
// lists. Unknown email and wrong password are the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, dummyHash())
			return nil, common.ErrorInvalidCredentials
		}
		return nil, storageError("login", err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	sets := s.repomanager.Memberships(s.db)
	if user.Favorites, err = listIDs(ctx, sets, models.SetFavorites, user.ID); err != nil {
		return nil, storageError("login", err)
	}
	if user.Watchlist, err = listIDs(ctx, sets, models.SetWatchlist, user.ID); err != nil {
		return nil, storageError("login", err)
	}

	return user, nil
}

// ChangePassword replaces the user's hash after checking the current
// password. Input is validated before any lookup.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next, confirm string) error {
	switch {
	case current == "" || next == "" || confirm == "":
		return validationError("all password fields are required")
	case next != confirm:
		return validationError("new password and confirmation do not match")
	case len(next) < common.MinPasswordLength:
		return validationError("new password is too short")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUserNotFound
		}
		return storageError("change password", err)
	}

	if !cryptox.VerifyPassword(current, user.PasswordHash) {
		return common.ErrorInvalidCredentials
	}

	if err := repo.UpdatePasswordHash(ctx, userID, cryptox.HashPassword(next)); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUserNotFound
		}
		return storageError("change password", err)
	}

	s.logger.Info(ctx, "password changed", "user_id", userID)
	return nil
}

// DeleteUser removes the user and both membership sets in one
// transaction.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	var removed int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sets := s.repomanager.Memberships(tx)
		for _, kind := range []models.SetKind{models.SetFavorites, models.SetWatchlist} {
			n, err := sets.DeleteAllForUser(ctx, kind, userID)
			if err != nil {
				return err
			}
			removed += n
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUserNotFound
		}
		return storageError("delete user", err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", userID, "memberships_removed", removed)
	return nil
}

// Exists reports whether userID names a registered user.
func (s *UserService) Exists(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.repomanager.Users(s.db).Exists(ctx, userID)
	if err != nil {
		return false, storageError("user lookup", err)
	}
	return ok, nil
}

func listIDs(ctx context.Context, repo memberships.Repository, kind models.SetKind, userID int64) ([]int64, error) {
	recs, err := repo.List(ctx, kind, userID)
	if err != nil {
		return nil, err
	}
	return memberships.ItemIDs(recs), nil
}
