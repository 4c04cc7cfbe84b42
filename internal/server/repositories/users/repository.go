// Package users stores registered accounts.
//
// Lookups return common.ErrorNotFound when no row matches. Driver errors
// are wrapped with %w so callers can classify constraint violations with
// dbx.ClassifyConstraint.
package users

import (
	"context"

	"github.com/dmitrijs2005/dramahub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
}
