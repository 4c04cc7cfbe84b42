package memberships

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dramahub/internal/dbx"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, kind models.SetKind, userID, itemID int64) (bool, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (user_id, drama_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, drama_id) DO NOTHING
		 `, kind.Table())

	res, err := r.db.ExecContext(ctx, query, userID, itemID)
	return rowsChanged(res, err)
}

func (r *PostgresRepository) Remove(ctx context.Context, kind models.SetKind, userID, itemID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND drama_id = $2`, kind.Table())

	res, err := r.db.ExecContext(ctx, query, userID, itemID)
	return rowsChanged(res, err)
}

func (r *PostgresRepository) List(ctx context.Context, kind models.SetKind, userID int64) ([]models.MembershipRecord, error) {
	query := fmt.Sprintf(
		`SELECT id, user_id, drama_id FROM %s
		 WHERE user_id = $1
		 ORDER BY id
		 `, kind.Table())

	return queryRecords(ctx, r.db, query, userID)
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, kind models.SetKind, userID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, kind.Table())

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
