package memberships

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/dramahub/internal/dbx"
	"github.com/dmitrijs2005/dramahub/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, kind models.SetKind, userID, itemID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (user_id, drama_id) VALUES (?, ?)
		ON CONFLICT(user_id, drama_id) DO NOTHING
	`, kind.Table()), userID, itemID)
	return rowsChanged(res, err)
}

func (r *SQLiteRepository) Remove(ctx context.Context, kind models.SetKind, userID, itemID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = ? AND drama_id = ?`, kind.Table()), userID, itemID)
	return rowsChanged(res, err)
}

func (r *SQLiteRepository) List(ctx context.Context, kind models.SetKind, userID int64) ([]models.MembershipRecord, error) {
	return queryRecords(ctx, r.db,
		fmt.Sprintf(`SELECT id, user_id, drama_id FROM %s WHERE user_id = ? ORDER BY id`, kind.Table()), userID)
}

func (r *SQLiteRepository) DeleteAllForUser(ctx context.Context, kind models.SetKind, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE user_id = ?`, kind.Table()), userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func rowsChanged(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func queryRecords(ctx context.Context, db dbx.DBTX, query string, args ...any) ([]models.MembershipRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.MembershipRecord, 0)
	for rows.Next() {
		var rec models.MembershipRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ItemID); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate membership rows: %w", err)
	}

	return result, nil
}
