package submissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gpai/case-portal/internal/dbx"
	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/shared"
)

// PostgresRepository implements submission metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Submission) (*models.Submission, error) {
	query := `
		INSERT INTO submissions (owner_id, name, size, mime_type, url, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.OwnerID, s.Name, s.Size, s.MimeType, s.URL, s.StorageKey).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// SelectByOwner returns all submissions of ownerID, newest first.
func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Submission, error) {
	query := `
		SELECT id, owner_id, name, size, mime_type, url, storage_key, created_at FROM submissions
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select submissions: %w", err)
	}
	defer rows.Close()

	var result []*models.Submission
	for rows.Next() {
		var item models.Submission
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Size,
			&item.MimeType, &item.URL, &item.StorageKey, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single submission, scoped to its owner.
func (r *PostgresRepository) GetByID(ctx context.Context, ownerID string, id string) (*models.Submission, error) {
	query := `
		SELECT id, owner_id, name, size, mime_type, url, storage_key, created_at FROM submissions
		WHERE owner_id = $1 AND id = $2
	`

	result := &models.Submission{}
	err := r.db.QueryRowContext(ctx, query, ownerID, id).
		Scan(&result.ID, &result.OwnerID, &result.Name, &result.Size,
			&result.MimeType, &result.URL, &result.StorageKey, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select submission: %w", err)
	}
	return result, nil
}

// Delete removes the metadata row. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, id string) error {
	query := `DELETE FROM submissions WHERE owner_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return shared.ErrorNotFound
	}

	return nil
}
