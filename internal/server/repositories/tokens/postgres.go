// Package tokens provides a PostgreSQL-backed repository for single-use
// email tokens (account confirmation and password reset).
package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gpai/case-portal/internal/dbx"
	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/shared"
)

// PostgresRepository implements token storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new token for userID with an expiry time of now+validity.
func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, purpose string, validity time.Duration) error {
	query := `
		INSERT INTO tokens (token, user_id, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, token, userID, purpose, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

// Find returns the token row for the given token string.
// If not found, it returns shared.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.Token, error) {
	query := `
		SELECT token, user_id, purpose, expires_at
		FROM tokens
		WHERE token = $1
	`
	row := &models.Token{}
	if err := r.db.QueryRowContext(ctx, query, token).
		Scan(&row.Token, &row.UserID, &row.Purpose, &row.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

// Delete removes a token by its token string.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
