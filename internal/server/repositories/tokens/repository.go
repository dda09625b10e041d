package tokens

import (
	"context"
	"time"

	"github.com/gpai/case-portal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, purpose string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.Token, error)
	Delete(ctx context.Context, token string) error
}
