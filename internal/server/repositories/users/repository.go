package users

import (
	"context"

	"github.com/gpai/case-portal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	MarkConfirmed(ctx context.Context, id string) error
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
}
