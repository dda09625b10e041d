package submissions

import (
	"context"

	"github.com/gpai/case-portal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Submission) (*models.Submission, error)
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Submission, error)
	GetByID(ctx context.Context, ownerID string, id string) (*models.Submission, error)
	Delete(ctx context.Context, ownerID string, id string) error
}
