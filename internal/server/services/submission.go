package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gpai/case-portal/internal/logging"
	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/server/repositories/repomanager"
	"github.com/gpai/case-portal/internal/server/storage"
	"github.com/gpai/case-portal/internal/shared"
)

// MaxSubmissionSize is the upload cap: 20 MiB.
const MaxSubmissionSize = 20 * 1024 * 1024

// allowedMimeTypes lists the accepted submission formats: PDF, legacy
// PowerPoint and OOXML PowerPoint.
var allowedMimeTypes = map[string]struct{}{
	"application/pdf":                {},
	"application/vnd.ms-powerpoint":  {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
}

// SubmissionService implements the upload/list/delete lifecycle of
// competition files.
type SubmissionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
}

func NewSubmissionService(db *sql.DB, rm repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *SubmissionService {
	return &SubmissionService{
		db:          db,
		repomanager: rm,
		store:       store,
		logger:      logger,
	}
}

// ValidateFile applies the local selection rules: MIME allow-list first,
// then the size cap. It runs before any storage call.
func ValidateFile(mimeType string, size int64) error {
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return shared.ErrorBadFileType
	}
	if size > MaxSubmissionSize {
		return shared.ErrorFileTooBig
	}
	return nil
}

// StorageKey derives the object key for an upload: namespaced by owner,
// with a random identifier instead of a timestamp so rapid repeated
// uploads by one owner cannot collide.
func StorageKey(ownerID string, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s%s", ownerID, uuid.New(), ext)
}

// Upload validates the candidate, stores the binary, then inserts the
// metadata row. A storage failure aborts before the insert; an insert
// failure after a successful store leaves the orphan object behind (no
// compensating rollback) and is reported as-is.
func (s *SubmissionService) Upload(ctx context.Context, ownerID string, name string, mimeType string, size int64, body io.Reader) (*models.Submission, error) {
	if err := ValidateFile(mimeType, size); err != nil {
		return nil, err
	}

	key := StorageKey(ownerID, name)

	if err := s.store.Put(ctx, key, body, size, mimeType); err != nil {
		return nil, err
	}

	sub := &models.Submission{
		OwnerID:    ownerID,
		Name:       name,
		Size:       size,
		MimeType:   mimeType,
		URL:        s.store.PublicURL(key),
		StorageKey: key,
	}

	created, err := s.repomanager.Submissions(s.db).Create(ctx, sub)
	if err != nil {
		s.logger.Error(ctx, "metadata insert failed after object store write, object orphaned",
			"owner_id", ownerID, "storage_key", key, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "submission uploaded", "owner_id", ownerID, "id", created.ID, "size", size)
	return created, nil
}

// List returns the owner's submissions, newest first.
func (s *SubmissionService) List(ctx context.Context, ownerID string) ([]*models.Submission, error) {
	return s.repomanager.Submissions(s.db).SelectByOwner(ctx, ownerID)
}

// Delete removes the stored object first, then the metadata row. If object
// removal fails the row is left intact and the error is returned; the
// caller surfaces a generic message.
func (s *SubmissionService) Delete(ctx context.Context, ownerID string, id string) error {
	repo := s.repomanager.Submissions(s.db)

	sub, err := repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, sub.StorageKey); err != nil {
		s.logger.Error(ctx, "object removal failed, metadata row kept",
			"owner_id", ownerID, "id", id, "storage_key", sub.StorageKey, "error", err)
		return err
	}

	if err := repo.Delete(ctx, ownerID, id); err != nil {
		s.logger.Error(ctx, "metadata delete failed after object removal, row orphaned",
			"owner_id", ownerID, "id", id, "error", err)
		return err
	}

	s.logger.Info(ctx, "submission deleted", "owner_id", ownerID, "id", id)
	return nil
}
