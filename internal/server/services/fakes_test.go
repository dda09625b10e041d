package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gpai/case-portal/internal/dbx"
	"github.com/gpai/case-portal/internal/logging"
	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/server/repositories/submissions"
	"github.com/gpai/case-portal/internal/server/repositories/tokens"
	"github.com/gpai/case-portal/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createCalled bool
	createOut    *models.User
	createErr    error

	getByEmailOut *models.User
	getByEmailErr error

	getByIDOut *models.User
	getByIDErr error

	confirmedIDs []string
	confirmErr   error

	updatedHashes map[string]string
	updateErr     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.createCalled = true
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeUsersRepo) MarkConfirmed(ctx context.Context, id string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedIDs = append(f.confirmedIDs, id)
	return nil
}

func (f *fakeUsersRepo) UpdatePasswordHash(ctx context.Context, id string, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updatedHashes == nil {
		f.updatedHashes = map[string]string{}
	}
	f.updatedHashes[id] = hash
	return nil
}

type fakeTokensRepo struct {
	created   []*models.Token
	createErr error

	findOut *models.Token
	findErr error

	deleted   []string
	deleteErr error
}

func (f *fakeTokensRepo) Create(ctx context.Context, userID string, token string, purpose string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, &models.Token{
		Token:     token,
		UserID:    userID,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(validity),
	})
	return nil
}

func (f *fakeTokensRepo) Find(ctx context.Context, token string) (*models.Token, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeTokensRepo) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeSubmissionsRepo struct {
	createCalled bool
	createOut    *models.Submission
	createErr    error

	selectOut []*models.Submission
	selectErr error

	getOut *models.Submission
	getErr error

	deleted   []string
	deleteErr error
}

func (f *fakeSubmissionsRepo) Create(ctx context.Context, s *models.Submission) (*models.Submission, error) {
	f.createCalled = true
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	s.ID = "s-1"
	s.CreatedAt = time.Now()
	return s, nil
}

func (f *fakeSubmissionsRepo) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Submission, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selectOut, nil
}

func (f *fakeSubmissionsRepo) GetByID(ctx context.Context, ownerID string, id string) (*models.Submission, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeSubmissionsRepo) Delete(ctx context.Context, ownerID string, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeRepoManager hands out the same fakes regardless of the DB handle.
type fakeRepoManager struct {
	users *fakeUsersRepo
	toks  *fakeTokensRepo
	subs  *fakeSubmissionsRepo
}

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	return f.users
}

func (f *fakeRepoManager) Tokens(db dbx.DBTX) tokens.Repository {
	return f.toks
}

func (f *fakeRepoManager) Submissions(db dbx.DBTX) submissions.Repository {
	return f.subs
}

// --- fake collaborators ---

type fakeStore struct {
	putKeys []string
	putErr  error

	removed   []string
	removeErr error
}

func (f *fakeStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	return nil
}

func (f *fakeStore) Remove(ctx context.Context, keys ...string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, keys...)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "http://store/uploads/" + key
}

type fakeMailer struct {
	sentTo       []string
	sentSubjects []string
	sentBodies   []string
	sendErr      error
}

func (f *fakeMailer) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentTo = append(f.sentTo, to)
	f.sentSubjects = append(f.sentSubjects, subject)
	f.sentBodies = append(f.sentBodies, htmlBody)
	return nil
}
