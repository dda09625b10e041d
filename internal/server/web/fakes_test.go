package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gpai/case-portal/internal/logging"
	"github.com/gpai/case-portal/internal/server/auth"
	"github.com/gpai/case-portal/internal/server/config"
	"github.com/gpai/case-portal/internal/server/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserService struct {
	signUpFunc  func(ctx context.Context, email, password, confirmPassword string) (*models.User, error)
	signInFunc  func(ctx context.Context, email, password string) (string, error)
	getUserFunc func(ctx context.Context, id string) (*models.User, error)
	confirmFunc func(ctx context.Context, token string) error
	requestFunc func(ctx context.Context, email string) error
	resetFunc   func(ctx context.Context, token, password string) error
}

func (f *fakeUserService) SignUp(ctx context.Context, email, password, confirmPassword string) (*models.User, error) {
	return f.signUpFunc(ctx, email, password, confirmPassword)
}

func (f *fakeUserService) SignIn(ctx context.Context, email, password string) (string, error) {
	return f.signInFunc(ctx, email, password)
}

func (f *fakeUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return f.getUserFunc(ctx, id)
}

func (f *fakeUserService) ConfirmEmail(ctx context.Context, token string) error {
	return f.confirmFunc(ctx, token)
}

func (f *fakeUserService) RequestPasswordReset(ctx context.Context, email string) error {
	return f.requestFunc(ctx, email)
}

func (f *fakeUserService) ResetPassword(ctx context.Context, token, password string) error {
	return f.resetFunc(ctx, token, password)
}

type fakeSubmissionService struct {
	listCalled bool

	uploadFunc func(ctx context.Context, ownerID, name, mimeType string, size int64, body io.Reader) (*models.Submission, error)
	listFunc   func(ctx context.Context, ownerID string) ([]*models.Submission, error)
	deleteFunc func(ctx context.Context, ownerID, id string) error
}

func (f *fakeSubmissionService) Upload(ctx context.Context, ownerID string, name string, mimeType string, size int64, body io.Reader) (*models.Submission, error) {
	return f.uploadFunc(ctx, ownerID, name, mimeType, size, body)
}

func (f *fakeSubmissionService) List(ctx context.Context, ownerID string) ([]*models.Submission, error) {
	f.listCalled = true
	return f.listFunc(ctx, ownerID)
}

func (f *fakeSubmissionService) Delete(ctx context.Context, ownerID string, id string) error {
	return f.deleteFunc(ctx, ownerID, id)
}

func testUser() *models.User {
	now := time.Now()
	return &models.User{
		ID:          "user-1",
		Email:       "user@example.com",
		ConfirmedAt: &now,
	}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.TemplatesGlob = "../../../templates/*"
	return cfg
}

func newTestServer(t *testing.T, users UserService, submissions SubmissionService) *Server {
	t.Helper()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return NewServer(testConfig(), logger, users, submissions)
}

// sessionFor issues a valid session cookie for the given account id.
func sessionFor(t *testing.T, cfg *config.Config, userID string) *http.Cookie {
	t.Helper()

	token, err := auth.GenerateToken(userID, []byte(cfg.SecretKey), time.Minute)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}
