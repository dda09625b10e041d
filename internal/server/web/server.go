// Package web wires the portal's HTTP surface: server-rendered pages, the
// JSON API behind them, and the session-gate middleware guarding the
// dashboard.
package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpai/case-portal/internal/logging"
	"github.com/gpai/case-portal/internal/server/config"
	"github.com/gpai/case-portal/internal/server/models"
)

// genericErrorMessage is the fallback shown when an error carries no
// message we are willing to expose.
const genericErrorMessage = "An error occurred"

// UserService is the account surface the handlers need.
type UserService interface {
	SignUp(ctx context.Context, email, password, confirmPassword string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	ConfirmEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

// SubmissionService is the submission surface the handlers need.
type SubmissionService interface {
	Upload(ctx context.Context, ownerID string, name string, mimeType string, size int64, body io.Reader) (*models.Submission, error)
	List(ctx context.Context, ownerID string) ([]*models.Submission, error)
	Delete(ctx context.Context, ownerID string, id string) error
}

// Server owns the gin engine and the services behind it.
type Server struct {
	router      *gin.Engine
	logger      logging.Logger
	config      *config.Config
	users       UserService
	submissions SubmissionService
}

func NewServer(cfg *config.Config, logger logging.Logger, users UserService, submissions SubmissionService) *Server {
	s := &Server{
		logger:      logger,
		config:      cfg,
		users:       users,
		submissions: submissions,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		s.logger.Error(c.Request.Context(), "panic in handler", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
	}))

	if s.config.TemplatesGlob != "" {
		r.LoadHTMLGlob(s.config.TemplatesGlob)
		r.Static("/static", "./static")
	}

	// Pages
	r.GET("/sign-in", s.redirectIfAuthenticated(), s.SignInPage)
	r.GET("/sign-up", s.redirectIfAuthenticated(), s.SignUpPage)
	r.GET("/forgot-password", s.ForgotPasswordPage)
	r.GET("/dashboard", s.pageAuthRequired(), s.DashboardPage)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// Email-token redirect targets
	r.GET("/auth/callback", s.ConfirmCallback)
	r.GET("/auth/reset-password", s.ResetPasswordPage)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signin", s.SignIn)
		authGroup.POST("/signup", s.SignUp)
		authGroup.POST("/signout", s.SignOut)
		authGroup.POST("/reset-password", s.RequestPasswordReset)
		authGroup.POST("/reset-password/confirm", s.ResetPassword)
	}

	api := r.Group("/api", s.apiAuthRequired())
	{
		api.GET("/submissions", s.ListSubmissions)
		api.POST("/submissions", s.UploadSubmission)
		api.DELETE("/submissions/:id", s.DeleteSubmission)
	}

	return r
}

// Handler exposes the router; used by tests and by Run.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.config.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}
