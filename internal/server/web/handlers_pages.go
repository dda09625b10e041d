package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SignInPage renders the sign-in screen. An optional ?message= (set after
// sign-up or password reset) is shown above the form.
func (s *Server) SignInPage(c *gin.Context) {
	c.HTML(http.StatusOK, "sign-in.html", gin.H{
		"Message": c.Query("message"),
	})
}

func (s *Server) SignUpPage(c *gin.Context) {
	c.HTML(http.StatusOK, "sign-up.html", nil)
}

func (s *Server) ForgotPasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot-password.html", nil)
}

// ResetPasswordPage renders the new-password form for an emailed reset
// link.
func (s *Server) ResetPasswordPage(c *gin.Context) {
	c.HTML(http.StatusOK, "reset-password.html", gin.H{
		"Token": c.Query("token"),
	})
}

// DashboardPage renders the uploader plus the owner's current file list.
// The account comes from the session gate; the list is fetched fresh.
func (s *Server) DashboardPage(c *gin.Context) {
	user := userFromContext(c)

	items, err := s.submissions.List(c.Request.Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "failed to load dashboard", "owner_id", user.ID, "error", err)
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Email": user.Email,
			"Error": genericErrorMessage,
		})
		return
	}

	files := make([]submissionResponse, 0, len(items))
	for _, item := range items {
		files = append(files, toSubmissionResponse(item))
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Email": user.Email,
		"Files": files,
	})
}
