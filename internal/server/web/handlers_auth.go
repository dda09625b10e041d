package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpai/case-portal/internal/shared"
)

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn verifies credentials and sets the session cookie. Credential
// failures carry the service's message verbatim.
func (s *Server) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	token, err := s.users.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorInvalidCredentials), errors.Is(err, shared.ErrorEmailNotConfirmed):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			s.logger.Error(c.Request.Context(), "sign-in failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		}
		return
	}

	s.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"redirect": "/dashboard"})
}

type signUpRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// SignUp validates and creates an account, then points the browser at the
// sign-in screen with the confirmation-email instruction.
func (s *Server) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	_, err := s.users.SignUp(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorPasswordMismatch),
			errors.Is(err, shared.ErrorPasswordTooShort),
			errors.Is(err, shared.ErrorEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.logger.Error(c.Request.Context(), "sign-up failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect": "/sign-in?message=Check your email to confirm your account"})
}

// SignOut clears the session cookie. Plain form POST target, so it
// redirects back to the sign-in screen.
func (s *Server) SignOut(c *gin.Context) {
	s.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/sign-in")
}

// ConfirmCallback redeems a sign-up confirmation token.
func (s *Server) ConfirmCallback(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Redirect(http.StatusFound, "/sign-in")
		return
	}

	if err := s.users.ConfirmEmail(c.Request.Context(), token); err != nil {
		s.logger.Warn(c.Request.Context(), "confirmation failed", "error", err)
		c.Redirect(http.StatusFound, "/sign-in")
		return
	}

	c.Redirect(http.StatusFound, "/sign-in?message=Email confirmed, you can sign in now")
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset issues a reset token and sends the reset email.
// The send outcome is never surfaced; only a missing email or a failure
// to issue the token produces an error response.
func (s *Server) RequestPasswordReset(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := s.users.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to process request"})
			return
		}
		s.logger.Error(c.Request.Context(), "password reset request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

type resetPasswordConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword consumes a reset token and stores the new password.
func (s *Server) ResetPassword(c *gin.Context) {
	var req resetPasswordConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and password are required"})
		return
	}

	if err := s.users.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, shared.ErrorPasswordTooShort),
			errors.Is(err, shared.ErrorInvalidToken),
			errors.Is(err, shared.ErrorTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.logger.Error(c.Request.Context(), "password reset failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect": "/sign-in?message=Password updated, you can sign in now"})
}
