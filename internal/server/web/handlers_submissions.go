package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/shared"
)

// deleteFailedMessage is the fixed message for any deletion failure; the
// underlying detail is logged, not exposed.
const deleteFailedMessage = "Failed to delete file"

type submissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	SizeDisplay string `json:"size_display"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	CreatedAt   string `json:"created_at"`
}

func toSubmissionResponse(s *models.Submission) submissionResponse {
	return submissionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Size:        s.Size,
		SizeDisplay: FormatFileSize(s.Size),
		Type:        s.MimeType,
		URL:         s.URL,
		CreatedAt:   FormatDate(s.CreatedAt),
	}
}

// ListSubmissions returns the current owner's submissions, newest first.
func (s *Server) ListSubmissions(c *gin.Context) {
	user := userFromContext(c)

	items, err := s.submissions.List(c.Request.Context(), user.ID)
	if err != nil {
		s.logger.Error(c.Request.Context(), "failed to list submissions", "owner_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	out := make([]submissionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toSubmissionResponse(item))
	}

	c.JSON(http.StatusOK, gin.H{"files": out})
}

// UploadSubmission accepts a multipart upload, validates it and stores it.
// Validation and storage errors surface with their own message.
func (s *Server) UploadSubmission(c *gin.Context) {
	user := userFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a file"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a file"})
		return
	}
	defer file.Close()

	created, err := s.submissions.Upload(c.Request.Context(), user.ID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorBadFileType), errors.Is(err, shared.ErrorFileTooBig):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// upload failures show the underlying detail, matching the form
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"file": toSubmissionResponse(created)})
}

// DeleteSubmission removes the object and its record. Every failure maps
// to the same fixed message.
func (s *Server) DeleteSubmission(c *gin.Context) {
	user := userFromContext(c)
	id := c.Param("id")

	if err := s.submissions.Delete(c.Request.Context(), user.ID, id); err != nil {
		s.logger.Error(c.Request.Context(), "failed to delete submission", "owner_id", user.ID, "id", id, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, shared.ErrorNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": deleteFailedMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
