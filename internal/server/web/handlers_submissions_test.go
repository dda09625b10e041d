package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpai/case-portal/internal/server/models"
	"github.com/gpai/case-portal/internal/shared"
)

func authedServer(t *testing.T, subs *fakeSubmissionService) (*Server, *http.Cookie) {
	t.Helper()

	user := testUser()
	users := &fakeUserService{
		getUserFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}
	s := newTestServer(t, users, subs)
	return s, sessionFor(t, s.config, user.ID)
}

// multipartFile builds a multipart body with a single "file" part carrying
// the given content type.
func multipartFile(t *testing.T, name, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	hdr.Set("Content-Type", contentType)

	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestListSubmissions(t *testing.T) {
	created := time.Date(2025, time.October, 1, 9, 30, 0, 0, time.UTC)
	subs := &fakeSubmissionService{
		listFunc: func(ctx context.Context, ownerID string) ([]*models.Submission, error) {
			return []*models.Submission{
				{
					ID:        "sub-1",
					OwnerID:   ownerID,
					Name:      "deck.pdf",
					Size:      1536,
					MimeType:  "application/pdf",
					URL:       "http://store/uploads/sub-1",
					CreatedAt: created,
				},
			}, nil
		},
	}
	s, cookie := authedServer(t, subs)

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.AddCookie(cookie)
	w := doRequest(s, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Files []submissionResponse `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "deck.pdf", resp.Files[0].Name)
	assert.Equal(t, "1.5 KB", resp.Files[0].SizeDisplay)
	assert.Equal(t, "Oct 1, 2025, 09:30 AM", resp.Files[0].CreatedAt)
}

func TestUploadSubmissionSuccess(t *testing.T) {
	subs := &fakeSubmissionService{
		uploadFunc: func(ctx context.Context, ownerID, name, mimeType string, size int64, body io.Reader) (*models.Submission, error) {
			assert.Equal(t, "deck.pdf", name)
			assert.Equal(t, "application/pdf", mimeType)

			content, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, []byte("%PDF-1.7"), content)

			return &models.Submission{
				ID:        "sub-1",
				OwnerID:   ownerID,
				Name:      name,
				Size:      size,
				MimeType:  mimeType,
				URL:       "http://store/uploads/sub-1",
				CreatedAt: time.Now(),
			}, nil
		},
	}
	s, cookie := authedServer(t, subs)

	body, contentType := multipartFile(t, "deck.pdf", "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := doRequest(s, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		File submissionResponse `json:"file"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sub-1", resp.File.ID)
	assert.Equal(t, "deck.pdf", resp.File.Name)
}

func TestUploadSubmissionValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"wrong type", shared.ErrorBadFileType, "Please select a PDF or PowerPoint file"},
		{"too big", shared.ErrorFileTooBig, "File size must be less than 20MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &fakeSubmissionService{
				uploadFunc: func(ctx context.Context, ownerID, name, mimeType string, size int64, body io.Reader) (*models.Submission, error) {
					return nil, tt.err
				},
			}
			s, cookie := authedServer(t, subs)

			body, contentType := multipartFile(t, "notes.txt", "text/plain", []byte("hi"))
			req := httptest.NewRequest(http.MethodPost, "/api/submissions", body)
			req.Header.Set("Content-Type", contentType)
			req.AddCookie(cookie)
			w := doRequest(s, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeJSON(t, w)["error"])
		})
	}
}

func TestUploadSubmissionStorageFailureSurfacesDetail(t *testing.T) {
	subs := &fakeSubmissionService{
		uploadFunc: func(ctx context.Context, ownerID, name, mimeType string, size int64, body io.Reader) (*models.Submission, error) {
			return nil, errors.New("storage unavailable")
		},
	}
	s, cookie := authedServer(t, subs)

	body, contentType := multipartFile(t, "deck.pdf", "application/pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := doRequest(s, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "storage unavailable", decodeJSON(t, w)["error"])
}

func TestUploadSubmissionMissingFile(t *testing.T) {
	s, cookie := authedServer(t, &fakeSubmissionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/submissions", nil)
	req.AddCookie(cookie)
	w := doRequest(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select a file", decodeJSON(t, w)["error"])
}

func TestDeleteSubmission(t *testing.T) {
	var deletedID string
	subs := &fakeSubmissionService{
		deleteFunc: func(ctx context.Context, ownerID, id string) error {
			deletedID = id
			return nil
		},
	}
	s, cookie := authedServer(t, subs)

	req := httptest.NewRequest(http.MethodDelete, "/api/submissions/sub-1", nil)
	req.AddCookie(cookie)
	w := doRequest(s, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sub-1", deletedID)
}

func TestDeleteSubmissionFailuresUseFixedMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", shared.ErrorNotFound, http.StatusNotFound},
		{"storage failure", errors.New("remove failed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := &fakeSubmissionService{
				deleteFunc: func(ctx context.Context, ownerID, id string) error {
					return tt.err
				},
			}
			s, cookie := authedServer(t, subs)

			req := httptest.NewRequest(http.MethodDelete, "/api/submissions/sub-1", nil)
			req.AddCookie(cookie)
			w := doRequest(s, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, deleteFailedMessage, decodeJSON(t, w)["error"])
		})
	}
}
