package shared

import "errors"

var (

	// common errors
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")

	// auth-specific errors; credential/confirmation messages are shown
	// to users verbatim, so they keep their user-facing casing
	ErrorInvalidToken       = errors.New("invalid token")
	ErrorTokenExpired       = errors.New("token expired")
	ErrorInvalidCredentials = errors.New("Invalid login credentials")
	ErrorEmailNotConfirmed  = errors.New("Email not confirmed")
	ErrorEmailTaken         = errors.New("User already registered")

	// sign-up validation errors, checked before any store call
	ErrorPasswordMismatch = errors.New("Passwords do not match")
	ErrorPasswordTooShort = errors.New("Password must be at least 6 characters")

	// submission-specific errors, surfaced as-is by the upload form
	ErrorBadFileType = errors.New("Please select a PDF or PowerPoint file")
	ErrorFileTooBig  = errors.New("File size must be less than 20MB")
)
