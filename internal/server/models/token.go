package models

import "time"

// Token purposes.
const (
	TokenPurposeConfirm = "confirm"
	TokenPurposeReset   = "reset"
)

// Token is a single-use email token (account confirmation or password
// reset). The token string itself is the primary key.
type Token struct {
	Token     string
	UserID    string
	Purpose   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's expiry time has passed.
func (t *Token) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}
