package models

import "time"

// User is a portal account. Only ID and Email are ever exposed to the
// browser; the password hash stays server-side.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
}

// Confirmed reports whether the account's email has been confirmed.
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}
