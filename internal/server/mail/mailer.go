// Package mail sends the portal's transactional email (password reset and
// account confirmation).
package mail

import (
	"context"
	"fmt"
)

// Mailer delivers a single HTML message. Implementations must treat each
// send as a one-shot attempt; callers decide whether a failure is surfaced.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, htmlBody string) error
}

// ResetPasswordSubject is the subject line of the password-reset email.
const ResetPasswordSubject = "Reset Your Password"

// ConfirmAccountSubject is the subject line of the sign-up confirmation email.
const ConfirmAccountSubject = "Confirm Your Account"

// ResetPasswordBody renders the password-reset email pointing at resetURL.
func ResetPasswordBody(resetURL string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>Reset Your Password</h2>
          <p>You requested to reset your password. Click the link below to create a new password:</p>
          <a href="%s"
             style="display: inline-block; padding: 10px 20px; background-color: #000; color: #fff; text-decoration: none; border-radius: 5px; margin: 20px 0;">
            Reset Password
          </a>
          <p>If you didn't request this, you can safely ignore this email.</p>
          <p>This link will expire in 1 hour.</p>
        </div>
      `, resetURL)
}

// ConfirmAccountBody renders the sign-up confirmation email pointing at
// confirmURL.
func ConfirmAccountBody(confirmURL string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>Confirm Your Account</h2>
          <p>Thanks for signing up. Click the link below to confirm your email address:</p>
          <a href="%s"
             style="display: inline-block; padding: 10px 20px; background-color: #000; color: #fff; text-decoration: none; border-radius: 5px; margin: 20px 0;">
            Confirm Account
          </a>
          <p>If you didn't create an account, you can safely ignore this email.</p>
        </div>
      `, confirmURL)
}
