package domain

import "time"

// Session represents an authenticated user as reported by the identity
// provider. A nil *Session everywhere means "not signed in".
// Fields are ordered to minimize memory padding.
type Session struct {
	ExpiresAt    time.Time `json:"expires_at"`    // Access token expiry
	UserID       string    `json:"user_id"`       // Principal identifier, owns the task rows
	Email        string    `json:"email"`         // Identity attribute for display
	AccessToken  string    `json:"access_token"`  // Bearer token for gateway calls
	RefreshToken string    `json:"refresh_token"` // Token for the refresh grant
}

// Expired reports whether the access token has expired at the given time.
// A zero ExpiresAt is treated as never expiring (some providers omit it).
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
