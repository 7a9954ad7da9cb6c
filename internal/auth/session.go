package auth

import (
	"time"

	"github.com/seotrue/Feelist/internal/core/domain"
)

// expirySkew is subtracted from the stored expiry so a token that is about
// to lapse mid-request is treated as already expired.
const expirySkew = 30 * time.Second

// Session is the current user's authentication state. It is created at
// login completion, mutated on refresh, and destroyed on logout.
type Session struct {
	AccessToken   string             `json:"accessToken"`
	RefreshToken  string             `json:"refreshToken"`
	ExpiresAt     time.Time          `json:"expiresAt"`
	Authenticated bool               `json:"isAuthenticated"`
	User          domain.UserProfile `json:"user"`
}

// Expired reports whether the access token is past (or within skew of) its
// recorded expiry.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt.Add(-expirySkew))
}

// Usable reports whether the session can authenticate a call right now.
func (s *Session) Usable(now time.Time) bool {
	return s != nil && s.Authenticated && s.AccessToken != "" && !s.Expired(now)
}

// Clear wipes all credential and profile state, returning the session to
// the unauthenticated state.
func (s *Session) Clear() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.ExpiresAt = time.Time{}
	s.Authenticated = false
	s.User = domain.UserProfile{}
}
