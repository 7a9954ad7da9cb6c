package auth

import "context"

// SessionStore is the serialize/deserialize boundary for persisted auth
// state. Implementations must return (nil, nil) from lookups that find
// nothing, so callers can distinguish "logged out" from storage failure.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, userID string) (*Session, error)
	GetByAccessToken(ctx context.Context, accessToken string) (*Session, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}
