// Package sqlite provides the SQLite-backed implementation of the session
// store. It is the only durable state the service keeps: tokens and the
// profile behind them, so logins survive a restart.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/seotrue/Feelist/internal/auth"
)

// SessionStore implements auth.SessionStore on a local SQLite file.
type SessionStore struct {
	db *sql.DB
}

var _ auth.SessionStore = (*SessionStore)(nil)

// NewSessionStore opens the database and runs the schema migration.
func NewSessionStore(storagePath string) (*SessionStore, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	store := &SessionStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("sqlite: migration failed: %w", err)
	}

	return store, nil
}

// Close closes the underlying database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// Save upserts the session keyed by user id.
func (s *SessionStore) Save(ctx context.Context, session *auth.Session) error {
	if session == nil || session.User.ID == "" {
		return fmt.Errorf("sqlite: session must carry a user id")
	}

	query := `
		INSERT INTO sessions (user_id, access_token, refresh_token, expires_at, display_name, email)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			access_token=excluded.access_token,
			refresh_token=excluded.refresh_token,
			expires_at=excluded.expires_at,
			display_name=excluded.display_name,
			email=excluded.email;
	`
	if _, err := s.db.ExecContext(ctx, query,
		session.User.ID,
		session.AccessToken,
		session.RefreshToken,
		session.ExpiresAt.UTC().Unix(),
		session.User.DisplayName,
		session.User.Email,
	); err != nil {
		return fmt.Errorf("sqlite: save session: %w", err)
	}
	return nil
}

// Get loads the session for a user id. Returns (nil, nil) when absent.
func (s *SessionStore) Get(ctx context.Context, userID string) (*auth.Session, error) {
	return s.getWhere(ctx, "user_id = ?", userID)
}

// GetByAccessToken resolves the session holding an access token.
func (s *SessionStore) GetByAccessToken(ctx context.Context, accessToken string) (*auth.Session, error) {
	return s.getWhere(ctx, "access_token = ?", accessToken)
}

// GetByRefreshToken resolves the session holding a refresh token.
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*auth.Session, error) {
	return s.getWhere(ctx, "refresh_token = ?", refreshToken)
}

// Delete removes the session for a user id. Deleting an absent session is
// not an error.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("sqlite: delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) getWhere(ctx context.Context, where string, arg any) (*auth.Session, error) {
	query := "SELECT user_id, access_token, refresh_token, expires_at, display_name, email FROM sessions WHERE " + where
	row := s.db.QueryRowContext(ctx, query, arg)

	var (
		session   auth.Session
		expiresAt int64
		email     sql.NullString
	)
	if err := row.Scan(
		&session.User.ID,
		&session.AccessToken,
		&session.RefreshToken,
		&expiresAt,
		&session.User.DisplayName,
		&email,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: load session: %w", err)
	}

	if email.Valid {
		session.User.Email = email.String
	}
	session.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	session.Authenticated = session.AccessToken != ""

	return &session, nil
}

func (s *SessionStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		user_id TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		display_name TEXT,
		email TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_access_token ON sessions(access_token);
	CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token ON sessions(refresh_token);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	return nil
}
