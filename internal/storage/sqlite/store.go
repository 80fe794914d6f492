package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/komaljain0311/cogent-voice--assistant/internal/model/user"
)

// ErrDuplicateUser reports a signup against an already taken username or email.
var ErrDuplicateUser = errors.New("username or email already registered")

// ErrInvalidCredentials reports a failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS chat_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	session_id TEXT NOT NULL,
	query TEXT,
	response TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
`

// Store keeps user accounts and per-user chat history in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	// WAL keeps concurrent request handlers from tripping over each other.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateUser registers a new account. Username and email collisions return
// ErrDuplicateUser.
func (s *Store) CreateUser(ctx context.Context, username, email, password string) (user.User, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password) VALUES (?, ?, ?)`,
		username, email, password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return user.User{}, ErrDuplicateUser
		}
		return user.User{}, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return user.User{}, fmt.Errorf("reading user id: %w", err)
	}

	return user.User{ID: id, Username: username, Email: email}, nil
}

// Authenticate checks the credentials against the stored account. The
// identifier matches either username or email.
func (s *Store) Authenticate(ctx context.Context, identifier, password string) (user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email FROM users
		 WHERE (username = ? OR email = ?) AND password = ?`,
		identifier, identifier, password).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return user.User{}, fmt.Errorf("querying user: %w", err)
	}
	return u, nil
}

// FindUser looks an account up by username or email.
func (s *Store) FindUser(ctx context.Context, identifier string) (user.User, bool, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email FROM users WHERE username = ? OR email = ?`,
		identifier, identifier).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, false, nil
	}
	if err != nil {
		return user.User{}, false, fmt.Errorf("querying user: %w", err)
	}
	return u, true, nil
}

// LogChat appends one exchange to the user's chat history.
func (s *Store) LogChat(ctx context.Context, userID int64, sessionID, query, response string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_history (user_id, session_id, query, response) VALUES (?, ?, ?, ?)`,
		userID, sessionID, query, response)
	if err != nil {
		return fmt.Errorf("inserting chat history: %w", err)
	}
	return nil
}
