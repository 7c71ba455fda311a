// Package sqlite provides an embedded SQLite user store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hongminglow/user-auth-be/internal/models"
	"github.com/hongminglow/user-auth-be/internal/storage"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var _ storage.UserStore = (*Store)(nil)

const memoryPath = ":memory:"

const userColumns = `id, first_name, last_name, phone_number, email, gender, dob, role, password_hash, created_at, updated_at`

// Store persists users in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the database at path, pings it and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != memoryPath {
		dsn = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == memoryPath {
		// every pooled connection would otherwise see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := NewWithDB(sqlDB)
	if err := s.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an already opened handle without touching the schema.
func NewWithDB(sqlDB *sql.DB) *Store {
	return &Store{sqlDB: sqlDB, now: time.Now}
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			gender TEXT NOT NULL DEFAULT '',
			dob TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			password_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.sqlDB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts one user and returns the stored row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := toMillis(s.now())
	var dob sql.NullString
	if user.DOB != nil {
		dob = sql.NullString{String: user.DOB.String(), Valid: true}
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, phone_number, email, gender, dob, role, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+userColumns,
		user.FirstName, user.LastName, user.PhoneNumber, user.Email,
		user.Gender, dob, user.Role, user.PasswordHash, now, now,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// FindByEmail fetches a user by exact email match.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, err
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user      models.User
		dob       sql.NullString
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.PhoneNumber, &user.Email,
		&user.Gender, &dob, &user.Role, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	if dob.Valid && dob.String != "" {
		d, err := models.ParseDate(dob.String)
		if err != nil {
			return models.User{}, fmt.Errorf("decode dob: %w", err)
		}
		user.DOB = &d
	}
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
