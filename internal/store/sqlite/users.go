package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reeltrack/reeltrack-server/internal/domain"
	"github.com/reeltrack/reeltrack-server/internal/store"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, email, password_hash, name, created_at, updated_at, last_login_at`

func scanUser(row scanner) (*domain.User, error) {
	var (
		u           domain.User
		createdAt   string
		updatedAt   string
		lastLoginAt sql.NullString
	)

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &createdAt, &updatedAt, &lastLoginAt); err != nil {
		return nil, err
	}

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if u.LastLoginAt, err = parseNullableTime(lastLoginAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user. Returns store.ErrEmailExists when the email is
// taken (case-insensitively) and store.ErrAlreadyExists on an id clash.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, email_lower, password_hash, name, created_at, updated_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Name,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		nullTimeString(user.LastLoginAt),
	)
	if isUniqueViolation(err) {
		if strings.Contains(err.Error(), "email_lower") {
			return store.ErrEmailExists
		}
		return store.ErrAlreadyExists
	}
	return err
}

// GetUser returns store.ErrNotFound for unknown ids.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserByEmail looks a user up case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, domain.NormalizeEmail(email))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// UpdateUser rewrites the mutable user columns.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET email = ?, email_lower = ?, password_hash = ?, name = ?, updated_at = ?, last_login_at = ?
		WHERE id = ?`,
		user.Email,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Name,
		formatTime(user.UpdatedAt),
		nullTimeString(user.LastLoginAt),
		user.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrEmailExists
	}
	if err != nil {
		return err
	}
	return expectRow(result)
}
