// Package repository implements persistence for users: a write repository
// over the PostgreSQL store and a Redis-cached read repository.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jaeyeonyy/moacc/internal/apperr"
	"github.com/jaeyeonyy/moacc/internal/database"
	"github.com/jaeyeonyy/moacc/internal/models"
)

// UserRepository is the write-side persistence contract. Implementations are
// constructed over a database.DBTX so services can run them inside the
// transaction of the current unit of work.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateLanguage(ctx context.Context, userID int64, language models.Language) error
	UpdateName(ctx context.Context, userID int64, name string) error
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error
}

const uniqueViolation = "23505"

type userRepository struct {
	q database.DBTX
}

// NewUserRepository returns a PostgreSQL-backed UserRepository over q.
func NewUserRepository(q database.DBTX) UserRepository {
	return &userRepository{q: q}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password, name, role, language, introduction, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING user_id
	`
	err := r.q.QueryRowContext(ctx, query,
		user.Username, user.Password, user.Name, string(user.Role), string(user.Language),
		nullString(user.Introduction), nullString(user.RefreshToken),
		user.CreatedAt, user.UpdatedAt,
	).Scan(&user.UserID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, apperr.UsernameAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT user_id, username, password, name, role, language, introduction, refresh_token, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	return scanUser(r.q.QueryRowContext(ctx, query, userID))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT user_id, username, password, name, role, language, introduction, refresh_token, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	return scanUser(r.q.QueryRowContext(ctx, query, username))
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = $3 WHERE user_id = $1`
	return r.exec(ctx, query, userID, passwordHash, time.Now().UTC())
}

func (r *userRepository) UpdateLanguage(ctx context.Context, userID int64, language models.Language) error {
	query := `UPDATE users SET language = $2, updated_at = $3 WHERE user_id = $1`
	return r.exec(ctx, query, userID, string(language), time.Now().UTC())
}

func (r *userRepository) UpdateName(ctx context.Context, userID int64, name string) error {
	query := `UPDATE users SET name = $2, updated_at = $3 WHERE user_id = $1`
	return r.exec(ctx, query, userID, name, time.Now().UTC())
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = $3 WHERE user_id = $1`
	return r.exec(ctx, query, userID, refreshToken, time.Now().UTC())
}

// exec runs an update that must touch exactly one user row.
func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.UserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var role, language string
	var introduction, refreshToken sql.NullString

	err := row.Scan(
		&user.UserID, &user.Username, &user.Password, &user.Name,
		&role, &language, &introduction, &refreshToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.UserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = models.Role(role)
	user.Language = models.Language(language)
	user.Introduction = introduction.String
	user.RefreshToken = refreshToken.String
	return &user, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
