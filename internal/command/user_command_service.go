// Package command implements the write side. Every operation runs as a
// single unit of work against the PostgreSQL store and refreshes the Redis
// read model after it commits.
package command

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jaeyeonyy/moacc/internal/apperr"
	"github.com/jaeyeonyy/moacc/internal/database"
	"github.com/jaeyeonyy/moacc/internal/models"
	"github.com/jaeyeonyy/moacc/internal/repository"
)

// SignUpCommand carries the validated sign-up input.
type SignUpCommand struct {
	Username     string
	Password     string
	Name         string
	Language     string
	Introduction string
}

// UserRepoFactory vends a UserRepository bound to the given handle, so the
// same queries run inside the transaction of the current unit of work.
type UserRepoFactory func(q database.DBTX) repository.UserRepository

// ViewCacher refreshes the read model after a committed mutation.
type ViewCacher interface {
	CacheView(ctx context.Context, view *models.UserView)
}

// UserCommandService orchestrates sign-up and profile mutations.
type UserCommandService struct {
	db    *sql.DB
	users UserRepoFactory
	views ViewCacher
	log   *slog.Logger
}

func NewUserCommandService(db *sql.DB, users UserRepoFactory, views ViewCacher, log *slog.Logger) *UserCommandService {
	return &UserCommandService{db: db, users: users, views: views, log: log}
}

// SignUp registers a new user. The username must not be taken; the password
// is stored bcrypt-hashed and the role defaults to USER.
func (s *UserCommandService) SignUp(ctx context.Context, cmd SignUpCommand) (*models.UserView, error) {
	s.log.Info("sign-up attempt", "username", cmd.Username)

	language, err := models.ParseLanguage(cmd.Language)
	if err != nil {
		return nil, apperr.InvalidLanguage
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var view *models.UserView
	err = database.WithTx(ctx, s.db, func(q database.DBTX) error {
		repo := s.users(q)

		exists, err := repo.ExistsByUsername(ctx, cmd.Username)
		if err != nil {
			return err
		}
		if exists {
			s.log.Warn("username already taken", "username", cmd.Username)
			return apperr.UsernameAlreadyExists
		}

		now := time.Now().UTC()
		user, err := repo.Create(ctx, &models.User{
			Username:     cmd.Username,
			Password:     string(hash),
			Name:         cmd.Name,
			Role:         models.RoleUser,
			Language:     language,
			Introduction: cmd.Introduction,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		view = models.NewUserView(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.views.CacheView(ctx, view)
	s.log.Info("sign-up succeeded", "username", view.Username, "userId", view.UserID)
	return view, nil
}

// ChangePassword verifies the current password and stores the hash of the
// new one. Existing sessions keep their tokens until natural expiry.
func (s *UserCommandService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	return database.WithTx(ctx, s.db, func(q database.DBTX) error {
		repo := s.users(q)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
			s.log.Warn("password mismatch", "username", user.Username)
			return apperr.PasswordMismatch
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if err := repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
			return err
		}

		s.log.Info("password changed", "username", user.Username)
		return nil
	})
}

// ChangeLanguage updates the user's interface language and returns the
// refreshed public view.
func (s *UserCommandService) ChangeLanguage(ctx context.Context, userID int64, code string) (*models.UserView, error) {
	language, err := models.ParseLanguage(code)
	if err != nil {
		return nil, apperr.InvalidLanguage
	}

	var view *models.UserView
	err = database.WithTx(ctx, s.db, func(q database.DBTX) error {
		repo := s.users(q)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := repo.UpdateLanguage(ctx, userID, language); err != nil {
			return err
		}

		user.Language = language
		view = models.NewUserView(user)
		s.log.Info("language changed", "username", user.Username, "language", code)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.views.CacheView(ctx, view)
	return view, nil
}

// ChangeName updates the user's display name and returns the refreshed
// public view.
func (s *UserCommandService) ChangeName(ctx context.Context, userID int64, name string) (*models.UserView, error) {
	var view *models.UserView
	err := database.WithTx(ctx, s.db, func(q database.DBTX) error {
		repo := s.users(q)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if err := repo.UpdateName(ctx, userID, name); err != nil {
			return err
		}

		user.Name = name
		view = models.NewUserView(user)
		s.log.Info("name changed", "username", user.Username)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.views.CacheView(ctx, view)
	return view, nil
}
