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
	"github.com/jaeyeonyy/moacc/internal/token"
)

// LoginResult is what a successful login returns to the client. The refresh
// token is persisted on the user record, never returned.
type LoginResult struct {
	Username    string    `json:"username"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthCommandService handles login: credential verification, token minting,
// and persisting the refresh token, all in one unit of work.
type AuthCommandService struct {
	db     *sql.DB
	users  UserRepoFactory
	tokens *token.Provider
	log    *slog.Logger
}

func NewAuthCommandService(db *sql.DB, users UserRepoFactory, tokens *token.Provider, log *slog.Logger) *AuthCommandService {
	return &AuthCommandService{db: db, users: users, tokens: tokens, log: log}
}

// Login verifies the credentials, mints an access and a refresh token, and
// overwrites the stored refresh token so at most one is current per user.
// The reported expiry is decoded from the issued access token itself.
func (s *AuthCommandService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result *LoginResult
	err := database.WithTx(ctx, s.db, func(q database.DBTX) error {
		repo := s.users(q)

		user, err := repo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			s.log.Warn("login failed", "username", username)
			return apperr.InvalidCredentials
		}

		accessToken, err := s.tokens.CreateAccessToken(user.UserID, user.Username)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		refreshToken, err := s.tokens.CreateRefreshToken(user.Username)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}
		expiresAt, err := s.tokens.Expiration(accessToken)
		if err != nil {
			return fmt.Errorf("failed to read token expiration: %w", err)
		}

		if err := repo.UpdateRefreshToken(ctx, user.UserID, refreshToken); err != nil {
			return err
		}

		result = &LoginResult{
			Username:    user.Username,
			AccessToken: accessToken,
			ExpiresAt:   expiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("login succeeded", "username", result.Username)
	return result, nil
}
