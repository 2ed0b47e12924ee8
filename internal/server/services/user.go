// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and issuing/refreshing JWTs
// plus the server-stored rotating refresh secrets.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkalvans/cinetrack/internal/common"
	"github.com/mkalvans/cinetrack/internal/dbx"
	"github.com/mkalvans/cinetrack/internal/server/auth"
	"github.com/mkalvans/cinetrack/internal/server/config"
	"github.com/mkalvans/cinetrack/internal/server/models"
	"github.com/mkalvans/cinetrack/internal/server/repositories/repomanager"
)

// AuthResult bundles a fresh access token and refresh secret with the
// profile fields the client shows after signing in.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	Email        string
	DisplayName  string
	AvatarUrl    *string
}

// UserService provides authentication-related operations:
// - Register: create accounts and mint the first token pair
// - Login: verify credentials and mint tokens
// - Refresh: rotate refresh secrets and mint new access tokens
type UserService struct {
	db                            *sql.DB
	repomanager                   repomanager.RepositoryManager
	jwtSecret                     []byte
	accessTokenValidityDuration   time.Duration
	refreshSecretValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                            db,
		repomanager:                   m,
		jwtSecret:                     []byte(cfg.SecretKey),
		accessTokenValidityDuration:   cfg.AccessTokenValidityDuration,
		refreshSecretValidityDuration: cfg.RefreshSecretValidityDuration,
	}
}

// Register creates a new account and returns its first token pair.
// A duplicate email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrAlreadyExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}

	var result *AuthResult
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		var genErr error
		result, genErr = s.generateTokenPair(ctx, created, tx)
		return genErr
	}); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return result, nil
}

// Login verifies the password and, on success, returns a new token pair,
// overwriting any previously stored refresh secret. Any mismatch yields
// common.ErrUnauthorized without revealing which part failed.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}
	return s.generateTokenPair(ctx, user, s.db)
}

// Refresh validates the presented access token's signature (its expiry is
// deliberately ignored), checks the supplied refresh secret against the
// stored one, rotates it, and returns a fresh token pair. The old secret
// becomes permanently unusable once the rotation is written, even if the
// caller never receives the response.
func (s *UserService) Refresh(ctx context.Context, accessToken, refreshSecret string) (*AuthResult, error) {
	userID, err := auth.GetUserIDFromExpiredToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	cred, err := s.repomanager.Credentials(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh secret: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(cred.RefreshSecret), []byte(refreshSecret)) != 1 {
		return nil, common.ErrUnauthorized
	}
	if cred.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	return s.generateTokenPair(ctx, user, s.db)
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshSecret() (string, error) {
	return common.MakeRandHexString(64)
}

func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, tx dbx.DBTX) (*AuthResult, error) {
	access, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh, err := s.generateRefreshSecret()
	if err != nil {
		return nil, common.ErrInternal
	}
	credRepo := s.repomanager.Credentials(tx)
	if err := credRepo.Upsert(ctx, user.ID, refresh, s.refreshSecretValidityDuration); err != nil {
		return nil, common.ErrInternal
	}
	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		AvatarUrl:    user.AvatarUrl,
	}, nil
}
