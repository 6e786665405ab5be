package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/auth"
	"github.com/dmitrijs2005/growflow/internal/server/config"
	"github.com/dmitrijs2005/growflow/internal/server/metrics"
	"github.com/dmitrijs2005/growflow/internal/server/models"
	"github.com/dmitrijs2005/growflow/internal/server/repositories/repomanager"
)

// UserService registers users and issues session tokens.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      auth.PasswordHasher
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, log logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		log:                         log,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a user and returns a session token for it.
func (s *UserService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = common.NormalizeEmail(email)

	switch {
	case username == "":
		return "", fmt.Errorf("%w: username is required", common.ErrorValidation)
	case email == "":
		return "", fmt.Errorf("%w: email is required", common.ErrorValidation)
	case password == "":
		return "", fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	if len(password) > auth.MaxPasswordBytes {
		return "", fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, auth.MaxPasswordBytes)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) || errors.Is(err, auth.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		s.log.Error(ctx, "password hashing failed", "error", err)
		return "", common.ErrorServiceUnavailable
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateIdentity) {
			return "", common.ErrorDuplicateIdentity
		}
		s.log.Error(ctx, "error creating user", "error", err)
		return "", common.ErrorServiceUnavailable
	}

	metrics.Registrations.Inc()
	s.log.Info(ctx, "user registered", "user_id", user.ID)

	return s.generateAccessToken(ctx, user.ID)
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if len(password) > auth.MaxPasswordBytes {
		// no such password can have been registered
		_, _ = s.hasher.Verify(password, s.hasher.DummyHash())
		metrics.RecordLogin(metrics.LoginInvalid)
		return "", common.ErrorInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same bcrypt cost as a real mismatch
			_, _ = s.hasher.Verify(password, s.hasher.DummyHash())
			metrics.RecordLogin(metrics.LoginInvalid)
			return "", common.ErrorInvalidCredentials
		}
		s.log.Error(ctx, "error looking up user", "error", err)
		metrics.RecordLogin(metrics.LoginUnavailable)
		return "", common.ErrorServiceUnavailable
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		metrics.RecordLogin(metrics.LoginUnavailable)
		return "", common.ErrorServiceUnavailable
	}
	if !ok {
		metrics.RecordLogin(metrics.LoginInvalid)
		return "", common.ErrorInvalidCredentials
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	return s.generateAccessToken(ctx, user.ID)
}

// GetUser returns the account behind a session.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "error loading user", "user_id", userID, "error", err)
		return nil, common.ErrorServiceUnavailable
	}

	return user, nil
}

func (s *UserService) generateAccessToken(ctx context.Context, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.log.Error(ctx, "error signing token", "error", err)
		return "", common.ErrorServiceUnavailable
	}
	return token, nil
}
