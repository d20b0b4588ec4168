// Package services contains the business logic between the HTTP layer and
// the repositories: credential handling, caller-enforced uniqueness,
// ownership checks and blob/record consistency.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/filehost/internal/common"
	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/models"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/users"
)

// UserService handles registration and credential checks. The repository
// stores credentials opaquely; all hashing and comparing happens here.
type UserService struct {
	users  users.Repository
	logger logging.Logger
}

func NewUserService(r users.Repository, l logging.Logger) *UserService {
	return &UserService{users: r, logger: l.With("module", "user_service")}
}

// Register creates a new account. Username and email uniqueness is
// enforced here, by probing before creating — the repository itself
// accepts duplicates, so registration must remain the single write path
// for accounts. Duplicates yield ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, common.ErrorValidation
	}

	if err := s.checkAbsent(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash), email, false)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "username", username, "id", user.ID)
	return user, nil
}

// Authenticate verifies username and password. Both an unknown username
// and a wrong password come back as ErrorUnauthorized, so a caller cannot
// tell which part failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// Get returns the account with the given id, or ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account when no account with
// that username exists. Returns whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash), email, true)
	if err != nil {
		return false, fmt.Errorf("error creating admin: %w", err)
	}

	s.logger.Info(ctx, "admin account created", "username", username, "id", user.ID)
	return true, nil
}

func (s *UserService) checkAbsent(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	return nil
}
