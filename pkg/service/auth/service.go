// Package auth authenticates users by email and password and issues the
// bearer tokens the HTTP middleware accepts.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	"github.com/amirasaad/finance-tracker/pkg/repository"
)

var errNoJwtConfig = errors.New("jwt is not configured")

// dummyUser is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyUser = sync.OnceValue(func() *domain.User {
	u := &domain.User{}
	_ = u.SetPassword("not-a-real-password")
	return u
})

type Service struct {
	uow    repository.UnitOfWork
	jwt    *config.Jwt
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, jwt *config.Jwt, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		jwt:    jwt,
		logger: logger.With("service", "auth"),
	}
}

// Login checks the credentials and returns the user with a signed token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "error", err)
		return nil, "", err
	}
	token, err := s.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("Login successful", "user_id", u.ID)
	return u, token, nil
}

// GenerateToken signs a bearer token for u.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	if s.jwt == nil || s.jwt.Secret == "" {
		return "", errNoJwtConfig
	}
	return middleware.SignToken(s.jwt, u.ID)
}

func (s *Service) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		dummyUser().CheckPassword(password)
		return nil, domain.ErrInvalidCredentials
	}
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		dummyUser().CheckPassword(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}
