// Package user manages user accounts: registration, profile lookups and
// updates, password changes and deletion.
package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:    uow,
		logger: logger.With("service", "user"),
	}
}

type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// UpdateInput carries the profile fields to change. Nil fields are kept.
type UpdateInput struct {
	Firstname *string
	Lastname  *string
	Email     *string
}

// Register creates an account. The email must not be taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	u, err := domain.NewUser(in.Firstname, in.Lastname, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := emailAvailable(ctx, repo, u.Email); err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		s.logger.Warn("Registration failed", "error", err)
		return nil, err
	}
	s.logger.Info("User registered", "user_id", u.ID)
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// Update applies in to the profile of id.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (u *domain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if u, err = repo.Get(ctx, id); err != nil {
			return err
		}
		if in.Firstname != nil {
			name := strings.TrimSpace(*in.Firstname)
			if name == "" {
				return domain.ErrNameRequired
			}
			u.Firstname = name
		}
		if in.Lastname != nil {
			u.Lastname = strings.TrimSpace(*in.Lastname)
		}
		if in.Email != nil {
			email, err := domain.NormalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			if email != u.Email {
				if err := emailAvailable(ctx, repo, email); err != nil {
					return err
				}
				u.Email = email
			}
		}
		return repo.Update(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyPassword reports whether password is the current password of id.
func (s *Service) VerifyPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return u.CheckPassword(password), nil
}

// ChangePassword replaces the password of id after checking current.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !u.CheckPassword(current) {
			return domain.ErrInvalidCredentials
		}
		if err := u.SetPassword(next); err != nil {
			return err
		}
		return repo.Update(ctx, u)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Password changed", "user_id", id)
	return nil
}

// Delete removes the account. Records owned by the user are kept.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", "user_id", id)
	return nil
}

func emailAvailable(ctx context.Context, repo repository.UserRepository, email string) error {
	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return nil
	}
	return err
}
