package repository

import (
	"context"

	"github.com/amirasaad/finance-tracker/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction so every repository in a unit shares one session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a database transaction with a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

func (u *UoW) BudgetRepository() (repository.BudgetRepository, error) {
	return NewBudgetRepository(u.session()), nil
}

func (u *UoW) GoalRepository() (repository.GoalRepository, error) {
	return NewGoalRepository(u.session()), nil
}

func (u *UoW) NotificationRepository() (repository.NotificationRepository, error) {
	return NewNotificationRepository(u.session()), nil
}
