package repository

import (
	"context"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Repositories obtained inside Do share the transaction; repositories
// obtained outside it run on the plain connection.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error,
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (UserRepository, error)
	TransactionRepository() (TransactionRepository, error)
	BudgetRepository() (BudgetRepository, error)
	GoalRepository() (GoalRepository, error)
	NotificationRepository() (NotificationRepository, error)
}
