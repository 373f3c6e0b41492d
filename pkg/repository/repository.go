package repository

import (
	"context"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/google/uuid"
)

// UserRepository defines data access for user accounts. Emails are stored
// normalized, so lookups expect a normalized address.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines data access for transactions. Every lookup
// is scoped to the owning user; a row owned by someone else is reported as
// domain.ErrNotFound.
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error)
	// List returns one page, newest first, and the total matching rows.
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, int64, error)
	// ListInRange returns every transaction of userID dated within
	// [start, end], oldest first. Nil bounds are open.
	ListInRange(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]*domain.Transaction, error)
	// ListRecurringDueBefore returns recurring transactions of all users
	// whose next due date is before t.
	ListRecurringDueBefore(ctx context.Context, t time.Time) ([]*domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type BudgetRepository interface {
	Create(ctx context.Context, b *domain.Budget) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error)
	// ListActive returns the budgets of userID in category whose period
	// contains at.
	ListActive(ctx context.Context, userID uuid.UUID, category domain.Category, at time.Time) ([]*domain.Budget, error)
	Update(ctx context.Context, b *domain.Budget) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type GoalRepository interface {
	Create(ctx context.Context, g *domain.Goal) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)
	// ListOpen returns goals of userID that are not completed.
	ListOpen(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error)
	// List returns one page, newest first, and the total matching rows.
	List(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
