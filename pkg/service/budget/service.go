// Package budget manages spending budgets and keeps them in step with new
// expense transactions.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notifier raises a notification without failing the caller.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, message string)
}

type Service struct {
	uow      repository.UnitOfWork
	conv     exchange.Converter
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func New(
	uow repository.UnitOfWork,
	conv exchange.Converter,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		conv:     conv,
		notifier: notifier,
		logger:   logger.With("service", "budget"),
		now:      time.Now,
	}
}

type CreateInput struct {
	UserID       uuid.UUID
	Title        string
	Category     domain.Category
	MonthlyLimit decimal.Decimal
	Currency     string
	StartDate    time.Time
	EndDate      time.Time
}

// UpdateInput carries optional changes; nil fields are left alone.
type UpdateInput struct {
	Title        *string
	Category     *domain.Category
	MonthlyLimit *decimal.Decimal
	Currency     *string
	StartDate    *time.Time
	EndDate      *time.Time
}

// Add converts the limit into the base currency and stores the budget.
func (s *Service) Add(ctx context.Context, in CreateInput) (*domain.Budget, error) {
	b := &domain.Budget{
		ID:           uuid.New(),
		UserID:       in.UserID,
		Title:        in.Title,
		Category:     in.Category,
		MonthlyLimit: in.MonthlyLimit,
		Spent:        decimal.Zero,
		Currency:     s.currencyOrBase(in.Currency),
		BaseCurrency: s.conv.BaseCurrency(),
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	base, err := exchange.ToBase(ctx, s.conv, b.MonthlyLimit, b.Currency)
	if err != nil {
		return nil, err
	}
	b.BaseAmount = base

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Budget created", "budget_id", b.ID, "user_id", b.UserID, "category", b.Category)
	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Budget, error) {
	repo, err := s.uow.BudgetRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	repo, err := s.uow.BudgetRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, userID)
}

// Update applies in. The base amount is recomputed whenever the limit or
// the currency changes.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (b *domain.Budget, err error) {
	b, err = s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reconvert := false
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.MonthlyLimit != nil && !in.MonthlyLimit.Equal(b.MonthlyLimit) {
		b.MonthlyLimit = *in.MonthlyLimit
		reconvert = true
	}
	if in.Currency != nil {
		if c := exchange.NormalizeCode(*in.Currency); c != "" && c != b.Currency {
			b.Currency = c
			reconvert = true
		}
	}
	if in.StartDate != nil {
		b.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		b.EndDate = *in.EndDate
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if reconvert {
		base, err := exchange.ConvertOrKeep(ctx, s.conv, b.MonthlyLimit, b.Currency, b.BaseCurrency)
		if err != nil {
			return nil, err
		}
		b.BaseAmount = base
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		return repo.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	repo, err := s.uow.BudgetRepository()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, userID, id)
}

// Remaining returns the remaining share of the limit in percent.
func (s *Service) Remaining(ctx context.Context, userID, id uuid.UUID) (decimal.Decimal, error) {
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return decimal.Zero, err
	}
	return b.RemainingPercentage(), nil
}

// AddSpent records spending against the budget, converting amount into the
// budget currency. It refuses once the budget period has ended and raises a
// budget_alert when the limit is exceeded.
func (s *Service) AddSpent(
	ctx context.Context,
	userID, id uuid.UUID,
	amount decimal.Decimal,
	currency string,
) (*domain.Budget, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	b, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if b.Ended(s.now()) {
		return nil, domain.ErrBudgetPeriodEnded
	}

	converted, err := exchange.ConvertOrKeep(ctx, s.conv, amount, s.currencyOrBase(currency), b.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.addSpent(ctx, b, converted); err != nil {
		return nil, err
	}
	return b, nil
}

// ApplyExpense adds an expense transaction to every active budget in its
// category. It is best-effort: failures are logged and skipped.
func (s *Service) ApplyExpense(ctx context.Context, tx domain.Transaction) {
	if tx.Type != domain.TransactionExpense {
		return
	}
	log := s.logger.With("transaction_id", tx.ID, "category", tx.Category)

	repo, err := s.uow.BudgetRepository()
	if err != nil {
		log.Error("Failed to update budget on transaction", "error", err)
		return
	}
	budgets, err := repo.ListActive(ctx, tx.UserID, tx.Category, s.now())
	if err != nil {
		log.Error("Failed to update budget on transaction", "error", err)
		return
	}
	if len(budgets) == 0 {
		log.Debug("No active budget for category")
		return
	}

	for _, b := range budgets {
		converted, err := exchange.ConvertOrKeep(ctx, s.conv, tx.Amount, tx.Currency, b.Currency)
		if err != nil {
			log.Error("Failed to update budget on transaction", "budget_id", b.ID, "error", err)
			continue
		}
		if err := s.addSpent(ctx, b, converted); err != nil {
			log.Error("Failed to update budget on transaction", "budget_id", b.ID, "error", err)
			continue
		}
		log.Info("Budget updated", "budget_id", b.ID, "spent", b.Spent.StringFixed(2))
	}
}

// HandleTransactionCreated adapts ApplyExpense to the event bus.
func (s *Service) HandleTransactionCreated() eventbus.HandlerFunc {
	return func(ctx context.Context, e domain.Event) error {
		evt, ok := e.(domain.TransactionCreated)
		if !ok {
			return fmt.Errorf("budget: unexpected event %T", e)
		}
		s.ApplyExpense(ctx, evt.Transaction)
		return nil
	}
}

func (s *Service) addSpent(ctx context.Context, b *domain.Budget, amount decimal.Decimal) error {
	b.Spent = b.Spent.Add(amount)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.BudgetRepository()
		if err != nil {
			return err
		}
		return repo.Update(ctx, b)
	})
	if err != nil {
		return err
	}
	if b.Exceeded() {
		s.notifier.Notify(ctx, b.UserID, domain.NotificationBudgetAlert,
			fmt.Sprintf("Your budget for %s has been exceeded!", b.Category))
	}
	return nil
}

func (s *Service) currencyOrBase(code string) string {
	if c := exchange.NormalizeCode(code); c != "" {
		return c
	}
	return s.conv.BaseCurrency()
}
