// Package goal manages savings goals and the automatic allocation of income
// into them.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/amirasaad/finance-tracker/pkg/service/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow      repository.UnitOfWork
	conv     exchange.Converter
	notifier budget.Notifier
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	conv exchange.Converter,
	notifier budget.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:      uow,
		conv:     conv,
		notifier: notifier,
		logger:   logger.With("service", "goal"),
	}
}

type CreateInput struct {
	UserID               uuid.UUID
	Title                string
	TargetAmount         decimal.Decimal
	Currency             string
	Deadline             *time.Time
	AllocationCategories []domain.Category
	AllocationPercentage decimal.Decimal
}

// UpdateInput carries optional changes; nil fields are left alone.
type UpdateInput struct {
	Title                *string
	TargetAmount         *decimal.Decimal
	Currency             *string
	Deadline             *time.Time
	AllocationCategories []domain.Category
	AllocationPercentage *decimal.Decimal
}

// Progress is the read model served by the goals progress report.
type Progress struct {
	ID           uuid.UUID
	Title        string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Currency     string
	Progress     decimal.Decimal
	IsCompleted  bool
}

// Add validates the goal, converts its target into the base currency and
// stores it.
func (s *Service) Add(ctx context.Context, in CreateInput) (*domain.Goal, error) {
	g := &domain.Goal{
		ID:                   uuid.New(),
		UserID:               in.UserID,
		Title:                in.Title,
		TargetAmount:         in.TargetAmount,
		SavedAmount:          decimal.Zero,
		Currency:             s.currencyOrBase(in.Currency),
		BaseCurrency:         s.conv.BaseCurrency(),
		Deadline:             in.Deadline,
		AllocationCategories: in.AllocationCategories,
		AllocationPercentage: in.AllocationPercentage,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	base, err := exchange.ToBase(ctx, s.conv, g.TargetAmount, g.Currency)
	if err != nil {
		return nil, err
	}
	g.BaseAmount = base

	if err := s.save(ctx, g, true); err != nil {
		return nil, err
	}
	s.logger.Info("Goal created", "goal_id", g.ID, "user_id", g.UserID)
	return g, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Goal, error) {
	repo, err := s.uow.GoalRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	repo, err := s.uow.GoalRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, userID)
}

// Update applies in and recomputes the base amount when the target or the
// currency changes. Completion is re-evaluated against the new target.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*domain.Goal, error) {
	g, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reconvert := false
	if in.Title != nil {
		g.Title = *in.Title
	}
	if in.TargetAmount != nil && !in.TargetAmount.Equal(g.TargetAmount) {
		g.TargetAmount = *in.TargetAmount
		g.IsCompleted = g.SavedAmount.GreaterThanOrEqual(g.TargetAmount)
		reconvert = true
	}
	if in.Currency != nil {
		if c := exchange.NormalizeCode(*in.Currency); c != "" && c != g.Currency {
			g.Currency = c
			reconvert = true
		}
	}
	if in.Deadline != nil {
		g.Deadline = in.Deadline
	}
	if in.AllocationCategories != nil {
		g.AllocationCategories = in.AllocationCategories
	}
	if in.AllocationPercentage != nil {
		g.AllocationPercentage = *in.AllocationPercentage
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	if reconvert {
		base, err := exchange.ConvertOrKeep(ctx, s.conv, g.TargetAmount, g.Currency, g.BaseCurrency)
		if err != nil {
			return nil, err
		}
		g.BaseAmount = base
	}
	if err := s.save(ctx, g, false); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	repo, err := s.uow.GoalRepository()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, userID, id)
}

// AddSavings adds amount, given in currency, to the goal's saved amount.
func (s *Service) AddSavings(
	ctx context.Context,
	userID, id uuid.UUID,
	amount decimal.Decimal,
	currency string,
) (*domain.Goal, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	g, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	converted, err := exchange.ConvertOrKeep(ctx, s.conv, amount, s.currencyOrBase(currency), g.Currency)
	if err != nil {
		return nil, err
	}
	g.AddSavings(converted)
	if err := s.save(ctx, g, false); err != nil {
		return nil, err
	}
	return g, nil
}

// Progress lists every goal of the user with its completion percentage.
func (s *Service) Progress(ctx context.Context, userID uuid.UUID) ([]Progress, error) {
	goals, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Progress, 0, len(goals))
	for _, g := range goals {
		out = append(out, Progress{
			ID:           g.ID,
			Title:        g.Title,
			TargetAmount: g.TargetAmount,
			SavedAmount:  g.SavedAmount,
			Currency:     g.Currency,
			Progress:     g.Progress(),
			IsCompleted:  g.IsCompleted,
		})
	}
	return out, nil
}

// AutoAllocate moves the configured share of an income transaction into
// every open goal that tracks its category. Failures on one goal are
// logged and do not stop the others.
func (s *Service) AutoAllocate(ctx context.Context, tx domain.Transaction) {
	if tx.Type != domain.TransactionIncome {
		return
	}
	log := s.logger.With("transaction_id", tx.ID, "category", tx.Category)

	repo, err := s.uow.GoalRepository()
	if err != nil {
		log.Error("Failed to allocate income to goals", "error", err)
		return
	}
	goals, err := repo.ListOpen(ctx, tx.UserID)
	if err != nil {
		log.Error("Failed to allocate income to goals", "error", err)
		return
	}

	for _, g := range goals {
		if !g.Allocates(tx.Category) {
			continue
		}
		share := g.Allocation(tx.Amount)
		converted, err := exchange.ConvertOrKeep(ctx, s.conv, share, tx.Currency, g.Currency)
		if err != nil {
			log.Error("Failed to allocate income to goal", "goal_id", g.ID, "error", err)
			continue
		}
		g.AddSavings(converted)
		if err := s.save(ctx, g, false); err != nil {
			log.Error("Failed to allocate income to goal", "goal_id", g.ID, "error", err)
			continue
		}
		log.Info("Income allocated to goal", "goal_id", g.ID, "amount", converted.StringFixed(2))
		s.notifier.Notify(ctx, g.UserID, domain.NotificationGoalReminder,
			fmt.Sprintf("Allocate %s %s to %s", converted.StringFixed(2), g.Currency, g.Title))
	}
}

// HandleTransactionCreated adapts AutoAllocate to the event bus.
func (s *Service) HandleTransactionCreated() eventbus.HandlerFunc {
	return func(ctx context.Context, e domain.Event) error {
		evt, ok := e.(domain.TransactionCreated)
		if !ok {
			return fmt.Errorf("goal: unexpected event %T", e)
		}
		s.AutoAllocate(ctx, evt.Transaction)
		return nil
	}
}

func (s *Service) save(ctx context.Context, g *domain.Goal, create bool) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		if create {
			return repo.Create(ctx, g)
		}
		return repo.Update(ctx, g)
	})
}

func (s *Service) currencyOrBase(code string) string {
	if c := exchange.NormalizeCode(code); c != "" {
		return c
	}
	return s.conv.BaseCurrency()
}
