// Package transaction records income and expense entries, normalizing each
// into the base currency and announcing it on the event bus.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow    repository.UnitOfWork
	conv   exchange.Converter
	bus    eventbus.Bus
	logger *slog.Logger
	now    func() time.Time
}

func New(
	uow repository.UnitOfWork,
	conv exchange.Converter,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		conv:   conv,
		bus:    bus,
		logger: logger.With("service", "transaction"),
		now:    time.Now,
	}
}

type CreateInput struct {
	UserID      uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Currency    string
	Category    domain.Category
	Tags        []string
	Comments    string
	Date        *time.Time
	IsRecurring bool
	Recurrence  domain.Recurrence
}

// UpdateInput carries optional changes; nil fields are left alone.
type UpdateInput struct {
	Type        *domain.TransactionType
	Amount      *decimal.Decimal
	Currency    *string
	Category    *domain.Category
	Tags        []string
	Comments    *string
	Date        *time.Time
	IsRecurring *bool
	Recurrence  *domain.Recurrence
}

// Add stores a new transaction. The amount is converted into the base
// currency first; a conversion failure aborts the whole operation. Once
// stored, transaction.created is emitted so budgets, goals and
// notifications can follow up.
func (s *Service) Add(ctx context.Context, in CreateInput) (*domain.Transaction, error) {
	date := s.now().UTC()
	if in.Date != nil {
		date = *in.Date
	}
	tx := &domain.Transaction{
		ID:           uuid.New(),
		UserID:       in.UserID,
		Type:         in.Type,
		Amount:       in.Amount,
		Currency:     s.currencyOrBase(in.Currency),
		BaseCurrency: s.conv.BaseCurrency(),
		Category:     in.Category,
		Tags:         in.Tags,
		Comments:     in.Comments,
		Date:         date,
		IsRecurring:  in.IsRecurring,
		Recurrence:   in.Recurrence,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	base, err := exchange.ToBase(ctx, s.conv, tx.Amount, tx.Currency)
	if err != nil {
		s.logger.Error("Failed to convert transaction amount", "currency", tx.Currency, "error", err)
		return nil, err
	}
	tx.BaseAmount = base
	tx.Schedule(date)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Transaction created",
		"transaction_id", tx.ID,
		"user_id", tx.UserID,
		"type", tx.Type,
		"base_amount", tx.BaseAmount.StringFixed(2),
	)

	if s.bus != nil {
		if err := s.bus.Emit(ctx, domain.TransactionCreated{Transaction: *tx}); err != nil {
			s.logger.Warn("Failed to emit transaction event", "transaction_id", tx.ID, "error", err)
		}
	}
	return tx, nil
}

// List returns one page of the user's transactions and the total count.
func (s *Service) List(
	ctx context.Context,
	filter domain.TransactionFilter,
) (items []*domain.Transaction, total int64, err error) {
	filter.Normalize()
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, 0, err
	}
	return repo.List(ctx, filter)
}

// Get returns a transaction. When currency is set and differs from the
// stored one, Amount and Currency are re-expressed from the base amount.
func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
	currency string,
) (*domain.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	currency = exchange.NormalizeCode(currency)
	if currency == "" || currency == tx.Currency {
		return tx, nil
	}
	converted, err := exchange.ConvertOrKeep(ctx, s.conv, tx.BaseAmount, tx.BaseCurrency, currency)
	if err != nil {
		return nil, err
	}
	tx.Amount = converted
	tx.Currency = currency
	return tx, nil
}

// Update applies in. Changing the currency requires an amount, and any
// change of amount or currency recomputes the base amount. Turning
// IsRecurring off clears the recurrence and the next due date.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	in UpdateInput,
) (*domain.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reconvert := false
	if in.Currency != nil {
		c := exchange.NormalizeCode(*in.Currency)
		if c != "" && c != tx.Currency {
			if in.Amount == nil {
				return nil, domain.ErrAmountRequiredForConversion
			}
			tx.Currency = c
			reconvert = true
		}
	}
	if in.Amount != nil && !in.Amount.Equal(tx.Amount) {
		tx.Amount = *in.Amount
		reconvert = true
	}
	if in.Type != nil {
		tx.Type = *in.Type
	}
	if in.Category != nil {
		tx.Category = *in.Category
	}
	if in.Tags != nil {
		tx.Tags = in.Tags
	}
	if in.Comments != nil {
		tx.Comments = *in.Comments
	}

	reschedule := false
	if in.Date != nil {
		tx.Date = *in.Date
		reschedule = true
	}
	if in.IsRecurring != nil && *in.IsRecurring != tx.IsRecurring {
		tx.IsRecurring = *in.IsRecurring
		reschedule = true
	}
	if in.Recurrence != nil && *in.Recurrence != tx.Recurrence {
		tx.Recurrence = *in.Recurrence
		reschedule = true
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if reschedule {
		tx.Schedule(tx.Date)
	}

	if reconvert {
		base, err := exchange.ConvertOrKeep(ctx, s.conv, tx.Amount, tx.Currency, tx.BaseCurrency)
		if err != nil {
			return nil, err
		}
		tx.BaseAmount = base
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		return repo.Update(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, userID, id)
}

// ConvertQuote converts amount between two currencies without storing
// anything. An empty to means the base currency. The result carries exactly
// two decimals.
func (s *Service) ConvertQuote(
	ctx context.Context,
	amount decimal.Decimal,
	from, to string,
) (string, error) {
	to = s.currencyOrBase(to)
	converted, err := s.conv.ConvertAmount(ctx, amount, from, to)
	if err != nil {
		return "", err
	}
	return converted.StringFixed(2), nil
}

// BaseCurrency is the currency amounts are stored in.
func (s *Service) BaseCurrency() string {
	return s.conv.BaseCurrency()
}

func (s *Service) currencyOrBase(code string) string {
	if c := exchange.NormalizeCode(code); c != "" {
		return c
	}
	return s.conv.BaseCurrency()
}
