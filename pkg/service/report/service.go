// Package report aggregates a user's transactions and goals into summary
// views. All money figures are in the current base currency; transactions
// normalized into an earlier base currency are left out of the totals.
package report

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/amirasaad/finance-tracker/pkg/service/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow    repository.UnitOfWork
	conv   exchange.Converter
	goals  *goal.Service
	logger *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	conv exchange.Converter,
	goals *goal.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		conv:   conv,
		goals:  goals,
		logger: logger.With("service", "report"),
	}
}

// IncomeVsExpenses holds totals per transaction type.
type IncomeVsExpenses struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Currency string
}

// MonthlySpending is the expense total of one calendar month (YYYY-MM).
type MonthlySpending struct {
	Month string
	Total decimal.Decimal
}

// IncomeVsExpenses sums base amounts by type for transactions dated within
// [start, end]. Nil bounds are open.
func (s *Service) IncomeVsExpenses(
	ctx context.Context,
	userID uuid.UUID,
	start, end *time.Time,
) (*IncomeVsExpenses, error) {
	txs, err := s.transactions(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	out := &IncomeVsExpenses{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Currency: s.conv.BaseCurrency(),
	}
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionIncome:
			out.Income = out.Income.Add(tx.BaseAmount)
		case domain.TransactionExpense:
			out.Expenses = out.Expenses.Add(tx.BaseAmount)
		}
	}
	out.Net = out.Income.Sub(out.Expenses)
	return out, nil
}

// SpendingTrends groups expenses by month, oldest month first.
func (s *Service) SpendingTrends(
	ctx context.Context,
	userID uuid.UUID,
	start, end *time.Time,
) ([]MonthlySpending, error) {
	txs, err := s.transactions(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != domain.TransactionExpense {
			continue
		}
		month := tx.Date.UTC().Format("2006-01")
		totals[month] = totals[month].Add(tx.BaseAmount)
	}

	out := make([]MonthlySpending, 0, len(totals))
	for month, total := range totals {
		out = append(out, MonthlySpending{Month: month, Total: total})
	}
	slices.SortFunc(out, func(a, b MonthlySpending) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		}
		return 0
	})
	return out, nil
}

// GoalsProgress lists every goal with its completion percentage.
func (s *Service) GoalsProgress(ctx context.Context, userID uuid.UUID) ([]goal.Progress, error) {
	return s.goals.Progress(ctx, userID)
}

func (s *Service) transactions(
	ctx context.Context,
	userID uuid.UUID,
	start, end *time.Time,
) ([]*domain.Transaction, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, domain.ErrEndBeforeStart
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	all, err := repo.ListInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	base := s.conv.BaseCurrency()
	txs := all[:0]
	skipped := 0
	for _, tx := range all {
		if tx.BaseCurrency != base {
			skipped++
			continue
		}
		txs = append(txs, tx)
	}
	if skipped > 0 {
		s.logger.Warn("Skipping transactions normalized into another base currency",
			"user_id", userID,
			"base_currency", base,
			"skipped", skipped,
		)
	}
	return txs, nil
}
