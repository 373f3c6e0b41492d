package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget caps spending in one category over a period.
type Budget struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Category     Category
	MonthlyLimit decimal.Decimal
	Spent        decimal.Decimal
	Currency     string
	BaseAmount   decimal.Decimal
	BaseCurrency string
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks limit, category and period ordering.
func (b *Budget) Validate() error {
	if !b.MonthlyLimit.IsPositive() {
		return ErrAmountMustBePositive
	}
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if !b.StartDate.Before(b.EndDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// Ended reports whether the budget period is over at now.
func (b *Budget) Ended(now time.Time) bool {
	return now.After(b.EndDate)
}

// Exceeded reports whether spending went past the limit.
func (b *Budget) Exceeded() bool {
	return b.Spent.GreaterThan(b.MonthlyLimit)
}

// RemainingPercentage is (limit - spent) / limit * 100, rounded to 2 places.
// It goes negative once the budget is exceeded.
func (b *Budget) RemainingPercentage() decimal.Decimal {
	if b.MonthlyLimit.IsZero() {
		return decimal.Zero
	}
	return b.MonthlyLimit.Sub(b.Spent).
		Div(b.MonthlyLimit).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
