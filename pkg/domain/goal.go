package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target that can be fed manually or by a share of
// matching income transactions.
type Goal struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Title                string
	TargetAmount         decimal.Decimal
	SavedAmount          decimal.Decimal
	Currency             string
	BaseAmount           decimal.Decimal
	BaseCurrency         string
	Deadline             *time.Time
	IsCompleted          bool
	AllocationCategories []Category
	AllocationPercentage decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Validate checks the target and allocation settings.
func (g *Goal) Validate() error {
	if !g.TargetAmount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if err := ValidateAllocationPercentage(g.AllocationPercentage); err != nil {
		return err
	}
	for _, c := range g.AllocationCategories {
		if !c.Valid() {
			return ErrInvalidCategory
		}
	}
	return nil
}

// ValidateAllocationPercentage rejects values outside 0..100.
func ValidateAllocationPercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return ErrInvalidAllocationPercentage
	}
	return nil
}

// AddSavings adds amount (already in the goal currency) and marks the goal
// completed once the target is reached.
func (g *Goal) AddSavings(amount decimal.Decimal) {
	g.SavedAmount = g.SavedAmount.Add(amount)
	if g.SavedAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.IsCompleted = true
	}
}

// Progress is saved / target * 100, rounded to 2 places.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.SavedAmount.Div(g.TargetAmount).Mul(hundred).Round(2)
}

// Allocates reports whether an income transaction in category should feed
// this goal.
func (g *Goal) Allocates(category Category) bool {
	return !g.IsCompleted &&
		g.AllocationPercentage.IsPositive() &&
		slices.Contains(g.AllocationCategories, category)
}

// Allocation is the share of amount this goal takes.
func (g *Goal) Allocation(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(g.AllocationPercentage).Div(hundred)
}
