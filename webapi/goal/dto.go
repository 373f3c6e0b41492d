package goal

import (
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Title                string          `json:"title" validate:"required,max=100"`
	TargetAmount         decimal.Decimal `json:"targetAmount"`
	Currency             string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Deadline             *time.Time      `json:"deadline"`
	AllocationCategories []string        `json:"allocationCategories"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"`
}

type UpdateRequest struct {
	Title                *string          `json:"title" validate:"omitempty,max=100"`
	TargetAmount         *decimal.Decimal `json:"targetAmount"`
	Currency             *string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Deadline             *time.Time       `json:"deadline"`
	AllocationCategories []string         `json:"allocationCategories"`
	AllocationPercentage *decimal.Decimal `json:"allocationPercentage"`
}

// SavingsRequest is the body of POST /api/v1/goals/:id/savings.
type SavingsRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,len=3,alpha"`
}

type Response struct {
	ID                   uuid.UUID       `json:"id"`
	Title                string          `json:"title"`
	TargetAmount         decimal.Decimal `json:"targetAmount"`
	SavedAmount          decimal.Decimal `json:"savedAmount"`
	Currency             string          `json:"currency"`
	BaseAmount           decimal.Decimal `json:"baseAmount"`
	BaseCurrency         string          `json:"baseCurrency"`
	Deadline             *time.Time      `json:"deadline,omitempty"`
	IsCompleted          bool            `json:"isCompleted"`
	Progress             decimal.Decimal `json:"progress"`
	AllocationCategories []string        `json:"allocationCategories"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"`
}

func toResponse(g *domain.Goal) Response {
	cats := make([]string, 0, len(g.AllocationCategories))
	for _, c := range g.AllocationCategories {
		cats = append(cats, string(c))
	}
	return Response{
		ID:                   g.ID,
		Title:                g.Title,
		TargetAmount:         g.TargetAmount,
		SavedAmount:          g.SavedAmount,
		Currency:             g.Currency,
		BaseAmount:           g.BaseAmount,
		BaseCurrency:         g.BaseCurrency,
		Deadline:             g.Deadline,
		IsCompleted:          g.IsCompleted,
		Progress:             g.Progress(),
		AllocationCategories: cats,
		AllocationPercentage: g.AllocationPercentage,
	}
}

func toCategories(in []string) []domain.Category {
	if in == nil {
		return nil
	}
	out := make([]domain.Category, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Category(c))
	}
	return out
}
