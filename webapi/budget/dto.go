package budget

import (
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Title        string          `json:"title" validate:"required,max=100"`
	Category     string          `json:"category" validate:"required"`
	MonthlyLimit decimal.Decimal `json:"monthlyLimit"`
	Currency     string          `json:"currency" validate:"omitempty,len=3,alpha"`
	StartDate    time.Time       `json:"startDate" validate:"required"`
	EndDate      time.Time       `json:"endDate" validate:"required"`
}

type UpdateRequest struct {
	Title        *string          `json:"title" validate:"omitempty,max=100"`
	Category     *string          `json:"category"`
	MonthlyLimit *decimal.Decimal `json:"monthlyLimit"`
	Currency     *string          `json:"currency" validate:"omitempty,len=3,alpha"`
	StartDate    *time.Time       `json:"startDate"`
	EndDate      *time.Time       `json:"endDate"`
}

// SpendRequest is the body of POST /api/v1/budgets/:id/spend.
type SpendRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"omitempty,len=3,alpha"`
}

type Response struct {
	ID                  uuid.UUID       `json:"id"`
	Title               string          `json:"title"`
	Category            string          `json:"category"`
	MonthlyLimit        decimal.Decimal `json:"monthlyLimit"`
	Spent               decimal.Decimal `json:"spent"`
	Currency            string          `json:"currency"`
	BaseAmount          decimal.Decimal `json:"baseAmount"`
	BaseCurrency        string          `json:"baseCurrency"`
	RemainingPercentage decimal.Decimal `json:"remainingPercentage"`
	StartDate           time.Time       `json:"startDate"`
	EndDate             time.Time       `json:"endDate"`
}

func toResponse(b *domain.Budget) Response {
	return Response{
		ID:                  b.ID,
		Title:               b.Title,
		Category:            string(b.Category),
		MonthlyLimit:        b.MonthlyLimit,
		Spent:               b.Spent,
		Currency:            b.Currency,
		BaseAmount:          b.BaseAmount,
		BaseCurrency:        b.BaseCurrency,
		RemainingPercentage: b.RemainingPercentage(),
		StartDate:           b.StartDate,
		EndDate:             b.EndDate,
	}
}
