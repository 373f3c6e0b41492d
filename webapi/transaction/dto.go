package transaction

import (
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequest is the body of POST /api/v1/transactions.
type CreateRequest struct {
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Category    string          `json:"category" validate:"required"`
	Tags        []string        `json:"tags" validate:"omitempty,dive,required,max=50"`
	Comments    string          `json:"comments" validate:"max=200"`
	Date        *time.Time      `json:"date"`
	IsRecurring bool            `json:"isRecurring"`
	Recurrence  string          `json:"recurrence" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

// UpdateRequest is the body of PUT /api/v1/transactions/:id. Omitted
// fields are left unchanged.
type UpdateRequest struct {
	Type        *string          `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    *string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Category    *string          `json:"category"`
	Tags        []string         `json:"tags" validate:"omitempty,dive,required,max=50"`
	Comments    *string          `json:"comments" validate:"omitempty,max=200"`
	Date        *time.Time       `json:"date"`
	IsRecurring *bool            `json:"isRecurring"`
	Recurrence  *string          `json:"recurrence" validate:"omitempty,oneof=daily weekly monthly yearly"`
}

type Response struct {
	ID           uuid.UUID       `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	BaseCurrency string          `json:"baseCurrency"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	Comments     string          `json:"comments,omitempty"`
	Date         time.Time       `json:"date"`
	IsRecurring  bool            `json:"isRecurring"`
	Recurrence   string          `json:"recurrence,omitempty"`
	NextDueDate  *time.Time      `json:"nextDueDate,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func toResponse(tx *domain.Transaction) Response {
	tags := tx.Tags
	if tags == nil {
		tags = []string{}
	}
	return Response{
		ID:           tx.ID,
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		Currency:     tx.Currency,
		BaseAmount:   tx.BaseAmount,
		BaseCurrency: tx.BaseCurrency,
		Category:     string(tx.Category),
		Tags:         tags,
		Comments:     tx.Comments,
		Date:         tx.Date,
		IsRecurring:  tx.IsRecurring,
		Recurrence:   string(tx.Recurrence),
		NextDueDate:  tx.NextDueDate,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

func toResponses(txs []*domain.Transaction) []Response {
	out := make([]Response, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	return out
}
