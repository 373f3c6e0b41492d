package domain

import (
	"slices"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Category classifies transactions and budgets.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBills          Category = "Bills"
	CategoryShopping       Category = "Shopping"
	CategorySalary         Category = "Salary"
	CategoryInvestment     Category = "Investment"
	CategoryOther          Category = "Other"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryBills,
	CategoryShopping,
	CategorySalary,
	CategoryInvestment,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// MaxCommentsLength bounds Transaction.Comments in characters.
const MaxCommentsLength = 200

// Transaction is a single income or expense entry.
//
// Amount is expressed in Currency; BaseAmount holds the same value
// normalized into BaseCurrency at creation time.
type Transaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Type         TransactionType
	Amount       decimal.Decimal
	Currency     string
	BaseAmount   decimal.Decimal
	BaseCurrency string
	Category     Category
	Tags         []string
	Comments     string
	Date         time.Time
	IsRecurring  bool
	Recurrence   Recurrence
	NextDueDate  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the fields that do not depend on conversion.
func (t *Transaction) Validate() error {
	if t.Type != TransactionIncome && t.Type != TransactionExpense {
		return ErrInvalidTransactionType
	}
	if !t.Amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if utf8.RuneCountInString(t.Comments) > MaxCommentsLength {
		return ErrCommentsTooLong
	}
	if t.IsRecurring && t.Recurrence != "" && !t.Recurrence.Valid() {
		return ErrInvalidRecurrence
	}
	return nil
}

// Schedule sets NextDueDate from the recurrence, or clears it when the
// transaction is not recurring.
func (t *Transaction) Schedule(from time.Time) {
	if !t.IsRecurring {
		t.Recurrence = ""
		t.NextDueDate = nil
		return
	}
	if due, ok := t.Recurrence.Next(from); ok {
		t.NextDueDate = &due
		return
	}
	t.NextDueDate = nil
}

// TransactionFilter narrows a transaction listing. Zero values are ignored.
type TransactionFilter struct {
	UserID    uuid.UUID
	Tag       string
	Category  Category
	Type      TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// Normalize applies the default page (1) and limit (10).
func (f *TransactionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
}

// Offset is the number of rows to skip for the current page.
func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
