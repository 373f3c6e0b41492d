package goal_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/finance-tracker/internal/fixtures/mocks"
	"github.com/amirasaad/finance-tracker/internal/fixtures/testdb"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/service/goal"
	"github.com/amirasaad/finance-tracker/pkg/service/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *goal.Service
	notes  *notification.Service
	conv   *mocks.MockConverter
	userID uuid.UUID
}

func setup(t *testing.T) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := testdb.NewUoW(t)
	conv := mocks.NewMockConverter(t, "USD")
	notes := notification.New(uow, nil, logger)
	return fixture{
		svc:    goal.New(uow, conv, notes, logger),
		notes:  notes,
		conv:   conv,
		userID: uuid.New(),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddAndProgress(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.conv.Rate("EUR", "USD", "1.1").Once()
	g, err := f.svc.Add(ctx, goal.CreateInput{
		UserID:       f.userID,
		Title:        "Holiday",
		TargetAmount: dec("1000"),
		Currency:     "eur",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", g.Currency)
	assert.Equal(t, "1100.00", g.BaseAmount.StringFixed(2))

	_, err = f.svc.AddSavings(ctx, f.userID, g.ID, dec("250"), "EUR")
	require.NoError(t, err)

	progress, err := f.svc.Progress(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, "25", progress[0].Progress.String())
	assert.False(t, progress[0].IsCompleted)

	f.conv.Rate("USD", "EUR", "1").Once()
	got, err := f.svc.AddSavings(ctx, f.userID, g.ID, dec("750"), "USD")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
}

func TestAdd_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, goal.CreateInput{UserID: f.userID, Title: "x", TargetAmount: dec("0")})
	require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

	_, err = f.svc.Add(ctx, goal.CreateInput{
		UserID:               f.userID,
		Title:                "x",
		TargetAmount:         dec("10"),
		AllocationPercentage: dec("101"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAllocationPercentage)

	_, err = f.svc.AddSavings(ctx, f.userID, uuid.New(), dec("1"), "USD")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	g, err := f.svc.Add(ctx, goal.CreateInput{UserID: f.userID, Title: "Car", TargetAmount: dec("100")})
	require.NoError(t, err)
	_, err = f.svc.AddSavings(ctx, f.userID, g.ID, dec("80"), "")
	require.NoError(t, err)

	target := dec("50")
	pct := dec("10")
	got, err := f.svc.Update(ctx, f.userID, g.ID, goal.UpdateInput{
		TargetAmount:         &target,
		AllocationPercentage: &pct,
		AllocationCategories: []domain.Category{domain.CategorySalary},
	})
	require.NoError(t, err)
	assert.True(t, got.IsCompleted, "lowering the target below savings completes the goal")
	assert.True(t, got.BaseAmount.Equal(target))

	stored, err := f.svc.Get(ctx, f.userID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{domain.CategorySalary}, stored.AllocationCategories)

	require.NoError(t, f.svc.Delete(ctx, f.userID, g.ID))
	_, err = f.svc.Get(ctx, f.userID, g.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAutoAllocate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.conv.Rate("EUR", "USD", "1").Once()
	eurGoal, err := f.svc.Add(ctx, goal.CreateInput{
		UserID:               f.userID,
		Title:                "Trip",
		TargetAmount:         dec("1000"),
		Currency:             "EUR",
		AllocationCategories: []domain.Category{domain.CategorySalary},
		AllocationPercentage: dec("10"),
	})
	require.NoError(t, err)

	unmatched, err := f.svc.Add(ctx, goal.CreateInput{
		UserID:               f.userID,
		Title:                "Stocks",
		TargetAmount:         dec("1000"),
		AllocationCategories: []domain.Category{domain.CategoryInvestment},
		AllocationPercentage: dec("50"),
	})
	require.NoError(t, err)

	handler := f.svc.HandleTransactionCreated()
	income := domain.Transaction{
		ID:       uuid.New(),
		UserID:   f.userID,
		Type:     domain.TransactionIncome,
		Amount:   dec("2000"),
		Currency: "USD",
		Category: domain.CategorySalary,
	}
	f.conv.Rate("USD", "EUR", "0.5").Once()
	require.NoError(t, handler(ctx, domain.TransactionCreated{Transaction: income}))

	expense := income
	expense.Type = domain.TransactionExpense
	require.NoError(t, handler(ctx, domain.TransactionCreated{Transaction: expense}))

	got, err := f.svc.Get(ctx, f.userID, eurGoal.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.SavedAmount.StringFixed(2))

	got, err = f.svc.Get(ctx, f.userID, unmatched.ID)
	require.NoError(t, err)
	assert.True(t, got.SavedAmount.IsZero())

	notes, _, err := f.notes.List(ctx, domain.NotificationFilter{UserID: f.userID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationGoalReminder, notes[0].Type)
	assert.Equal(t, "Allocate 100.00 EUR to Trip", notes[0].Message)

	require.Error(t, handler(ctx, domain.NotificationCreated{}))
}
