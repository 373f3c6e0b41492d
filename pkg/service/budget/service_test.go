package budget_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/finance-tracker/internal/fixtures/mocks"
	"github.com/amirasaad/finance-tracker/internal/fixtures/testdb"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/service/budget"
	"github.com/amirasaad/finance-tracker/pkg/service/notification"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *budget.Service
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
		svc:    budget.New(uow, conv, notes, logger),
		notes:  notes,
		conv:   conv,
		userID: uuid.New(),
	}
}

func (f fixture) input(limit, currency string) budget.CreateInput {
	now := time.Now().UTC()
	return budget.CreateInput{
		UserID:       f.userID,
		Title:        "Groceries",
		Category:     domain.CategoryFood,
		MonthlyLimit: decimal.RequireFromString(limit),
		Currency:     currency,
		StartDate:    now.AddDate(0, 0, -1),
		EndDate:      now.AddDate(0, 1, 0),
	}
}

func (f fixture) notifications(t *testing.T) []*domain.Notification {
	t.Helper()
	items, _, err := f.notes.List(context.Background(), domain.NotificationFilter{UserID: f.userID})
	require.NoError(t, err)
	return items
}

func TestAdd(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("converts limit to base", func(t *testing.T) {
		f.conv.Rate("EUR", "USD", "1.1").Once()
		b, err := f.svc.Add(ctx, f.input("500", "eur"))
		require.NoError(t, err)
		assert.Equal(t, "EUR", b.Currency)
		assert.Equal(t, "USD", b.BaseCurrency)
		assert.Equal(t, "550.00", b.BaseAmount.StringFixed(2))
		assert.True(t, b.Spent.IsZero())
	})

	t.Run("defaults to base currency without converting", func(t *testing.T) {
		b, err := f.svc.Add(ctx, f.input("200", ""))
		require.NoError(t, err)
		assert.Equal(t, "USD", b.Currency)
		assert.True(t, b.BaseAmount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		in := f.input("0", "USD")
		_, err := f.svc.Add(ctx, in)
		require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

		in = f.input("10", "USD")
		in.EndDate = in.StartDate
		_, err = f.svc.Add(ctx, in)
		require.ErrorIs(t, err, domain.ErrEndBeforeStart)
	})

	t.Run("conversion failure stores nothing", func(t *testing.T) {
		f.conv.On("ConvertAmount", mock.Anything, "10", "GBP", "USD").
			Return(decimal.Zero, errors.New("Currency conversion failed: boom")).Once()
		_, err := f.svc.Add(ctx, f.input("10", "GBP"))
		require.Error(t, err)

		list, err := f.svc.List(ctx, f.userID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Add(ctx, f.input("100", "USD"))
	require.NoError(t, err)

	title := "Food & drinks"
	got, err := f.svc.Update(ctx, f.userID, b.ID, budget.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.True(t, got.BaseAmount.Equal(decimal.NewFromInt(100)))

	f.conv.Rate("EUR", "USD", "2").Once()
	limit := decimal.NewFromInt(300)
	cur := "EUR"
	got, err = f.svc.Update(ctx, f.userID, b.ID, budget.UpdateInput{MonthlyLimit: &limit, Currency: &cur})
	require.NoError(t, err)
	assert.Equal(t, "600.00", got.BaseAmount.StringFixed(2))

	stored, err := f.svc.Get(ctx, f.userID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored.Currency)
	assert.Equal(t, title, stored.Title)

	_, err = f.svc.Update(ctx, uuid.New(), b.ID, budget.UpdateInput{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddSpent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Add(ctx, f.input("100", "USD"))
	require.NoError(t, err)

	_, err = f.svc.AddSpent(ctx, f.userID, b.ID, decimal.Zero, "USD")
	require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

	got, err := f.svc.AddSpent(ctx, f.userID, b.ID, decimal.NewFromInt(60), "USD")
	require.NoError(t, err)
	assert.Equal(t, "60.00", got.Spent.StringFixed(2))
	assert.Empty(t, f.notifications(t), "no alert below the limit")

	remaining, err := f.svc.Remaining(ctx, f.userID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "40", remaining.String())

	f.conv.Rate("EUR", "USD", "1.5").Once()
	got, err = f.svc.AddSpent(ctx, f.userID, b.ID, decimal.NewFromInt(30), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "105.00", got.Spent.StringFixed(2))

	notes := f.notifications(t)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationBudgetAlert, notes[0].Type)
	assert.Equal(t, "Your budget for Food has been exceeded!", notes[0].Message)
}

func TestAddSpent_PeriodEnded(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.input("100", "USD")
	in.StartDate = time.Now().AddDate(0, -2, 0)
	in.EndDate = time.Now().AddDate(0, -1, 0)
	b, err := f.svc.Add(ctx, in)
	require.NoError(t, err)

	_, err = f.svc.AddSpent(ctx, f.userID, b.ID, decimal.NewFromInt(1), "USD")
	require.ErrorIs(t, err, domain.ErrBudgetPeriodEnded)
}

func TestHandleTransactionCreated(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	handler := f.svc.HandleTransactionCreated()

	f.conv.Rate("EUR", "USD", "1").Once()
	b, err := f.svc.Add(ctx, f.input("50", "EUR"))
	require.NoError(t, err)

	expense := domain.Transaction{
		ID:       uuid.New(),
		UserID:   f.userID,
		Type:     domain.TransactionExpense,
		Amount:   decimal.NewFromInt(20),
		Currency: "USD",
		Category: domain.CategoryFood,
	}
	f.conv.Rate("USD", "EUR", "0.5").Once()
	require.NoError(t, handler(ctx, domain.TransactionCreated{Transaction: expense}))

	income := expense
	income.Type = domain.TransactionIncome
	require.NoError(t, handler(ctx, domain.TransactionCreated{Transaction: income}))

	other := expense
	other.Category = domain.CategoryBills
	require.NoError(t, handler(ctx, domain.TransactionCreated{Transaction: other}))

	got, err := f.svc.Get(ctx, f.userID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.Spent.StringFixed(2))

	require.Error(t, handler(ctx, domain.NotificationCreated{}))
}
