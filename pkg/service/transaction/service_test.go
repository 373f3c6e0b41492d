package transaction_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finance-tracker/infra/eventbus"
	"github.com/amirasaad/finance-tracker/internal/fixtures/mocks"
	"github.com/amirasaad/finance-tracker/internal/fixtures/testdb"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/service/budget"
	"github.com/amirasaad/finance-tracker/pkg/service/goal"
	"github.com/amirasaad/finance-tracker/pkg/service/notification"
	"github.com/amirasaad/finance-tracker/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *transaction.Service
	budgets *budget.Service
	goals   *goal.Service
	notes   *notification.Service
	bus     *mocks.RecordingBus
	conv    *mocks.MockConverter
	userID  uuid.UUID
}

func setup(t *testing.T) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := testdb.NewUoW(t)
	conv := mocks.NewMockConverter(t, "USD")
	bus := mocks.NewRecordingBus(infraeventbus.NewWithMemory(logger))

	notes := notification.New(uow, nil, logger)
	budgets := budget.New(uow, conv, notes, logger)
	goals := goal.New(uow, conv, notes, logger)
	bus.Register(domain.EventTransactionCreated, budgets.HandleTransactionCreated())
	bus.Register(domain.EventTransactionCreated, goals.HandleTransactionCreated())
	bus.Register(domain.EventTransactionCreated, notes.HandleTransactionCreated())

	return fixture{
		svc:     transaction.New(uow, conv, bus, logger),
		budgets: budgets,
		goals:   goals,
		notes:   notes,
		bus:     bus,
		conv:    conv,
		userID:  uuid.New(),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (f fixture) expense(amount, currency string) transaction.CreateInput {
	return transaction.CreateInput{
		UserID:   f.userID,
		Type:     domain.TransactionExpense,
		Amount:   dec(amount),
		Currency: currency,
		Category: domain.CategoryFood,
		Tags:     []string{"groceries"},
	}
}

func TestAdd_ConvertsToBase(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.conv.Rate("EUR", "USD", "1.2").Once()
	tx, err := f.svc.Add(ctx, f.expense("100", "eur"))
	require.NoError(t, err)
	assert.Equal(t, "EUR", tx.Currency)
	assert.Equal(t, "USD", tx.BaseCurrency)
	assert.Equal(t, "120.00", tx.BaseAmount.StringFixed(2))
	assert.Nil(t, tx.NextDueDate)

	stored, err := f.svc.Get(ctx, f.userID, tx.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"groceries"}, stored.Tags)
	assert.Equal(t, "120.00", stored.BaseAmount.StringFixed(2))
}

func TestAdd_SameCurrencySkipsConversion(t *testing.T) {
	f := setup(t)

	tx, err := f.svc.Add(context.Background(), f.expense("42.50", ""))
	require.NoError(t, err)
	assert.Equal(t, "USD", tx.Currency)
	assert.True(t, tx.BaseAmount.Equal(dec("42.50")))
	f.conv.AssertNotCalled(t, "ConvertAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdd_ConversionFailureAborts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	convErr := errors.New("Currency conversion failed: The supplied currency code is not supported.")
	f.conv.On("ConvertAmount", mock.Anything, "10", "XYZ", "USD").Return(decimal.Zero, convErr).Once()

	_, err := f.svc.Add(ctx, f.expense("10", "XYZ"))
	require.ErrorIs(t, err, convErr)
	assert.Empty(t, f.bus.Published())

	_, total, err := f.svc.List(ctx, domain.TransactionFilter{UserID: f.userID})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAdd_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.expense("0", "USD")
	_, err := f.svc.Add(ctx, in)
	require.ErrorIs(t, err, domain.ErrAmountMustBePositive)

	in = f.expense("1", "USD")
	in.Category = "Rent"
	_, err = f.svc.Add(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidCategory)

	in = f.expense("1", "USD")
	in.Type = "transfer"
	_, err = f.svc.Add(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}

func TestAdd_RecurringSchedulesNextDueDate(t *testing.T) {
	f := setup(t)

	date := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	in := f.expense("15", "USD")
	in.Date = &date
	in.IsRecurring = true
	in.Recurrence = domain.RecurrenceMonthly

	tx, err := f.svc.Add(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, tx.NextDueDate)
	assert.True(t, tx.NextDueDate.Equal(date.AddDate(0, 1, 0)))
}

func TestAdd_FansOutToBudgetsGoalsAndNotifications(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	now := time.Now().UTC()
	b, err := f.budgets.Add(ctx, budget.CreateInput{
		UserID:       f.userID,
		Title:        "Food",
		Category:     domain.CategoryFood,
		MonthlyLimit: dec("50"),
		StartDate:    now.AddDate(0, 0, -1),
		EndDate:      now.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	g, err := f.goals.Add(ctx, goal.CreateInput{
		UserID:               f.userID,
		Title:                "Emergency fund",
		TargetAmount:         dec("5000"),
		AllocationCategories: []domain.Category{domain.CategorySalary},
		AllocationPercentage: dec("20"),
	})
	require.NoError(t, err)

	_, err = f.svc.Add(ctx, f.expense("60", "USD"))
	require.NoError(t, err)

	income := f.expense("1000", "USD")
	income.Type = domain.TransactionIncome
	income.Category = domain.CategorySalary
	_, err = f.svc.Add(ctx, income)
	require.NoError(t, err)

	gotBudget, err := f.budgets.Get(ctx, f.userID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "60.00", gotBudget.Spent.StringFixed(2))

	gotGoal, err := f.goals.Get(ctx, f.userID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", gotGoal.SavedAmount.StringFixed(2))

	notes, total, err := f.notes.List(ctx, domain.NotificationFilter{UserID: f.userID, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	types := make([]domain.NotificationType, 0, len(notes))
	for _, n := range notes {
		types = append(types, n.Type)
	}
	assert.ElementsMatch(t, []domain.NotificationType{
		domain.NotificationBudgetAlert,
		domain.NotificationTransactionAlert,
		domain.NotificationGoalReminder,
		domain.NotificationTransactionAlert,
	}, types)
	assert.Len(t, f.bus.Published(), 2)
}

func TestGet_InRequestedCurrency(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.conv.Rate("EUR", "USD", "1.2").Once()
	tx, err := f.svc.Add(ctx, f.expense("100", "EUR"))
	require.NoError(t, err)

	f.conv.Rate("USD", "GBP", "0.5").Once()
	got, err := f.svc.Get(ctx, f.userID, tx.ID, "gbp")
	require.NoError(t, err)
	assert.Equal(t, "GBP", got.Currency)
	assert.Equal(t, "60.00", got.Amount.StringFixed(2))

	got, err = f.svc.Get(ctx, f.userID, tx.ID, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.Amount.StringFixed(2))

	_, err = f.svc.Get(ctx, uuid.New(), tx.ID, "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	in := f.expense("20", "USD")
	in.IsRecurring = true
	in.Recurrence = domain.RecurrenceWeekly
	tx, err := f.svc.Add(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, tx.NextDueDate)

	t.Run("currency change requires amount", func(t *testing.T) {
		cur := "EUR"
		_, err := f.svc.Update(ctx, f.userID, tx.ID, transaction.UpdateInput{Currency: &cur})
		require.ErrorIs(t, err, domain.ErrAmountRequiredForConversion)
	})

	t.Run("currency change reconverts", func(t *testing.T) {
		f.conv.Rate("EUR", "USD", "1.1").Once()
		cur := "EUR"
		amount := dec("30")
		got, err := f.svc.Update(ctx, f.userID, tx.ID, transaction.UpdateInput{Currency: &cur, Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, "33.00", got.BaseAmount.StringFixed(2))
	})

	t.Run("turning recurrence off clears schedule", func(t *testing.T) {
		off := false
		comments := "one-off after all"
		got, err := f.svc.Update(ctx, f.userID, tx.ID, transaction.UpdateInput{IsRecurring: &off, Comments: &comments})
		require.NoError(t, err)
		assert.False(t, got.IsRecurring)
		assert.Empty(t, got.Recurrence)
		assert.Nil(t, got.NextDueDate)

		stored, err := f.svc.Get(ctx, f.userID, tx.ID, "")
		require.NoError(t, err)
		assert.Nil(t, stored.NextDueDate)
		assert.Equal(t, comments, stored.Comments)
		assert.Equal(t, "EUR", stored.Currency)
	})

	require.NoError(t, f.svc.Delete(ctx, f.userID, tx.ID))
	require.ErrorIs(t, f.svc.Delete(ctx, f.userID, tx.ID), domain.ErrNotFound)
}

func TestConvertQuote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.conv.Rate("EUR", "USD", "1.2").Once()
	got, err := f.svc.ConvertQuote(ctx, dec("100"), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "120.00", got)

	convErr := &exchange.ConversionError{Kind: exchange.KindTransportFailure, Err: exchange.ErrTransport}
	f.conv.On("ConvertAmount", mock.Anything, "1", "EUR", "JPY").Return(decimal.Zero, convErr).Once()
	_, err = f.svc.ConvertQuote(ctx, dec("1"), "EUR", "JPY")
	assert.Equal(t, exchange.KindTransportFailure, exchange.KindOf(err))
}
