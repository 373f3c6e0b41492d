package app_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/finance-tracker/infra/eventbus"
	"github.com/amirasaad/finance-tracker/internal/fixtures/mocks"
	"github.com/amirasaad/finance-tracker/internal/fixtures/testdb"
	"github.com/amirasaad/finance-tracker/pkg/app"
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/service/budget"
	"github.com/amirasaad/finance-tracker/pkg/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresTransactionFanOut(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infraeventbus.NewWithMemory(logger)

	var sunk []domain.NotificationType
	a := app.New(&app.Deps{
		Uow:       testdb.NewUoW(t),
		Converter: mocks.NewMockConverter(t, "USD"),
		EventBus:  bus,
		NotificationSink: func(_ context.Context, e domain.Event) error {
			sunk = append(sunk, e.(domain.NotificationCreated).Notification.Type)
			return nil
		},
		Logger: logger,
	}, &config.App{})

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	_, err := a.BudgetService.Add(ctx, budget.CreateInput{
		UserID:       userID,
		Title:        "Going out",
		Category:     domain.CategoryEntertainment,
		MonthlyLimit: decimal.NewFromInt(10),
		StartDate:    now.AddDate(0, 0, -1),
		EndDate:      now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	_, err = a.TransactionService.Add(ctx, transaction.CreateInput{
		UserID:   userID,
		Type:     domain.TransactionExpense,
		Amount:   decimal.NewFromInt(25),
		Category: domain.CategoryEntertainment,
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.NotificationType{
		domain.NotificationBudgetAlert,
		domain.NotificationTransactionAlert,
	}, sunk)
}
