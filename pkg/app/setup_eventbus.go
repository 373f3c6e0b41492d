package app

import (
	"github.com/amirasaad/finance-tracker/pkg/domain"
)

// setupEventBus registers the follow-up work for new transactions. Budget
// and goal handlers run before the transaction alert so their own
// notifications are stored first.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	bus.Register(domain.EventTransactionCreated, a.BudgetService.HandleTransactionCreated())
	bus.Register(domain.EventTransactionCreated, a.GoalService.HandleTransactionCreated())
	bus.Register(domain.EventTransactionCreated, a.NotificationService.HandleTransactionCreated())

	if a.Deps.NotificationSink != nil {
		bus.Register(domain.EventNotificationCreated, a.Deps.NotificationSink)
	}
}
