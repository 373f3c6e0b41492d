package app

import (
	"log/slog"

	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/amirasaad/finance-tracker/pkg/service/auth"
	"github.com/amirasaad/finance-tracker/pkg/service/budget"
	"github.com/amirasaad/finance-tracker/pkg/service/goal"
	"github.com/amirasaad/finance-tracker/pkg/service/notification"
	"github.com/amirasaad/finance-tracker/pkg/service/recurring"
	"github.com/amirasaad/finance-tracker/pkg/service/report"
	"github.com/amirasaad/finance-tracker/pkg/service/transaction"
	"github.com/amirasaad/finance-tracker/pkg/service/user"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow       repository.UnitOfWork
	Converter exchange.Converter
	EventBus  eventbus.Bus
	// NotificationSink, when set, receives every notification.created
	// event, typically to publish it to Kafka.
	NotificationSink eventbus.HandlerFunc
	Metrics          prometheus.Gatherer
	Logger           *slog.Logger
}

type App struct {
	Deps                *Deps
	Config              *config.App
	UserService         *user.Service
	AuthService         *auth.Service
	TransactionService  *transaction.Service
	BudgetService       *budget.Service
	GoalService         *goal.Service
	NotificationService *notification.Service
	ReportService       *report.Service
	RecurringService    *recurring.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	var jwtCfg *config.Jwt
	if cfg != nil && cfg.Auth != nil {
		jwtCfg = cfg.Auth.Jwt
	}
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.AuthService = auth.New(deps.Uow, jwtCfg, deps.Logger)
	app.NotificationService = notification.New(deps.Uow, deps.EventBus, deps.Logger)
	app.BudgetService = budget.New(deps.Uow, deps.Converter, app.NotificationService, deps.Logger)
	app.GoalService = goal.New(deps.Uow, deps.Converter, app.NotificationService, deps.Logger)
	app.TransactionService = transaction.New(deps.Uow, deps.Converter, deps.EventBus, deps.Logger)
	app.ReportService = report.New(deps.Uow, deps.Converter, app.GoalService, deps.Logger)
	app.RecurringService = recurring.New(deps.Uow, app.NotificationService, deps.Logger)
	app.setupEventBus()
	return app
}
