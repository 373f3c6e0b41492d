// Package webapi provides the HTTP API of the finance tracker.
// It is organized into sub-packages per resource:
// - user: registration and the caller's profile
// - auth: login and logout
// - transaction: income and expense entries
// - budget: spending budgets
// - goal: savings goals
// - notification: user notifications
// - report: aggregated reports
// - currency: ad hoc currency conversion
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/finance-tracker/pkg/app"
	authweb "github.com/amirasaad/finance-tracker/webapi/auth"
	budgetweb "github.com/amirasaad/finance-tracker/webapi/budget"
	"github.com/amirasaad/finance-tracker/webapi/common"
	currencyweb "github.com/amirasaad/finance-tracker/webapi/currency"
	goalweb "github.com/amirasaad/finance-tracker/webapi/goal"
	notificationweb "github.com/amirasaad/finance-tracker/webapi/notification"
	reportweb "github.com/amirasaad/finance-tracker/webapi/report"
	transactionweb "github.com/amirasaad/finance-tracker/webapi/transaction"
	userweb "github.com/amirasaad/finance-tracker/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp builds the fiber application with every route registered.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, then X-Real-IP, then the
	// direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Finance tracker API is running", nil)
	})
	if a.Deps.Metrics != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(a.Deps.Metrics, promhttp.HandlerOpts{}),
		))
	}

	userweb.Routes(fiberApp, a.UserService, a.Config)
	authweb.Routes(fiberApp, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.TransactionService, a.Config)
	budgetweb.Routes(fiberApp, a.BudgetService, a.Config)
	goalweb.Routes(fiberApp, a.GoalService, a.Config)
	notificationweb.Routes(fiberApp, a.NotificationService, a.Config)
	reportweb.Routes(fiberApp, a.ReportService, a.Config)
	currencyweb.Routes(fiberApp, a.TransactionService, a.Config)
	return fiberApp
}
