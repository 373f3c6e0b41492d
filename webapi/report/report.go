package report

import (
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	reportsvc "github.com/amirasaad/finance-tracker/pkg/service/report"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IncomeVsExpensesResponse struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Currency string          `json:"currency,omitempty"`
}

type MonthlySpendingResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type GoalProgressResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Currency     string          `json:"currency"`
	Progress     decimal.Decimal `json:"progress"`
	IsCompleted  bool            `json:"isCompleted"`
}

func Routes(app *fiber.App, svc *reportsvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/reports", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/income-vs-expenses", IncomeVsExpenses(svc))
	g.Get("/spending-trends", SpendingTrends(svc))
	g.Get("/goals-progress", GoalsProgress(svc))
}

// @Router /api/v1/reports/income-vs-expenses [get]
// @Security Bearer
func IncomeVsExpenses(svc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		start, err := common.DateQuery(c, "startDate", false)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		end, err := common.DateQuery(c, "endDate", true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		r, err := svc.IncomeVsExpenses(c.Context(), userID, start, end)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build report", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Income vs expenses", IncomeVsExpensesResponse{
			Income:   r.Income,
			Expenses: r.Expenses,
			Net:      r.Net,
			Currency: r.Currency,
		})
	}
}

// @Router /api/v1/reports/spending-trends [get]
// @Security Bearer
func SpendingTrends(svc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		start, err := common.DateQuery(c, "startDate", false)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		end, err := common.DateQuery(c, "endDate", true)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		trends, err := svc.SpendingTrends(c.Context(), userID, start, end)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build report", err)
		}
		out := make([]MonthlySpendingResponse, 0, len(trends))
		for _, m := range trends {
			out = append(out, MonthlySpendingResponse{Month: m.Month, Total: m.Total})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Spending trends", out)
	}
}

// @Router /api/v1/reports/goals-progress [get]
// @Security Bearer
func GoalsProgress(svc *reportsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		progress, err := svc.GoalsProgress(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build report", err)
		}
		out := make([]GoalProgressResponse, 0, len(progress))
		for _, p := range progress {
			out = append(out, GoalProgressResponse{
				ID:           p.ID,
				Title:        p.Title,
				TargetAmount: p.TargetAmount,
				SavedAmount:  p.SavedAmount,
				Currency:     p.Currency,
				Progress:     p.Progress,
				IsCompleted:  p.IsCompleted,
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goals progress", out)
	}
}
