package budget

import (
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	budgetsvc "github.com/amirasaad/finance-tracker/pkg/service/budget"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, svc *budgetsvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/budgets", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", Create(svc))
	g.Get("/", List(svc))
	g.Get("/:id", Get(svc))
	g.Put("/:id", Update(svc))
	g.Delete("/:id", Delete(svc))
	g.Post("/:id/spend", Spend(svc))
}

// @Router /api/v1/budgets [post]
// @Security Bearer
func Create(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		b, err := svc.Add(c.Context(), budgetsvc.CreateInput{
			UserID:       userID,
			Title:        input.Title,
			Category:     domain.Category(input.Category),
			MonthlyLimit: input.MonthlyLimit,
			Currency:     input.Currency,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Budget created", toResponse(b))
	}
}

// @Router /api/v1/budgets [get]
// @Security Bearer
func List(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		budgets, err := svc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list budgets", err)
		}
		out := make([]Response, 0, len(budgets))
		for _, b := range budgets {
			out = append(out, toResponse(b))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budgets fetched", out)
	}
}

// @Router /api/v1/budgets/{id} [get]
// @Security Bearer
func Get(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		b, err := svc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget fetched", toResponse(b))
	}
}

// @Router /api/v1/budgets/{id} [put]
// @Security Bearer
func Update(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		in := budgetsvc.UpdateInput{
			Title:        input.Title,
			MonthlyLimit: input.MonthlyLimit,
			Currency:     input.Currency,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
		}
		if input.Category != nil {
			cat := domain.Category(*input.Category)
			in.Category = &cat
		}
		b, err := svc.Update(c.Context(), userID, id, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget updated", toResponse(b))
	}
}

// @Router /api/v1/budgets/{id} [delete]
// @Security Bearer
func Delete(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete budget", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget deleted", nil)
	}
}

// Spend records spending against a budget outside of a transaction.
// @Router /api/v1/budgets/{id}/spend [post]
// @Security Bearer
func Spend(svc *budgetsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid budget ID", err)
		}
		input, err := common.BindAndValidate[SpendRequest](c)
		if input == nil {
			return err
		}
		b, err := svc.AddSpent(c.Context(), userID, id, input.Amount, input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to record spending", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Budget updated", toResponse(b))
	}
}
