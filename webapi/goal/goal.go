package goal

import (
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	goalsvc "github.com/amirasaad/finance-tracker/pkg/service/goal"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, svc *goalsvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/goals", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", Create(svc))
	g.Get("/", List(svc))
	g.Get("/:id", Get(svc))
	g.Put("/:id", Update(svc))
	g.Delete("/:id", Delete(svc))
	g.Post("/:id/savings", AddSavings(svc))
}

// @Router /api/v1/goals [post]
// @Security Bearer
func Create(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		g, err := svc.Add(c.Context(), goalsvc.CreateInput{
			UserID:               userID,
			Title:                input.Title,
			TargetAmount:         input.TargetAmount,
			Currency:             input.Currency,
			Deadline:             input.Deadline,
			AllocationCategories: toCategories(input.AllocationCategories),
			AllocationPercentage: input.AllocationPercentage,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Goal created", toResponse(g))
	}
}

// @Router /api/v1/goals [get]
// @Security Bearer
func List(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		goals, err := svc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list goals", err)
		}
		out := make([]Response, 0, len(goals))
		for _, g := range goals {
			out = append(out, toResponse(g))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goals fetched", out)
	}
}

// @Router /api/v1/goals/{id} [get]
// @Security Bearer
func Get(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		g, err := svc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal fetched", toResponse(g))
	}
}

// @Router /api/v1/goals/{id} [put]
// @Security Bearer
func Update(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		g, err := svc.Update(c.Context(), userID, id, goalsvc.UpdateInput{
			Title:                input.Title,
			TargetAmount:         input.TargetAmount,
			Currency:             input.Currency,
			Deadline:             input.Deadline,
			AllocationCategories: toCategories(input.AllocationCategories),
			AllocationPercentage: input.AllocationPercentage,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal updated", toResponse(g))
	}
}

// @Router /api/v1/goals/{id} [delete]
// @Security Bearer
func Delete(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal deleted", nil)
	}
}

// @Router /api/v1/goals/{id}/savings [post]
// @Security Bearer
func AddSavings(svc *goalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err)
		}
		input, err := common.BindAndValidate[SavingsRequest](c)
		if input == nil {
			return err
		}
		g, err := svc.AddSavings(c.Context(), userID, id, input.Amount, input.Currency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add savings", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Savings added", toResponse(g))
	}
}
