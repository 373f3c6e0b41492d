package transaction

import (
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	txsvc "github.com/amirasaad/finance-tracker/pkg/service/transaction"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the transaction endpoints. All of them require a JWT.
func Routes(app *fiber.App, svc *txsvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/transactions", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Post("/", Create(svc))
	g.Get("/", List(svc))
	g.Get("/:id", Get(svc))
	g.Put("/:id", Update(svc))
	g.Delete("/:id", Delete(svc))
}

// Create adds a transaction, converting its amount into the base currency.
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Transaction"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/v1/transactions [post]
// @Security Bearer
func Create(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		tx, err := svc.Add(c.Context(), txsvc.CreateInput{
			UserID:      userID,
			Type:        domain.TransactionType(input.Type),
			Amount:      input.Amount,
			Currency:    input.Currency,
			Category:    domain.Category(input.Category),
			Tags:        input.Tags,
			Comments:    input.Comments,
			Date:        input.Date,
			IsRecurring: input.IsRecurring,
			Recurrence:  domain.Recurrence(input.Recurrence),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", toResponse(tx))
	}
}

// List returns the caller's transactions, newest first. Supported query
// parameters: tag, category, type, startDate, endDate, page, limit.
// @Router /api/v1/transactions [get]
// @Security Bearer
func List(svc *txsvc.Service) fiber.Handler {
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
		filter := domain.TransactionFilter{
			UserID:    userID,
			Tag:       c.Query("tag"),
			Category:  domain.Category(c.Query("category")),
			Type:      domain.TransactionType(c.Query("type")),
			StartDate: start,
			EndDate:   end,
			Page:      c.QueryInt("page", 1),
			Limit:     c.QueryInt("limit", 10),
		}
		filter.Normalize()
		items, total, err := svc.List(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", common.Page[Response]{
			Items: toResponses(items),
			Total: total,
			Page:  filter.Page,
			Limit: filter.Limit,
		})
	}
}

// Get returns one transaction. With ?currency=XXX the amount is expressed
// in that currency.
// @Router /api/v1/transactions/{id} [get]
// @Security Bearer
func Get(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		tx, err := svc.Get(c.Context(), userID, id, c.Query("currency"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", toResponse(tx))
	}
}

// @Router /api/v1/transactions/{id} [put]
// @Security Bearer
func Update(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		in := txsvc.UpdateInput{
			Amount:      input.Amount,
			Currency:    input.Currency,
			Tags:        input.Tags,
			Comments:    input.Comments,
			Date:        input.Date,
			IsRecurring: input.IsRecurring,
		}
		if input.Type != nil {
			typ := domain.TransactionType(*input.Type)
			in.Type = &typ
		}
		if input.Category != nil {
			cat := domain.Category(*input.Category)
			in.Category = &cat
		}
		if input.Recurrence != nil {
			rec := domain.Recurrence(*input.Recurrence)
			in.Recurrence = &rec
		}
		tx, err := svc.Update(c.Context(), userID, id, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", toResponse(tx))
	}
}

// @Router /api/v1/transactions/{id} [delete]
// @Security Bearer
func Delete(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}
