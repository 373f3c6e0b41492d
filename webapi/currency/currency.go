package currency

import (
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	txsvc "github.com/amirasaad/finance-tracker/pkg/service/transaction"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ConvertRequest is the body of POST /api/v1/convert.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from" validate:"required,len=3,alpha"`
	To     string          `json:"to" validate:"omitempty,len=3,alpha"`
}

type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	ConvertedAmount string          `json:"convertedAmount"`
}

func Routes(app *fiber.App, svc *txsvc.Service, cfg *config.App) {
	app.Post("/api/v1/convert", middleware.JwtProtected(cfg.Auth.Jwt), Convert(svc))
}

// Convert quotes amount in another currency without storing anything.
// @Summary Convert an amount between currencies
// @Tags currency
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/v1/convert [post]
// @Security Bearer
func Convert(svc *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConvertRequest](c)
		if input == nil {
			return err
		}
		if !input.Amount.IsPositive() {
			return common.ProblemDetailsJSON(c, "Invalid amount", domain.ErrAmountMustBePositive)
		}
		from, to := exchange.NormalizeCode(input.From), exchange.NormalizeCode(input.To)
		if to == "" {
			to = svc.BaseCurrency()
		}
		converted, err := svc.ConvertQuote(c.Context(), input.Amount, from, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Currency conversion failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Conversion successful", ConvertResponse{
			Amount:          input.Amount,
			From:            from,
			To:              to,
			ConvertedAmount: converted,
		})
	}
}
