package auth

import (
	"time"

	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	authsvc "github.com/amirasaad/finance-tracker/pkg/service/auth"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/amirasaad/finance-tracker/webapi/user"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, svc *authsvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/auth")
	g.Post("/login", Login(svc, cfg.Auth.Jwt))
	g.Post("/logout", middleware.JwtProtected(cfg.Auth.Jwt), Logout())
}

// Login authenticates by email and password. The token is returned in the
// body and also set as an HTTP-only cookie.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/v1/auth/login [post]
func Login(svc *authsvc.Service, cfg *config.Jwt) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		u, token, err := svc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     middleware.TokenCookie,
			Value:    token,
			Expires:  time.Now().Add(cfg.Expiry),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", LoginResponse{
			Token: token,
			User:  user.ToResponse(u),
		})
	}
}

// Logout expires the token cookie. Tokens are stateless, so a bearer token
// held by the client stays valid until it expires.
// @Router /api/v1/auth/logout [post]
// @Security Bearer
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.ClearCookie(middleware.TokenCookie)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
