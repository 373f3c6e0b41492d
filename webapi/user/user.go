package user

import (
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	usersvc "github.com/amirasaad/finance-tracker/pkg/service/user"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the account endpoints. Registration is public; the
// /me endpoints act on the caller and require a JWT.
func Routes(app *fiber.App, svc *usersvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/users")
	g.Post("/", Register(svc))

	me := g.Group("/me", middleware.JwtProtected(cfg.Auth.Jwt))
	me.Get("/", Profile(svc))
	me.Put("/", Update(svc))
	me.Delete("/", Delete(svc))
	me.Post("/validate-password", ValidatePassword(svc))
	me.Put("/password", ChangePassword(svc))
}

// Register creates an account.
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/v1/users [post]
func Register(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.Register(c.Context(), usersvc.RegisterInput{
			Firstname: input.Firstname,
			Lastname:  input.Lastname,
			Email:     input.Email,
			Password:  input.Password,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User created", ToResponse(u))
	}
}

// Profile returns the caller's account.
// @Router /api/v1/users/me [get]
// @Security Bearer
func Profile(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		u, err := svc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", ToResponse(u))
	}
}

// @Router /api/v1/users/me [put]
// @Security Bearer
func Update(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		u, err := svc.Update(c.Context(), userID, usersvc.UpdateInput{
			Firstname: input.Firstname,
			Lastname:  input.Lastname,
			Email:     input.Email,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", ToResponse(u))
	}
}

// @Router /api/v1/users/me [delete]
// @Security Bearer
func Delete(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if err := svc.Delete(c.Context(), userID); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User account deleted successfully", nil)
	}
}

// ValidatePassword reports whether currentPassword matches the caller's
// password, as {"valid": bool}.
// @Router /api/v1/users/me/validate-password [post]
// @Security Bearer
func ValidatePassword(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[PasswordRequest](c)
		if input == nil {
			return err
		}
		ok, err := svc.VerifyPassword(c.Context(), userID, input.CurrentPassword)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password checked", fiber.Map{"valid": ok})
	}
}

// @Router /api/v1/users/me/password [put]
// @Security Bearer
func ChangePassword(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[ChangePasswordRequest](c)
		if input == nil {
			return err
		}
		if err := svc.ChangePassword(c.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password updated successfully", nil)
	}
}
