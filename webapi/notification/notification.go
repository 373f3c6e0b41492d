package notification

import (
	"strconv"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	notificationsvc "github.com/amirasaad/finance-tracker/pkg/service/notification"
	"github.com/amirasaad/finance-tracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Response struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(n *domain.Notification) Response {
	return Response{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func Routes(app *fiber.App, svc *notificationsvc.Service, cfg *config.App) {
	g := app.Group("/api/v1/notifications", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/", List(svc))
	g.Patch("/:id/read", MarkRead(svc))
	g.Delete("/:id", Delete(svc))
}

// List returns the caller's notifications, newest first. Supported query
// parameters: isRead, type, startDate, endDate, page, limit.
// @Router /api/v1/notifications [get]
// @Security Bearer
func List(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		filter := domain.NotificationFilter{
			UserID: userID,
			Type:   domain.NotificationType(c.Query("type")),
			Page:   c.QueryInt("page", 1),
			Limit:  c.QueryInt("limit", 10),
		}
		if raw := c.Query("isRead"); raw != "" {
			isRead, err := strconv.ParseBool(raw)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid query", domain.ErrValidation, "isRead must be true or false")
			}
			filter.IsRead = &isRead
		}
		if filter.StartDate, err = common.DateQuery(c, "startDate", false); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		if filter.EndDate, err = common.DateQuery(c, "endDate", true); err != nil {
			return common.ProblemDetailsJSON(c, "Invalid query", err)
		}
		filter.Normalize()

		items, total, err := svc.List(c.Context(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list notifications", err)
		}
		out := make([]Response, 0, len(items))
		for _, n := range items {
			out = append(out, toResponse(n))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications fetched", common.Page[Response]{
			Items: out,
			Total: total,
			Page:  filter.Page,
			Limit: filter.Limit,
		})
	}
}

// @Router /api/v1/notifications/{id}/read [patch]
// @Security Bearer
func MarkRead(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", err)
		}
		if err := svc.MarkRead(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to mark notification as read", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification marked as read", nil)
	}
}

// @Router /api/v1/notifications/{id} [delete]
// @Security Bearer
func Delete(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.UUIDParam(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", err)
		}
		if err := svc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete notification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification deleted", nil)
	}
}
