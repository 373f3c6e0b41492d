// Package middleware holds fiber middleware shared by the HTTP handlers.
package middleware

import (
	"errors"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/domain"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// UserClaim is the JWT claim carrying the caller's user ID.
	UserClaim = "user_id"
	// TokenCookie is the cookie login sets for browser clients.
	TokenCookie = "jwt"
)

// JwtProtected rejects requests without a valid HS256 token, read from the
// bearer Authorization header or else the TokenCookie cookie. The parsed
// token is stored under c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		TokenLookup:  "header:" + fiber.HeaderAuthorization + ",cookie:" + TokenCookie,
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	status := fiber.StatusUnauthorized
	title := "Invalid or expired JWT"
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		status = fiber.StatusBadRequest
		title = "Missing or malformed JWT"
	}
	return c.Status(status).JSON(fiber.Map{
		"type":     "about:blank",
		"title":    title,
		"status":   status,
		"instance": c.OriginalURL(),
	}, "application/problem+json")
}

// UserID returns the user ID of the authenticated caller.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	raw, ok := claims[UserClaim].(string)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// SignToken issues a token for userID that JwtProtected accepts.
func SignToken(cfg *config.Jwt, userID uuid.UUID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		UserClaim: userID.String(),
		"exp":     time.Now().Add(cfg.Expiry).Unix(),
	})
	return token.SignedString([]byte(cfg.Secret))
}
