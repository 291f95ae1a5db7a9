package api

import (
	"strings"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	contextUserKey      = "current_user"
	contextRefreshedKey = "token_refreshed"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func tokenWasRefreshed(c *fiber.Ctx) bool {
	refreshed, _ := c.Locals(contextRefreshedKey).(bool)
	return refreshed
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	if rawToken == "" {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	claims, err := handler.parseToken(rawToken, tokenTypeAccess)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.authService.FindByID(claims.Subject)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if user.IsDisabled {
		return apiError(c, fiber.StatusUnauthorized, "account disabled")
	}

	c.Locals(contextUserKey, &user)
	c.Locals(contextRefreshedKey, claims.Refreshed)
	return c.Next()
}

// AdminOnly additionally rejects access tokens minted via the refresh
// endpoint so admin actions always sit behind a recent credential login.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || !user.IsAdmin {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	if tokenWasRefreshed(c) {
		return apiError(c, fiber.StatusForbidden, "fresh login required")
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
