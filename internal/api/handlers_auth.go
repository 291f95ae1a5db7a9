package api

import (
	"errors"
	"strings"
	"time"

	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	user, err := handler.authService.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccountDisabled) {
			return apiError(c, fiber.StatusUnauthorized, "account disabled")
		}
		handler.loginLimiter.addFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid username or password")
	}

	handler.loginLimiter.reset(limiterKey)
	return handler.issueTokenPair(c, &user, false)
}

// Refresh exchanges the refresh cookie for a new token pair. Access tokens
// minted here carry the refreshed marker, which keeps admin endpoints behind
// a real credential login.
func (handler *Handler) Refresh(c *fiber.Ctx) error {
	rawToken := strings.TrimSpace(c.Cookies(refreshCookieName))
	if rawToken == "" {
		return apiError(c, fiber.StatusUnauthorized, "missing refresh token")
	}

	claims, err := handler.parseToken(rawToken, tokenTypeRefresh)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}

	user, err := handler.authService.FindByID(claims.Subject)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid refresh token")
	}
	if user.IsDisabled {
		return apiError(c, fiber.StatusUnauthorized, "account disabled")
	}

	return handler.issueTokenPair(c, &user, true)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
