package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	refreshCookieName = "basalt_refresh"
)

// authClaims embeds the role flags so middleware can reject stale tokens
// without a lookup, though AuthRequired still reloads the user to pick up
// admin or disabled changes made after the token was signed.
type authClaims struct {
	TokenType string `json:"typ"`
	Admin     bool   `json:"adm"`
	Disabled  bool   `json:"dis"`
	Refreshed bool   `json:"rfs,omitempty"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(user *models.User, tokenType string, refreshed bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		TokenType: tokenType,
		Admin:     user.IsAdmin,
		Disabled:  user.IsDisabled,
		Refreshed: refreshed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(rawToken string, expectedType string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	if claims.TokenType != expectedType {
		return nil, errors.New("wrong token type")
	}

	return claims, nil
}

// issueTokenPair signs a fresh access token, rotates the refresh cookie, and
// writes the access token to the response body. refreshed marks access tokens
// minted through the refresh endpoint rather than a credential login.
func (handler *Handler) issueTokenPair(c *fiber.Ctx, user *models.User, refreshed bool) error {
	accessToken, err := handler.buildToken(user, tokenTypeAccess, refreshed, handler.accessTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to sign token")
	}
	refreshToken, err := handler.buildToken(user, tokenTypeRefresh, false, handler.refreshTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to sign token")
	}

	handler.setRefreshCookie(c, refreshToken)
	return c.JSON(fiber.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

func (handler *Handler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  time.Now().Add(handler.refreshTTL),
	})
}

func (handler *Handler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
