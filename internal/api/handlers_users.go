package api

import (
	"errors"
	"strings"

	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
)

// applyDisplayName treats a provided blank value as clearing the name.
func applyDisplayName(user *models.User, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		user.DisplayName = nil
		return
	}
	user.DisplayName = &trimmed
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(userResponse(user))
}

func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input updateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	applyDisplayName(user, input.DisplayName)
	if input.Password != nil {
		hash, err := services.HashPassword(*input.Password)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
		user.HashedPassword = hash
	}

	if err := handler.authService.SaveUser(user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(userResponse(user))
}

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.repositories.Users.List()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}

	responses := make([]fiber.Map, 0, len(users))
	for index := range users {
		responses = append(responses, userResponse(&users[index]))
	}
	return c.JSON(responses)
}

func (handler *Handler) CreateUser(c *fiber.Ctx) error {
	var input createUserInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	user, err := handler.authService.CreateUser(services.NewUserParams{
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Password:    input.Password,
		IsAdmin:     input.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return apiError(c, fiber.StatusConflict, "username already taken")
		}
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(&user))
}

func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	targetID := strings.TrimSpace(c.Params("id"))
	user, err := handler.authService.FindByID(targetID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}

	var input updateUserInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if message := validatePayload(input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	if targetID == actor.ID && (input.IsAdmin != nil || input.IsDisabled != nil) {
		return apiError(c, fiber.StatusBadRequest, "cannot change own admin or disabled status")
	}

	applyDisplayName(&user, input.DisplayName)
	if input.Password != nil {
		hash, err := services.HashPassword(*input.Password)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "internal error")
		}
		user.HashedPassword = hash
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if input.IsDisabled != nil {
		user.IsDisabled = *input.IsDisabled
	}

	if err := handler.authService.SaveUser(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(userResponse(&user))
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	targetID := strings.TrimSpace(c.Params("id"))
	if targetID == actor.ID {
		return apiError(c, fiber.StatusBadRequest, "cannot delete own account")
	}
	if _, err := handler.authService.FindByID(targetID); err != nil {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}

	if err := handler.repositories.Users.DeleteAccountAndRelatedData(targetID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"resource_type": "user", "resource_id": targetID})
}
