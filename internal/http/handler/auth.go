package handler

import (
	"github.com/gofiber/fiber/v2"

	"pollapi/internal/http/middleware"
	"pollapi/internal/service"
)

// accountIDFromCtx extracts the account ID stored by middleware.Auth.
func accountIDFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(middleware.AccountIDLocalKey).(string); ok {
		return v
	}
	return ""
}

// Register creates a new account (POST /auth/register).
func Register(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		acc, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(acc)
	}
}

// Login exchanges credentials for a token pair (POST /auth/login).
func Login(svc service.AccountService) fiber.Handler {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	return func(c *fiber.Ctx) error {
		var in loginRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}

		pair, err := svc.Login(c.UserContext(), in.Email, in.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(pair)
	}
}

// RefreshToken exchanges a refresh token for a fresh pair (POST /auth/refresh).
func RefreshToken(svc service.AccountService) fiber.Handler {
	type refreshRequest struct {
		RefreshToken string `json:"refresh_token"`
	}
	return func(c *fiber.Ctx) error {
		var in refreshRequest
		if err := c.BodyParser(&in); err != nil || in.RefreshToken == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "refresh_token is required")
		}

		pair, err := svc.Refresh(c.UserContext(), in.RefreshToken)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(pair)
	}
}

// CurrentAccount returns the authenticated account (GET /auth/me).
func CurrentAccount(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc, err := svc.Get(c.UserContext(), accountIDFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(acc)
	}
}
