package auth

import (
	"attendance-backend/internal/apperr"
	"attendance-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func managerJSON(u *models.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// POST /api/manager/register
func RegisterManagerHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		manager, err := svc.RegisterManager(c.UserContext(), body)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Manager created successfully",
			"manager": managerJSON(manager),
		})
	}
}

// POST /api/manager/login
func LoginHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		token, manager, err := svc.Login(c.UserContext(), body.Email, body.Password)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"message": "Login successful",
			"token":   token,
			"manager": managerJSON(manager),
		})
	}
}

// GET /api/manager/me
func MeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uint)
		if !ok {
			return apperr.Auth(apperr.CodeUnauthorized, "Token is not valid")
		}

		user, err := svc.Me(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return c.JSON(managerJSON(user))
	}
}
