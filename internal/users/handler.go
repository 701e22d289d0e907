package users

import (
	"strconv"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UserResponse struct {
	ID    uint   `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(apperr.CodeInvalidParams, "Invalid user id")
	}
	return uint(id), nil
}

// GET /api/users/getall
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}

		resp := make([]UserResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toResponse(&list[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/users/adduser
func AddHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmployeeInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		user, err := svc.Add(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"user":    toResponse(user),
		})
	}
}

// PUT /api/users/update/:id
func UpdateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body EmployeeInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		user, err := svc.Update(c.UserContext(), id, body)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message": "User updated successfully",
			"user":    toResponse(user),
		})
	}
}

// DELETE /api/users/delete/:id
func DeleteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}
