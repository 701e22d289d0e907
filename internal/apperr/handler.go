package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

const internalMessage = "Unexpected server error"

// ErrorHandler, fiber.Config.ErrorHandler olarak kullanılır.
// Internal hataların detayı sadece loglanır, istemciye genel mesaj gider.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), appErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": internalMessage,
				"code":    CodeInternal,
			})
		}
		return c.Status(appErr.Status()).JSON(fiber.Map{
			"message": appErr.Message,
			"code":    appErr.Code,
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"message": fe.Message,
		})
	}

	log.Printf("[ERROR] %s %s: beklenmeyen hata: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": internalMessage,
		"code":    CodeInternal,
	})
}
