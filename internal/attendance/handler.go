package attendance

import (
	"bytes"
	"strings"

	"attendance-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// POST /api/attendance/checkin
func CheckInHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Credentials
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		res, err := svc.CheckIn(c.UserContext(), body)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"message": "Check-in successful",
			"action":  "checkin",
			"user":    res,
		})
	}
}

// POST /api/attendance/checkout
func CheckOutHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Credentials
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		res, err := svc.CheckOut(c.UserContext(), body)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"message": "Check-out successful",
			"action":  "checkout",
			"user":    res,
		})
	}
}

// GET /api/attendance/dashboard
func DashboardHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Dashboard(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(report)
	}
}

// GET /api/attendance/history?month=02&year=2026
func HistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.History(c.UserContext(), c.Query("month"), c.Query("year"))
		if err != nil {
			return err
		}
		return c.JSON(report)
	}
}

// GET /api/attendance/history/export?month=02&year=2026&format=xlsx|csv
func ExportHistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := ExportFormat(strings.ToLower(c.Query("format", string(FormatXLSX))))
		if format != FormatXLSX && format != FormatCSV {
			return apperr.Validation(apperr.CodeInvalidParams, "Format must be xlsx or csv")
		}

		report, err := svc.History(c.UserContext(), c.Query("month"), c.Query("year"))
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := WriteHistory(&buf, report, format); err != nil {
			return apperr.Internal("rapor oluşturulamadı", err)
		}

		c.Attachment(ExportFileName(report, format))
		c.Set(fiber.HeaderContentType, format.ContentType())
		return c.Send(buf.Bytes())
	}
}

// GET /api/attendance/month-settings?month=02&year=2026
func GetMonthSettingsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ms, err := svc.GetMonthSettings(c.UserContext(), c.Query("month"), c.Query("year"))
		if err != nil {
			return err
		}
		return c.JSON(ms)
	}
}

// PUT /api/attendance/month-settings
func SaveMonthSettingsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MonthSettingsInput
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation(apperr.CodeInvalidBody, "Invalid request body")
		}

		ms, err := svc.SaveMonthSettings(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.JSON(ms)
	}
}
