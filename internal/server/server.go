package server

import (
	"strings"

	"attendance-backend/internal/apperr"
	"attendance-backend/internal/attendance"
	"attendance-backend/internal/auth"
	"attendance-backend/internal/config"
	"attendance-backend/internal/models"
	"attendance-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

type Options struct {
	AttendanceOptions []attendance.Option
	// AccessLog false ise istek logu basılmaz (testler)
	AccessLog bool
}

func New(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	// CORS origins'i virgülle ayrılmış string'den temizle
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	authSvc := auth.NewService(db, cfg)
	userSvc := users.NewService(db)
	attSvc := attendance.NewService(db, opts.AttendanceOptions...)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Attendance System API is running"})
	})

	api := app.Group("/api")

	// Public
	api.Post("/manager/register", auth.RegisterManagerHandler(authSvc))
	api.Post("/manager/login", auth.LoginHandler(authSvc))
	api.Post("/attendance/checkin", attendance.CheckInHandler(attSvc))
	api.Post("/attendance/checkout", attendance.CheckOutHandler(attSvc))

	// Yönetici
	manager := api.Group("", auth.JWTMiddleware(cfg.JWTSecret), auth.RequireRole(models.RoleManager))

	manager.Get("/manager/me", auth.MeHandler(authSvc))

	manager.Get("/attendance/dashboard", attendance.DashboardHandler(attSvc))
	manager.Get("/attendance/history", attendance.HistoryHandler(attSvc))
	manager.Get("/attendance/history/export", attendance.ExportHistoryHandler(attSvc))
	manager.Get("/attendance/month-settings", attendance.GetMonthSettingsHandler(attSvc))
	manager.Put("/attendance/month-settings", attendance.SaveMonthSettingsHandler(attSvc))

	manager.Get("/users/getall", users.ListHandler(userSvc))
	manager.Post("/users/adduser", users.AddHandler(userSvc))
	manager.Put("/users/update/:id", users.UpdateHandler(userSvc))
	manager.Delete("/users/delete/:id", users.DeleteHandler(userSvc))

	return app
}
