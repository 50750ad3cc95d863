package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleRoute "schoolsched_backend/internals/features/schedule/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")
	scheduleRoute.RegisterScheduleRoutes(api, db)
}
