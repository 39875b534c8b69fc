package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
)

// SetupFunctionRoutes keeps the legacy serverless endpoints alive in-process
// under the paths the existing clients already call
func SetupFunctionRoutes(app *fiber.App) {
	handlers.InitBlogService()

	functions := app.Group("/functions/v1")

	functions.Post("/send-email", handlers.SendEmailFunction)
	functions.Post("/generate-blog", handlers.GenerateBlogFunction)
}
