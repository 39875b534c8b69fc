package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupWaitlistRoutes(app *fiber.App) {
	waitlist := app.Group("/api/waitlist", middleware.Protected())

	waitlist.Post("/", handlers.RequestContact)
	waitlist.Get("/mine", handlers.GetMyWaitlistRequests)
	waitlist.Put("/:id/decision", handlers.DecideWaitlistRequest)
}
