package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/api/profile", middleware.Protected())

	profile.Get("/", handlers.GetUserProfile)
	profile.Put("/", handlers.UpdateUserProfile)
	profile.Put("/password", handlers.ChangePassword)
	profile.Post("/avatar", handlers.UploadAvatar)
	profile.Put("/payout-details", handlers.SetPayoutDetails)
}
