package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupAdminRoutes(app *fiber.App) {
	adminHandler := handlers.NewAdminHandler()

	admin := app.Group("/api/admin")

	// One-time bootstrap, guarded by the setup key
	admin.Post("/setup", adminHandler.InitializeFirstAdmin)

	protected := admin.Group("/", middleware.Protected())
	protected.Get("/users", adminHandler.GetAllUsers)
	protected.Put("/users/:id/suspend", adminHandler.SuspendUser)
	protected.Put("/users/:id/unsuspend", adminHandler.UnsuspendUser)
	protected.Delete("/listings/:id", adminHandler.RemoveListing)
	protected.Get("/stats", adminHandler.GetDashboardStats)
}
