package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupBountyRoutes(app *fiber.App) {
	// Initialize payout service
	handlers.InitPaystackService()

	bounties := app.Group("/api/bounties", middleware.Protected())

	bounties.Post("/", handlers.ClaimBounty)
	bounties.Get("/mine", handlers.GetMyClaims)
	bounties.Put("/:id/advance", handlers.AdvanceBountyClaim)
	bounties.Get("/payouts", handlers.GetPayouts)
}
