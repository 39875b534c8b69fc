package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupListingRoutes(app *fiber.App) {
	listings := app.Group("/api/listings")

	// Browsing is public
	listings.Get("/", handlers.GetListings)

	// Everything owner-scoped requires auth; /mine must register before /:id
	listings.Get("/mine", middleware.Protected(), handlers.GetMyListings)
	listings.Get("/:id", handlers.GetListing)

	listings.Post("/", middleware.Protected(), handlers.CreateListing)
	listings.Put("/:id", middleware.Protected(), handlers.UpdateListing)
	listings.Delete("/:id", middleware.Protected(), handlers.DeleteListing)
	listings.Post("/:id/images", middleware.Protected(), handlers.AddListingImages)

	// Waitlist-gated contact disclosure
	listings.Get("/:id/contact", middleware.Protected(), handlers.GetListingContact)
	listings.Get("/:id/waitlist", middleware.Protected(), handlers.GetListingWaitlist)
	listings.Get("/:id/claims", middleware.Protected(), handlers.GetListingClaims)
}
