package routes

import (
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupNotificationRoutes(app *fiber.App) {
	// Notification routes (all require authentication)
	notifications := app.Group("/api/notifications", middleware.Protected())

	// Get all notifications
	notifications.Get("/", handlers.GetNotifications)

	// Get unread count
	notifications.Get("/unread-count", handlers.GetUnreadCount)

	// Mark all notifications as read
	notifications.Put("/read-all", handlers.MarkAllAsRead)

	// Mark specific notification as read
	notifications.Put("/:id/read", handlers.MarkAsRead)

	// Delete all read notifications
	notifications.Delete("/read-all", handlers.DeleteAllRead)

	// Delete specific notification
	notifications.Delete("/:id", handlers.DeleteNotification)
}
