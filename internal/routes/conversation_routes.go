package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/handlers"
	"DealDoor/internal/middleware"
)

func SetupConversationRoutes(app *fiber.App) {
	// Initialize messaging collaborators
	handlers.InitNotificationService()
	handlers.InitRealtimeHub()

	conversations := app.Group("/api/conversations", middleware.Protected())

	conversations.Post("/", handlers.StartConversation)
	conversations.Get("/", handlers.GetConversations)
	conversations.Get("/:id/messages", handlers.GetMessages)
	conversations.Post("/:id/messages", handlers.SendMessage)
	conversations.Put("/:id/read", handlers.MarkConversationRead)

	// Realtime message feed for one open conversation
	conversations.Get("/:id/ws", handlers.RequireConversationAccess, websocket.New(handlers.ConversationSocket))
}
