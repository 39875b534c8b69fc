package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
	"DealDoor/internal/services"
)

var notificationService *services.NotificationService
var realtimeHub *services.RealtimeHub

// InitNotificationService initializes the notification service
func InitNotificationService() {
	notificationService = services.NewNotificationService()
}

// InitRealtimeHub initializes the realtime message hub
func InitRealtimeHub() {
	realtimeHub = services.NewRealtimeHub()
}

type StartConversationRequest struct {
	UserID    uint  `json:"user_id" validate:"required"`
	ListingID *uint `json:"listing_id"`
}

type SendMessageRequest struct {
	Content   string `json:"content" validate:"required"`
	ListingID *uint  `json:"listing_id"`
}

// StartConversation returns the conversation between the caller and another
// user, creating it if none exists. The unique pair index plus the do-nothing
// upsert make repeated and concurrent calls converge on one row.
func StartConversation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(StartConversationRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "user_id is required",
		})
	}

	if req.UserID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You cannot start a conversation with yourself",
		})
	}

	var other models.User
	if err := database.DB.First(&other, req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	low, high := models.NormalizePair(userID, req.UserID)

	conversation := models.Conversation{
		UserLowID:  low,
		UserHighID: high,
	}

	if err := database.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&conversation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create conversation",
		})
	}

	created := conversation.ID != 0

	// On conflict the insert assigns no id; fetch the surviving row either way
	if err := database.DB.
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&conversation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load conversation",
		})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(fiber.Map{
		"conversation": fiber.Map{
			"id":         conversation.ID,
			"created":    created,
			"created_at": conversation.CreatedAt,
			"other_user": fiber.Map{
				"id":        other.ID,
				"full_name": other.FullName,
				"avatar":    other.Avatar,
			},
		},
	})
}

// GetConversations lists the caller's conversations with peer info, the last
// message and the unread count
func GetConversations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var conversations []models.Conversation
	if err := database.DB.
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Preload("UserLow").
		Preload("UserHigh").
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve conversations",
		})
	}

	out := make([]fiber.Map, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]

		other := conv.UserLow
		if conv.UserLowID == userID {
			other = conv.UserHigh
		}

		var lastMessage models.Message
		hasLast := database.DB.
			Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").
			First(&lastMessage).Error == nil

		var unreadCount int64
		database.DB.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conv.ID, userID, false).
			Count(&unreadCount)

		entry := fiber.Map{
			"id":              conv.ID,
			"last_message_at": conv.LastMessageAt,
			"unread_count":    unreadCount,
			"other_user": fiber.Map{
				"id":        other.ID,
				"full_name": other.FullName,
				"avatar":    other.Avatar,
			},
		}
		if hasLast {
			entry["last_message"] = fiber.Map{
				"id":         lastMessage.ID,
				"sender_id":  lastMessage.SenderID,
				"content":    lastMessage.Content,
				"is_read":    lastMessage.IsRead,
				"created_at": lastMessage.CreatedAt,
			}
		}
		out = append(out, entry)
	}

	return c.JSON(fiber.Map{
		"conversations": out,
		"count":         len(out),
	})
}

// loadConversationForParticipant fetches a conversation and verifies the
// caller belongs to it
func loadConversationForParticipant(c *fiber.Ctx, userID uint) (*models.Conversation, error) {
	conversationID := c.Params("id")

	var conversation models.Conversation
	if err := database.DB.First(&conversation, conversationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Conversation not found",
			})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if !conversation.HasParticipant(userID) {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not part of this conversation",
		})
	}

	return &conversation, nil
}

// GetMessages lists a conversation's messages, oldest first
func GetMessages(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	conversation, err := loadConversationForParticipant(c, userID)
	if conversation == nil {
		return err
	}

	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	var messages []models.Message
	if err := database.DB.
		Where("conversation_id = ?", conversation.ID).
		Preload("Listing").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve messages",
		})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

// SendMessage appends a message, bumps the conversation, notifies the
// recipient and broadcasts to live subscribers
func SendMessage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	conversation, errResp := loadConversationForParticipant(c, userID)
	if conversation == nil {
		return errResp
	}

	req := new(SendMessageRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message content is required",
		})
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        req.Content,
		ListingID:      req.ListingID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(conversation).Update("last_message_at", now).Error
	})

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	recipientID := conversation.OtherParticipant(userID)

	var sender models.User
	database.DB.First(&sender, userID)

	if err := notificationService.NotifyNewMessage(recipientID, sender.FullName, conversation.ID, message.ID); err != nil {
		log.Printf("Failed to create message notification: %v", err)
	}

	if req.ListingID != nil {
		var listing models.Listing
		if database.DB.First(&listing, *req.ListingID).Error == nil {
			if err := notificationService.NotifyOfferReceived(recipientID, sender.FullName, listing.Title, conversation.ID, listing.ID); err != nil {
				log.Printf("Failed to create offer notification: %v", err)
			}
		}
	}

	realtimeHub.Broadcast(conversation.ID, fiber.Map{
		"event":   "message.created",
		"message": message,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}

// MarkConversationRead flips unread messages addressed to the caller. The
// caller's own messages are never touched.
func MarkConversationRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	conversation, errResp := loadConversationForParticipant(c, userID)
	if conversation == nil {
		return errResp
	}

	now := time.Now()
	result := database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversation.ID, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark conversation as read",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Conversation marked as read",
		"updated": result.RowsAffected,
	})
}

// RequireConversationAccess gates the websocket upgrade: the caller must be a
// participant of the conversation before the connection is accepted
func RequireConversationAccess(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
			"error": "WebSocket upgrade required",
		})
	}

	userID := c.Locals("user_id").(uint)

	conversation, errResp := loadConversationForParticipant(c, userID)
	if conversation == nil {
		return errResp
	}

	c.Locals("conversation_id", conversation.ID)
	return c.Next()
}

// ConversationSocket streams inserted messages for one conversation. The
// subscription outlives nothing: it is registered on connect and removed on
// disconnect, and the hub tolerates both being called more than once.
func ConversationSocket(conn *websocket.Conn) {
	conversationID := conn.Locals("conversation_id").(uint)

	realtimeHub.Subscribe(conversationID, conn)
	defer realtimeHub.Unsubscribe(conversationID, conn)

	// Drain the connection; clients send nothing meaningful, the read loop
	// just detects disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
