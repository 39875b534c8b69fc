package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

// GetNotifications lists the caller's notifications, newest first. Supports
// limit/offset paging, an unread_only switch, and a type filter so clients
// can show just message, waitlist or bounty activity.
func GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	query := database.DB.Where("user_id = ?", userID)
	if c.QueryBool("unread_only") {
		query = query.Where("is_read = ?", false)
	}
	if notifType := c.Query("type"); notifType != "" {
		query = query.Where("type = ?", notifType)
	}

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve notifications",
		})
	}

	var unreadCount int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount)

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
		"unread_count":  unreadCount,
	})
}

// GetUnreadCount returns just the unread total, for the badge poll
func GetUnreadCount(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var unreadCount int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get unread count",
		})
	}

	return c.JSON(fiber.Map{
		"unread_count": unreadCount,
	})
}

// loadOwnNotification fetches a notification scoped to the caller
func loadOwnNotification(c *fiber.Ctx, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&notification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Notification not found",
			})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}
	return &notification, nil
}

// MarkAsRead flips one notification; reading an already-read one is a no-op
func MarkAsRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	notification, errResp := loadOwnNotification(c, userID)
	if notification == nil {
		return errResp
	}

	if !notification.IsRead {
		now := time.Now()
		notification.IsRead = true
		notification.ReadAt = &now

		if err := database.DB.Save(notification).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to mark notification as read",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":      "Notification marked as read",
		"notification": notification,
	})
}

// MarkAllAsRead clears the caller's unread pile in one update
func MarkAllAsRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark notifications as read",
		})
	}

	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
		"updated": result.RowsAffected,
	})
}

// DeleteNotification removes one notification owned by the caller
func DeleteNotification(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	notification, errResp := loadOwnNotification(c, userID)
	if notification == nil {
		return errResp
	}

	if err := database.DB.Delete(notification).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete notification",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification deleted",
	})
}

// DeleteAllRead prunes everything the caller has already read
func DeleteAllRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	result := database.DB.
		Where("user_id = ? AND is_read = ?", userID, true).
		Delete(&models.Notification{})

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete notifications",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Read notifications deleted",
		"deleted": result.RowsAffected,
	})
}
