package handlers

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

func seedNotification(t *testing.T, userID uint, notifType models.NotificationType, read bool) {
	t.Helper()

	n := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   "title",
		Message: "message",
		IsRead:  read,
	}
	require.NoError(t, database.DB.Create(&n).Error)
}

func TestGetNotificationsFilters(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "Alice", "alice@example.com", models.RoleBuyer)
	other := createTestUser(t, "Bob", "bob@example.com", models.RoleSeller)

	seedNotification(t, user.ID, models.NotificationNewMessage, false)
	seedNotification(t, user.ID, models.NotificationBountyClaimed, false)
	seedNotification(t, user.ID, models.NotificationBountyClaimed, true)
	seedNotification(t, other.ID, models.NotificationNewMessage, false)

	app := fiber.New()
	app.Get("/api/notifications", withUser(user.ID), GetNotifications)

	status, parsed := doJSON(t, app, "GET", "/api/notifications", "")
	require.Equal(t, fiber.StatusOK, status)

	var count int
	require.NoError(t, json.Unmarshal(parsed["count"], &count))
	assert.Equal(t, 3, count)

	var unread int64
	require.NoError(t, json.Unmarshal(parsed["unread_count"], &unread))
	assert.Equal(t, int64(2), unread)

	status, parsed = doJSON(t, app, "GET", "/api/notifications?type=bounty_claimed", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(parsed["count"], &count))
	assert.Equal(t, 2, count)

	status, parsed = doJSON(t, app, "GET", "/api/notifications?type=bounty_claimed&unread_only=true", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(parsed["count"], &count))
	assert.Equal(t, 1, count)
}

func TestMarkAllAsReadReportsUpdated(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "Alice", "alice@example.com", models.RoleBuyer)

	seedNotification(t, user.ID, models.NotificationNewMessage, false)
	seedNotification(t, user.ID, models.NotificationWaitlistRequest, false)
	seedNotification(t, user.ID, models.NotificationBountyClosed, true)

	app := fiber.New()
	app.Put("/api/notifications/read-all", withUser(user.ID), MarkAllAsRead)

	status, parsed := doJSON(t, app, "PUT", "/api/notifications/read-all", "")
	require.Equal(t, fiber.StatusOK, status)

	var updated int64
	require.NoError(t, json.Unmarshal(parsed["updated"], &updated))
	assert.Equal(t, int64(2), updated)

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread)
	assert.Zero(t, unread)
}
