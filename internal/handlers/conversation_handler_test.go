package handlers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

type conversationResponse struct {
	Conversation struct {
		ID      uint `json:"id"`
		Created bool `json:"created"`
	} `json:"conversation"`
}

func TestStartConversationIsIdempotent(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "Alice", "alice@example.com", models.RoleBuyer)
	bob := createTestUser(t, "Bob", "bob@example.com", models.RoleSeller)

	app := fiber.New()
	app.Post("/api/conversations", withUser(alice.ID), StartConversation)

	body := fmt.Sprintf(`{"user_id":%d}`, bob.ID)

	status, parsed := doJSON(t, app, "POST", "/api/conversations", body)
	require.Equal(t, fiber.StatusCreated, status)

	var first conversationResponse
	require.NoError(t, json.Unmarshal(parsed["conversation"], &first.Conversation))
	require.NotZero(t, first.Conversation.ID)
	assert.True(t, first.Conversation.Created)

	// Same pair again: the surviving row comes back, nothing new is inserted
	status, parsed = doJSON(t, app, "POST", "/api/conversations", body)
	require.Equal(t, fiber.StatusOK, status)

	var second conversationResponse
	require.NoError(t, json.Unmarshal(parsed["conversation"], &second.Conversation))
	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
	assert.False(t, second.Conversation.Created)

	var count int64
	database.DB.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestStartConversationSamePairEitherDirection(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "Alice", "alice@example.com", models.RoleBuyer)
	bob := createTestUser(t, "Bob", "bob@example.com", models.RoleSeller)

	app := fiber.New()
	app.Post("/as/:caller/conversations", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("caller")
		c.Locals("user_id", uint(id))
		return StartConversation(c)
	})

	status, parsed := doJSON(t, app, "POST",
		fmt.Sprintf("/as/%d/conversations", alice.ID),
		fmt.Sprintf(`{"user_id":%d}`, bob.ID))
	require.Equal(t, fiber.StatusCreated, status)

	var first conversationResponse
	require.NoError(t, json.Unmarshal(parsed["conversation"], &first.Conversation))

	// Bob opening the same conversation lands on Alice's row
	status, parsed = doJSON(t, app, "POST",
		fmt.Sprintf("/as/%d/conversations", bob.ID),
		fmt.Sprintf(`{"user_id":%d}`, alice.ID))
	require.Equal(t, fiber.StatusOK, status)

	var second conversationResponse
	require.NoError(t, json.Unmarshal(parsed["conversation"], &second.Conversation))
	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
}

func TestMarkConversationReadSkipsOwnMessages(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "Alice", "alice@example.com", models.RoleBuyer)
	bob := createTestUser(t, "Bob", "bob@example.com", models.RoleSeller)

	low, high := models.NormalizePair(alice.ID, bob.ID)
	conversation := models.Conversation{UserLowID: low, UserHighID: high}
	require.NoError(t, database.DB.Create(&conversation).Error)

	mine := models.Message{ConversationID: conversation.ID, SenderID: alice.ID, Content: "sent by reader"}
	theirsOne := models.Message{ConversationID: conversation.ID, SenderID: bob.ID, Content: "unread one"}
	theirsTwo := models.Message{ConversationID: conversation.ID, SenderID: bob.ID, Content: "unread two"}
	require.NoError(t, database.DB.Create(&mine).Error)
	require.NoError(t, database.DB.Create(&theirsOne).Error)
	require.NoError(t, database.DB.Create(&theirsTwo).Error)

	app := fiber.New()
	app.Put("/api/conversations/:id/read", withUser(alice.ID), MarkConversationRead)

	status, parsed := doJSON(t, app, "PUT", fmt.Sprintf("/api/conversations/%d/read", conversation.ID), "")
	require.Equal(t, fiber.StatusOK, status)

	var updated int64
	require.NoError(t, json.Unmarshal(parsed["updated"], &updated))
	assert.Equal(t, int64(2), updated)

	// The reader's own message never flips
	var reloaded models.Message
	require.NoError(t, database.DB.First(&reloaded, mine.ID).Error)
	assert.False(t, reloaded.IsRead)
	assert.Nil(t, reloaded.ReadAt)

	reloaded = models.Message{}
	require.NoError(t, database.DB.First(&reloaded, theirsOne.ID).Error)
	assert.True(t, reloaded.IsRead)
	require.NotNil(t, reloaded.ReadAt)

	reloaded = models.Message{}
	require.NoError(t, database.DB.First(&reloaded, theirsTwo.ID).Error)
	assert.True(t, reloaded.IsRead)
}
