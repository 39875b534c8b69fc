package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

// setupTestDB swaps the global handle for an in-memory database scoped to
// one test
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Conversation{},
		&models.Message{},
		&models.WaitlistRequest{},
		&models.BountyClaim{},
		&models.Payout{},
		&models.Notification{},
	))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
	})
}

// withUser stands in for the auth middleware
func withUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]json.RawMessage
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func createTestUser(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()

	user := models.User{
		FullName:        name,
		Email:           email,
		Phone:           "5550100",
		Password:        "irrelevant",
		Role:            role,
		IsEmailVerified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}
