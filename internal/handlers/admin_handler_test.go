package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

func TestInitializeFirstAdminValidatesInput(t *testing.T) {
	setupTestDB(t)
	t.Setenv("ADMIN_SETUP_KEY", "letmein")

	app := fiber.New()
	app.Post("/api/admin/setup", NewAdminHandler().InitializeFirstAdmin)

	tests := []struct {
		name string
		body string
	}{
		{
			"short password",
			`{"setup_key":"letmein","full_name":"Root","email":"root@example.com","phone":"5550100","password":"short"}`,
		},
		{
			"invalid email",
			`{"setup_key":"letmein","full_name":"Root","email":"not-an-email","phone":"5550100","password":"longenough"}`,
		},
		{
			"missing name",
			`{"setup_key":"letmein","email":"root@example.com","phone":"5550100","password":"longenough"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, app, "POST", "/api/admin/setup", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
		})
	}

	// Nothing slipped through
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestInitializeFirstAdminIsOneShot(t *testing.T) {
	setupTestDB(t)
	t.Setenv("ADMIN_SETUP_KEY", "letmein")

	app := fiber.New()
	app.Post("/api/admin/setup", NewAdminHandler().InitializeFirstAdmin)

	body := `{"setup_key":"letmein","full_name":"Root","email":"root@example.com","phone":"5550100","password":"longenough"}`

	status, _ := doJSON(t, app, "POST", "/api/admin/setup", body)
	require.Equal(t, fiber.StatusCreated, status)

	var admin models.User
	require.NoError(t, database.DB.Where("email = ?", "root@example.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	status, _ = doJSON(t, app, "POST", "/api/admin/setup", body)
	assert.Equal(t, fiber.StatusConflict, status)
}
