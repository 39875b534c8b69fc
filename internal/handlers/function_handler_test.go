package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func functionTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/functions/v1/send-email", SendEmailFunction)
	app.Post("/functions/v1/generate-blog", GenerateBlogFunction)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSendEmailFunctionRequiresFields(t *testing.T) {
	app := functionTestApp()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing recipient", `{"subject":"hi","html":"<p>hi</p>"}`},
		{"missing subject", `{"to":"a@b.com","html":"<p>hi</p>"}`},
		{"missing html and text", `{"to":"a@b.com","subject":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/functions/v1/send-email", tt.body))
		})
	}
}

func TestSendEmailFunctionRejectsMalformedJSON(t *testing.T) {
	app := functionTestApp()
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/functions/v1/send-email", `{"to":`))
}

func TestGenerateBlogFunctionRequiresProperty(t *testing.T) {
	app := functionTestApp()

	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/functions/v1/generate-blog", `{}`))
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/functions/v1/generate-blog", `{"listing":{}}`))
}
