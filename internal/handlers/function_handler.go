package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"DealDoor/internal/services"
)

var blogService *services.BlogService

// InitBlogService initializes the blog generator
func InitBlogService() {
	blogService = services.NewBlogService()
}

// SendEmailFunctionRequest mirrors the legacy serverless email relay contract
type SendEmailFunctionRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
	From    string `json:"from"`
}

type GenerateBlogRequest struct {
	Property *services.BlogProperty `json:"property"`
}

// SendEmailFunction relays an email through the configured provider.
// Contract: 400 when a required field is missing, 500 on provider failure,
// 200 with {success, data} otherwise.
func SendEmailFunction(c *fiber.Ctx) error {
	req := new(SendEmailFunctionRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.To == "" || req.Subject == "" || (req.HTML == "" && req.Text == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "to, subject and one of html or text are required",
		})
	}

	id, err := emailService.Send(req.To, req.Subject, req.HTML, req.Text, req.From)
	if err != nil {
		log.Printf("Email relay failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send email",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id": id,
		},
	})
}

// GenerateBlogFunction writes a promotional post for one property.
// Contract: 400 when property is missing, 500 on upstream failure, 200 with
// {content, title, excerpt} otherwise.
func GenerateBlogFunction(c *fiber.Ctx) error {
	req := new(GenerateBlogRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Property == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "property is required",
		})
	}

	post, err := blogService.GeneratePost(c.Context(), *req.Property)
	if err != nil {
		log.Printf("Blog generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate blog post",
		})
	}

	return c.JSON(fiber.Map{
		"title":   post.Title,
		"excerpt": post.Excerpt,
		"content": post.Content,
	})
}
