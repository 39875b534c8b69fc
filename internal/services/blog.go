package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type BlogService struct {
	client *openai.Client
	model  string
}

// BlogPost is the generated article returned to the caller
type BlogPost struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

// BlogProperty is the listing snapshot the prompt is built from
type BlogProperty struct {
	Title       string  `json:"title"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Price       float64 `json:"price"`
	MarketPrice float64 `json:"market_price"`
	Beds        int     `json:"beds"`
	Baths       float64 `json:"baths"`
	Sqft        int     `json:"sqft"`
	Description string  `json:"description"`
}

const blogPromptTemplate = `You are a real-estate content writer for an off-market deals marketplace.
Write a short blog post promoting the property below. Keep it factual and upbeat,
mention the below-market discount if there is one, and do not invent details.

Property:
%s

Respond with JSON only, in this exact shape:
{"title": "...", "excerpt": "one or two sentences", "content": "the full post in markdown"}`

func NewBlogService() *BlogService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	log.Printf("📝 Blog Service Initialized")
	log.Printf("   - Model: %s", model)
	if apiKey == "" {
		log.Printf("⚠️  WARNING: OPENAI_API_KEY is empty!")
	}

	return &BlogService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// GeneratePost asks the model for a promotional post about one property
func (s *BlogService) GeneratePost(ctx context.Context, property BlogProperty) (*BlogPost, error) {
	propertyJSON, err := json.MarshalIndent(property, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal property: %w", err)
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(blogPromptTemplate, string(propertyJSON)),
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("blog generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("blog generation returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	// Models sometimes fence the JSON despite instructions
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var post BlogPost
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return nil, fmt.Errorf("failed to parse generated post: %w", err)
	}

	if post.Title == "" || post.Content == "" {
		return nil, fmt.Errorf("generated post is missing title or content")
	}

	return &post, nil
}
