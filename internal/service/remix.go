package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/remixlab/mealremix/internal/cache"
	"github.com/remixlab/mealremix/internal/mealdb"
)

// DefaultTheme is used when the user supplies no theme.
const DefaultTheme = "surprise me"

const systemPrompt = `You are a playful professional chef who reinvents recipes around a theme.
Respond with a single JSON object and nothing else, using exactly this structure:
{
    "title": "Name of the remixed dish",
    "ingredients": [
        {"name": "flour", "measure": "2 cups", "changed": false, "note": ""}
    ],
    "instructions": "Step by step instructions separated by newlines",
    "note": "One short playful remark about the remix"
}
Set "changed" to true on every ingredient you altered from the original.
Keep the tone light but the recipe genuinely cookable.`

// RemixAPIError is returned when the chat endpoint answers with a non-success
// status. The status and body are for logs only and must never reach the
// display.
type RemixAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemixAPIError) Error() string {
	return fmt.Sprintf("chat API returned status %d: %s", e.StatusCode, e.Body)
}

// RemixService calls the chat-completion endpoint to remix recipes.
type RemixService struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
	cache  *cache.RemixCache
}

// NewRemixService creates a RemixService. The cache may be nil.
func NewRemixService(apiURL, apiKey, model string, remixCache *cache.RemixCache) *RemixService {
	return &RemixService{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
		cache:  remixCache,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Remix asks the model to reinvent recipe around theme and returns the raw
// assistant text. An empty or blank theme falls back to DefaultTheme.
func (s *RemixService) Remix(ctx context.Context, recipe *mealdb.Recipe, theme string) (string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = DefaultTheme
	}

	key := cache.Key(recipe.Title, theme)
	if raw, ok := s.cache.Get(ctx, key); ok {
		return raw, nil
	}

	payload, err := serializeRecipe(recipe)
	if err != nil {
		return "", fmt.Errorf("failed to serialize recipe: %w", err)
	}

	reqBody := chatRequest{
		Model: s.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{
				Role: "user",
				Content: fmt.Sprintf(
					"Remix the following recipe with this theme: %s. Respond with only the JSON object described above (title, ingredients with name/measure/changed/note, instructions, note).",
					theme,
				),
			},
			{Role: "user", Content: payload},
		},
		Temperature: 0.8,
		MaxTokens:   1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RemixAPIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	raw, err := assistantText(body)
	if err != nil {
		return "", err
	}

	s.cache.Set(ctx, key, raw)
	return raw, nil
}

// assistantText pulls the assistant's text out of the completion envelope,
// falling back to the legacy text field some endpoints still use.
func assistantText(body []byte) (string, error) {
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	choice := result.Choices[0]
	if choice.Message.Content != "" {
		return choice.Message.Content, nil
	}
	return choice.Text, nil
}

// serializeRecipe renders the recipe as the compact JSON payload sent to the
// model.
func serializeRecipe(recipe *mealdb.Recipe) (string, error) {
	doc := struct {
		Title        string              `json:"title"`
		Ingredients  []mealdb.Ingredient `json:"ingredients"`
		Instructions string              `json:"instructions"`
	}{
		Title:        recipe.Title,
		Ingredients:  recipe.Ingredients(),
		Instructions: recipe.Instructions,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
