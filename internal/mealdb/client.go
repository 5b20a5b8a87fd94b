package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public v1 endpoint of the recipe API.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// ErrNoRecipe indicates the API responded successfully but returned an empty
// result set.
var ErrNoRecipe = errors.New("recipe API returned no meals")

// Client fetches recipes from the recipe API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new recipe API client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Random fetches one random recipe. On any failure the caller's current
// recipe, if any, must be left untouched.
func (c *Client) Random(ctx context.Context) (*Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/random.php", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("recipe API returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Meals []Recipe `json:"meals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode recipe response: %w", err)
	}

	if len(envelope.Meals) == 0 {
		return nil, ErrNoRecipe
	}

	recipe := envelope.Meals[0]
	return &recipe, nil
}
