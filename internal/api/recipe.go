package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixlab/mealremix/internal/mealdb"
	"github.com/remixlab/mealremix/internal/render"
	"github.com/remixlab/mealremix/internal/service"
	"github.com/remixlab/mealremix/internal/state"
)

const htmlContentType = "text/html; charset=utf-8"

// RecipeHandler serves the random-recipe fetch.
type RecipeHandler struct {
	fetcher service.RandomFetcher
	store   *state.Store
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(fetcher service.RandomFetcher, store *state.Store) *RecipeHandler {
	return &RecipeHandler{
		fetcher: fetcher,
		store:   store,
	}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/random", h.Random)
	}
}

// Random fetches a random recipe, publishes it as the current recipe and
// responds with the rendered recipe fragment. On failure the current recipe is
// left untouched and the fragment is a user-facing notice.
func (h *RecipeHandler) Random(c *gin.Context) {
	token := h.store.Begin()

	recipe, err := h.fetcher.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, mealdb.ErrNoRecipe) {
			log.Printf("[RecipeHandler] %s recipe fetch returned no meals", requestID(c))
		} else {
			log.Printf("[RecipeHandler] %s recipe fetch failed: %v", requestID(c), err)
		}
		c.Data(http.StatusBadGateway, htmlContentType,
			[]byte(render.Notice("Could not fetch a recipe right now. Please try again.")))
		return
	}

	// A newer fetch may have started while this one was in flight; its result
	// wins the shared state, but this response still carries its own recipe.
	h.store.Publish(token, recipe)

	c.Data(http.StatusOK, htmlContentType, []byte(render.Recipe(recipe)))
}

func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return "-"
}
