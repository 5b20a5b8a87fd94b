package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixlab/mealremix/internal/render"
	"github.com/remixlab/mealremix/internal/service"
	"github.com/remixlab/mealremix/internal/state"
)

// RemixHandler serves remix requests against the current recipe.
type RemixHandler struct {
	remixer service.Remixer
	store   *state.Store
}

// NewRemixHandler creates a new RemixHandler instance.
func NewRemixHandler(remixer service.Remixer, store *state.Store) *RemixHandler {
	return &RemixHandler{
		remixer: remixer,
		store:   store,
	}
}

// RegisterRoutes registers the remix routes.
func (h *RemixHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/remix", h.Remix)
}

// Remix sends the current recipe plus the requested theme to the chat
// endpoint and responds with the rendered remix fragment. Extraction failure
// is not an error: the fragment degrades to the assistant's raw text.
func (h *RemixHandler) Remix(c *gin.Context) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.Data(http.StatusBadRequest, htmlContentType,
			[]byte(render.Notice("That remix request made no sense. Please try again.")))
		return
	}

	recipe, err := h.store.Current()
	if err != nil {
		c.Data(http.StatusConflict, htmlContentType,
			[]byte(render.Notice("Fetch a recipe first, then remix it.")))
		return
	}

	raw, err := h.remixer.Remix(c.Request.Context(), recipe, req.Theme)
	if err != nil {
		var apiErr *service.RemixAPIError
		if errors.As(err, &apiErr) {
			log.Printf("[RemixHandler] %s chat API failure: status=%d body=%s", requestID(c), apiErr.StatusCode, apiErr.Body)
		} else {
			log.Printf("[RemixHandler] %s remix failed: %v", requestID(c), err)
		}
		c.Data(http.StatusBadGateway, htmlContentType,
			[]byte(render.Notice("The remix kitchen is overloaded. Please try again in a moment.")))
		return
	}

	result, err := service.ExtractRemix(raw)
	if err != nil {
		log.Printf("[RemixHandler] %s remix response not extractable, falling back to raw text", requestID(c))
		c.Data(http.StatusOK, htmlContentType, []byte(render.RemixFallback(raw)))
		return
	}

	c.Data(http.StatusOK, htmlContentType, []byte(render.RemixStructured(result, recipe)))
}
