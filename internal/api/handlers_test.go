package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixlab/mealremix/internal/mealdb"
	"github.com/remixlab/mealremix/internal/mocks"
	"github.com/remixlab/mealremix/internal/service"
	"github.com/remixlab/mealremix/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeRecipe(t *testing.T, raw string) *mealdb.Recipe {
	t.Helper()
	var recipe mealdb.Recipe
	require.NoError(t, json.Unmarshal([]byte(raw), &recipe))
	return &recipe
}

func setupRouter(fetcher *mocks.MockFetcher, remixer *mocks.MockRemixer, store *state.Store) *gin.Engine {
	router := gin.New()
	v1 := router.Group("/api/v1")
	NewRecipeHandler(fetcher, store).RegisterRoutes(v1)
	NewRemixHandler(remixer, store).RegisterRoutes(v1)
	return router
}

func TestRecipeHandlerRandom(t *testing.T) {
	t.Run("should render and publish the fetched recipe", func(t *testing.T) {
		store := state.NewStore()
		fetcher := &mocks.MockFetcher{
			Recipe: decodeRecipe(t, `{"strMeal":"Test Dish","strIngredient1":"Egg","strMeasure1":"2","strIngredient2":" ","strInstructions":"Boil\nServe"}`),
		}
		router := setupRouter(fetcher, &mocks.MockRemixer{}, store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/random", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "<h2>Test Dish</h2>")
		assert.Contains(t, w.Body.String(), "<li>2 Egg</li>")
		assert.Contains(t, w.Body.String(), "Boil<br>Serve")

		current, err := store.Current()
		require.NoError(t, err)
		assert.Equal(t, "Test Dish", current.Title)
	})

	t.Run("should keep state untouched on fetch failure", func(t *testing.T) {
		store := state.NewStore()
		prior := decodeRecipe(t, `{"strMeal":"Prior Dish"}`)
		require.True(t, store.Publish(store.Begin(), prior))

		fetcher := &mocks.MockFetcher{Err: errors.New("connection refused")}
		router := setupRouter(fetcher, &mocks.MockRemixer{}, store)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/random", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Could not fetch a recipe")
		assert.NotContains(t, w.Body.String(), "connection refused")

		current, err := store.Current()
		require.NoError(t, err)
		assert.Equal(t, "Prior Dish", current.Title)
	})

	t.Run("should show a notice for an empty result set", func(t *testing.T) {
		fetcher := &mocks.MockFetcher{Err: mealdb.ErrNoRecipe}
		router := setupRouter(fetcher, &mocks.MockRemixer{}, state.NewStore())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/random", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Could not fetch a recipe")
	})
}

func TestRemixHandler(t *testing.T) {
	currentRecipe := func(t *testing.T) (*state.Store, *mealdb.Recipe) {
		t.Helper()
		store := state.NewStore()
		recipe := decodeRecipe(t, `{"strMeal":"Test Dish","strIngredient1":"Egg","strMeasure1":"2"}`)
		require.True(t, store.Publish(store.Begin(), recipe))
		return store, recipe
	}

	remixRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/remix", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("should refuse to remix without a recipe and make no call", func(t *testing.T) {
		remixer := &mocks.MockRemixer{Response: "unused"}
		router := setupRouter(&mocks.MockFetcher{}, remixer, state.NewStore())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, remixRequest(`{"theme":"volcanic"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Fetch a recipe first")
		assert.Zero(t, remixer.Calls)
	})

	t.Run("should render structured mode from fenced JSON", func(t *testing.T) {
		store, _ := currentRecipe(t)
		remixer := &mocks.MockRemixer{
			Response: "```json\n{\"title\":\"X\",\"ingredients\":[],\"instructions\":\"Y\"}\n```",
		}
		router := setupRouter(&mocks.MockFetcher{}, remixer, store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, remixRequest(`{"theme":"volcanic"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<h2>X</h2>")
		assert.NotContains(t, w.Body.String(), "<pre>")
		assert.Equal(t, "volcanic", remixer.LastTheme)
	})

	t.Run("should degrade to the raw text when extraction fails", func(t *testing.T) {
		store, _ := currentRecipe(t)
		remixer := &mocks.MockRemixer{Response: "I am sorry, I cannot produce JSON today."}
		router := setupRouter(&mocks.MockFetcher{}, remixer, store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, remixRequest(`{"theme":"volcanic"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<pre>I am sorry, I cannot produce JSON today.</pre>")
	})

	t.Run("should hide upstream status and body on API failure", func(t *testing.T) {
		store, _ := currentRecipe(t)
		remixer := &mocks.MockRemixer{
			Err: &service.RemixAPIError{StatusCode: http.StatusTooManyRequests, Body: `{"error":"rate limited"}`},
		}
		router := setupRouter(&mocks.MockFetcher{}, remixer, store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, remixRequest(`{"theme":"volcanic"}`))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "try again")
		assert.NotContains(t, w.Body.String(), "429")
		assert.NotContains(t, w.Body.String(), "rate limited")
	})

	t.Run("should accept an empty body and pass an empty theme", func(t *testing.T) {
		store, _ := currentRecipe(t)
		remixer := &mocks.MockRemixer{Response: `{"title":"X"}`}
		router := setupRouter(&mocks.MockFetcher{}, remixer, store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, remixRequest(""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, remixer.Calls)
		assert.Empty(t, remixer.LastTheme)
	})

	t.Run("should reject malformed request bodies", func(t *testing.T) {
		store, _ := currentRecipe(t)
		remixer := &mocks.MockRemixer{Response: "unused"}
		router := setupRouter(&mocks.MockFetcher{}, remixer, store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, remixRequest(`{"theme": }`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, remixer.Calls)
	})
}
