package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixlab/mealremix/internal/api"
	"github.com/remixlab/mealremix/internal/middleware"
)

// SetupRouter configures the application routes.
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	remixHandler *api.RemixHandler,
	remixLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		recipeHandler.RegisterRoutes(v1)

		remix := v1.Group("")
		remix.Use(remixLimiter.Middleware())
		remixHandler.RegisterRoutes(remix)
	}

	return router
}
