package router

import (
	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/api"
	"github.com/recipebook/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	recipeHandler *api.RecipeHandler,
	validator middleware.TokenValidator,
	loginLimiter *middleware.RateLimiter,
) *gin.Engine {
	api.RegisterValidations()

	router := gin.Default()

	// A mapped path hit with the wrong verb is 405, not 404.
	router.HandleMethodNotAllowed = true

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(v1, loginLimiter)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profileHandler.RegisterRoutes(protected)
		recipeHandler.RegisterRoutes(protected)
	}

	return router
}
