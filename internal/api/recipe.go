package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

// RecipeHandler serves CRUD over the authenticated user's recipes. The list
// action uses the summary projection; every other action returns the detail
// projection.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  ImageUploader
}

func NewRecipeHandler(recipes *service.RecipeService, images ImageUploader) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
	}
}

// RegisterRoutes mounts the recipe endpoints on an auth-protected group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/image", h.UploadImage)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, newRecipeSummary(r))
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.renderError(c, err, "failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, newRecipeDetail(*recipe))
}

type CreateRecipeRequest struct {
	Title       string  `json:"title" binding:"required"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Description string  `json:"description"`
}

// CreateRecipe persists a recipe owned by the caller. Any owner field in the
// payload is ignored.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), userID, service.CreateRecipeParams{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, newRecipeDetail(*recipe))
}

type UpdateRecipeRequest struct {
	Title       *string  `json:"title"`
	TimeMinutes *int     `json:"time_minutes"`
	Price       *float64 `json:"price"`
	Link        *string  `json:"link"`
	Description *string  `json:"description"`
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), userID, id, service.UpdateRecipeParams{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		h.renderError(c, err, "failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, newRecipeDetail(*recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), userID, id); err != nil {
		h.renderError(c, err, "failed to delete recipe")
		return
	}

	c.Status(http.StatusNoContent)
}

// recipeID parses the :id path parameter. A malformed ID is treated the same
// as an absent recipe.
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrRecipeNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) renderError(c *gin.Context, err error, msg string) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	logger.Get().Error().Err(err).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
