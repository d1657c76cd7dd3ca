package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/pkg/logger"
)

// ImageUploader stores a recipe image and returns its public URL.
type ImageUploader interface {
	UploadRecipeImage(ctx context.Context, recipeID uint, contentType string, body io.Reader) (string, error)
}

// UploadImage accepts a multipart image for one of the caller's recipes.
// Ownership is checked before anything touches storage.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	if _, err := h.recipes.Get(c.Request.Context(), userID, id); err != nil {
		h.renderError(c, err, "failed to fetch recipe")
		return
	}

	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "this field is required"}})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "file must be an image"}})
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, contentType, file)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to store image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	recipe, err := h.recipes.SetImageURL(c.Request.Context(), userID, id, url)
	if err != nil {
		h.renderError(c, err, "failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, newRecipeDetail(*recipe))
}
