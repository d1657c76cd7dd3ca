package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	users *service.UserService
}

func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// RegisterRoutes mounts the profile endpoints on an auth-protected group.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/users/me")
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to load profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{Name: user.Name, Email: user.Email})
}

type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), userID, service.UpdateUserParams{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"password": err.Error()}})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{Name: user.Name, Email: user.Email})
}
