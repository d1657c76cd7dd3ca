package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/service"
	"github.com/recipebook/backend/pkg/logger"
)

// AuthHandler serves registration and token issuance.
type AuthHandler struct {
	users *service.UserService
	auth  *service.AuthService
}

func NewAuthHandler(users *service.UserService, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		users: users,
		auth:  auth,
	}
}

// RegisterRoutes mounts the public user endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, loginLimiter *middleware.RateLimiter) {
	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.POST("/token", loginLimiter.RateLimitMiddleware(), h.Token)
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,strict_email"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": err.Error()}})
	case errors.Is(err, service.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"password": err.Error()}})
	case err != nil:
		logger.Get().Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
	default:
		c.JSON(http.StatusCreated, newUserResponse(user))
	}
}

type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token exchanges credentials for a bearer token. Every failure mode is a 400
// without a token key; unknown email and wrong password are not
// distinguished.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	token, err := h.auth.IssueToken(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
