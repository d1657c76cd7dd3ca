package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
)

// ErrRecipeNotFound covers both absent recipes and recipes owned by another
// user; callers cannot tell the two apart.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService handles recipe operations. Every query is scoped to the
// owning user.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get retrieves one of the user's recipes by ID.
func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipeParams are the caller-settable recipe fields. Ownership is
// assigned by the service, never taken from input.
type CreateRecipeParams struct {
	Title       string
	TimeMinutes int
	Price       float64
	Link        string
	Description string
}

// Create persists a new recipe owned by the given user.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, params CreateRecipeParams) (*models.Recipe, error) {
	recipe := models.Recipe{
		UserID:      userID,
		Title:       params.Title,
		TimeMinutes: params.TimeMinutes,
		Price:       params.Price,
		Link:        params.Link,
		Description: params.Description,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipeParams is a partial update: nil fields stay untouched.
type UpdateRecipeParams struct {
	Title       *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Description *string
}

// Update applies a partial update to one of the user's recipes.
func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, id uint, params UpdateRecipeParams) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		recipe.Title = *params.Title
	}
	if params.TimeMinutes != nil {
		recipe.TimeMinutes = *params.TimeMinutes
	}
	if params.Price != nil {
		recipe.Price = *params.Price
	}
	if params.Link != nil {
		recipe.Link = *params.Link
	}
	if params.Description != nil {
		recipe.Description = *params.Description
	}

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes one of the user's recipes.
func (s *RecipeService) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// SetImageURL records the stored image location on one of the user's recipes.
func (s *RecipeService) SetImageURL(ctx context.Context, userID uuid.UUID, id uint, url string) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	recipe.ImageURL = url
	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}
