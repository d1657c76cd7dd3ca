package api

import "github.com/recipebook/backend/internal/models"

// RecipeSummary is the list projection of a recipe.
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
}

// RecipeDetail is the retrieve/create/update projection: the summary fields
// plus the long-form ones.
type RecipeDetail struct {
	RecipeSummary
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func newRecipeSummary(r models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
	}
}

func newRecipeDetail(r models.Recipe) RecipeDetail {
	return RecipeDetail{
		RecipeSummary: newRecipeSummary(r),
		Description:   r.Description,
		ImageURL:      r.ImageURL,
	}
}

// UserResponse is the public projection of a user. The credential hash never
// appears in any response.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}
