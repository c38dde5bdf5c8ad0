package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
)

// RecipeResponse is the nested DTO assembled after the creation
// transaction's aggregate re-read. Optional text fields are always
// rendered as empty strings, never null.
type RecipeResponse struct {
	ID          uuid.UUID            `json:"id"`
	Slug        string               `json:"slug"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	ImageURL    string               `json:"imageUrl"`
	VideoURL    string               `json:"videoUrl"`
	PrepTime    int                  `json:"prepTime"`
	CookingTime int                  `json:"cookingTime"`
	Servings    int                  `json:"servings"`
	Difficulty  models.Difficulty    `json:"difficulty"`
	UserID      uuid.UUID            `json:"userId"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Categories  []CategoryRef        `json:"categories"`
	Steps       []RecipeStepResponse `json:"steps"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type RecipeStepResponse struct {
	ID              uuid.UUID                `json:"id"`
	Step            int                      `json:"step"`
	Instruction     string                   `json:"instruction"`
	ImageURL        string                   `json:"imageUrl"`
	VideoURL        string                   `json:"videoUrl"`
	StepIngredients []StepIngredientResponse `json:"stepIngredients"`
}

type StepIngredientResponse struct {
	ID                 uuid.UUID `json:"id"`
	RecipeIngredientID uuid.UUID `json:"recipeIngredientId"`
	Quantity           float64   `json:"quantity"`
	Unit               string    `json:"unit"`
	Observation        string    `json:"observation"`
}

// IngredientResponse flattens a RecipeIngredient join row; ID is the join
// row's id, Name comes from the shared ingredient.
type IngredientResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewUserResponse maps a stored user to its DTO, dropping the hash.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TokenPair is returned by register, login and refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
