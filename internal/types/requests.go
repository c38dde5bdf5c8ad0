package types

import "github.com/HmgDevWorks/shop-next-api/internal/models"

// CreateRecipeRequest is the body for POST /recipes. Validation happens at
// the boundary via binding tags; the orchestrator never sees a malformed
// payload.
type CreateRecipeRequest struct {
	Name         string             `json:"name" binding:"required"`
	Description  string             `json:"description"`
	ImageURL     string             `json:"imageUrl"`
	VideoURL     string             `json:"videoUrl"`
	PrepTime     int                `json:"prepTime"`
	CookingTime  int                `json:"cookingTime"`
	Servings     int                `json:"servings"`
	Difficulty   models.Difficulty  `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	Categories   []string           `json:"categories"`
	Ingredients  []IngredientInput  `json:"ingredients" binding:"required,min=1,dive"`
	Instructions []InstructionInput `json:"instructions" binding:"required,min=1,dive"`
}

type IngredientInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
}

type InstructionInput struct {
	Step            int                   `json:"step" binding:"required"`
	Instruction     string                `json:"instruction" binding:"required"`
	ImageURL        string                `json:"imageUrl"`
	VideoURL        string                `json:"videoUrl"`
	StepIngredients []StepIngredientInput `json:"stepIngredients" binding:"omitempty,dive"`
}

// StepIngredientInput references one of the request's ingredients by name.
// The join-row id is resolved inside the creation transaction, so callers
// never have to know ids that do not exist yet.
type StepIngredientInput struct {
	Ingredient  string  `json:"ingredient" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Unit        string  `json:"unit" binding:"required"`
	Observation string  `json:"observation"`
}

// UpdateRecipeRequest carries optional scalar replacements; nil fields are
// left untouched.
type UpdateRecipeRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	ImageURL    *string            `json:"imageUrl"`
	VideoURL    *string            `json:"videoUrl"`
	PrepTime    *int               `json:"prepTime"`
	CookingTime *int               `json:"cookingTime"`
	Servings    *int               `json:"servings"`
	Difficulty  *models.Difficulty `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=20"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=20"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Categories  []string `json:"categories"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=PENDING PAID SHIPPED DELIVERED CANCELLED"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
