package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Difficulty enumerates the fixed recipe difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Recipe struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Slug        string     `gorm:"size:255;not null;index" json:"slug"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    string     `gorm:"size:255" json:"imageUrl"`
	VideoURL    string     `gorm:"size:255" json:"videoUrl"`
	PrepTime    int        `json:"prepTime"`
	CookingTime int        `json:"cookingTime"`
	Servings    int        `json:"servings"`
	Difficulty  Difficulty `gorm:"size:20;not null" json:"difficulty"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"userId"`

	Categories  []Category         `gorm:"many2many:recipe_categories" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Steps       []RecipeStep       `gorm:"foreignKey:RecipeID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient is a shared row reused across recipes. Name is stored
// normalized (trimmed, lowercase) and must stay unique.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient joins a recipe to an ingredient with its quantity.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredientId"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Unit         string    `gorm:"size:50;not null" json:"unit"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// RecipeStep stores one instruction. Step numbers are caller-supplied and
// rows are persisted in request order.
type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Step        int       `gorm:"not null" json:"step"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	ImageURL    string    `gorm:"size:255" json:"imageUrl"`
	VideoURL    string    `gorm:"size:255" json:"videoUrl"`

	StepIngredients []RecipeStepIngredient `gorm:"foreignKey:RecipeStepID" json:"-"`
}

func (rs *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	return nil
}

// RecipeStepIngredient ties a step to a RecipeIngredient created in the
// same transaction.
type RecipeStepIngredient struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeStepID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeStepId"`
	RecipeIngredientID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeIngredientId"`
	Quantity           float64   `gorm:"not null" json:"quantity"`
	Unit               string    `gorm:"size:50;not null" json:"unit"`
	Observation        string    `gorm:"type:text" json:"observation"`
}

func (rsi *RecipeStepIngredient) BeforeCreate(tx *gorm.DB) error {
	if rsi.ID == uuid.Nil {
		rsi.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:255" json:"icon"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
