package database

import (
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
)

// RunMigrations creates or updates the schema for every entity.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Category{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeStep{},
		&models.RecipeStepIngredient{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}
