package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/types"
)

var (
	ErrRecipeNotFound        = errors.New("recipe not found")
	ErrUnknownCategory       = errors.New("unknown category id")
	ErrUnknownStepIngredient = errors.New("step ingredient does not match any recipe ingredient")
	ErrRecipeCreateFailed    = errors.New("recipe creation failed")
)

// RecipeService owns the multi-row recipe creation transaction and the
// read/update/delete paths around it.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe runs the whole creation as one unit of work: recipe row,
// ingredient upserts, join rows, steps in request order, step-ingredient
// rows, then an aggregate re-read mapped to the response DTO. Any failure
// rolls the whole thing back; no partial recipe is ever visible.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	var resp *types.RecipeResponse

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{
			Slug:        Slugify(req.Name),
			Name:        req.Name,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			VideoURL:    req.VideoURL,
			PrepTime:    req.PrepTime,
			CookingTime: req.CookingTime,
			Servings:    req.Servings,
			Difficulty:  req.Difficulty,
			UserID:      userID,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		if len(req.Categories) > 0 {
			var categories []models.Category
			if err := tx.Where("id IN ?", req.Categories).Find(&categories).Error; err != nil {
				return err
			}
			if len(categories) != len(req.Categories) {
				return ErrUnknownCategory
			}
			if err := tx.Model(&recipe).Association("Categories").Append(categories); err != nil {
				return err
			}
		}

		// Upsert each ingredient by normalized name with a single
		// conditional insert, so concurrent creations of the same name
		// cannot race into a duplicate-key error.
		joinByName := make(map[string]uuid.UUID, len(req.Ingredients))
		for _, in := range req.Ingredients {
			name := NormalizeIngredientName(in.Name)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoNothing: true,
			}).Create(&models.Ingredient{Name: name}).Error; err != nil {
				return err
			}

			var ingredient models.Ingredient
			if err := tx.Where("name = ?", name).First(&ingredient).Error; err != nil {
				return err
			}

			join := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredient.ID,
				Quantity:     in.Quantity,
				Unit:         in.Unit,
			}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
			joinByName[name] = join.ID
		}

		// Steps are persisted in request order; the caller-supplied step
		// numbers are stored as-is, not re-sorted or re-validated.
		for _, inst := range req.Instructions {
			step := models.RecipeStep{
				RecipeID:    recipe.ID,
				Step:        inst.Step,
				Instruction: inst.Instruction,
				ImageURL:    inst.ImageURL,
				VideoURL:    inst.VideoURL,
			}
			if err := tx.Create(&step).Error; err != nil {
				return err
			}

			if len(inst.StepIngredients) == 0 {
				continue
			}
			rows := make([]models.RecipeStepIngredient, 0, len(inst.StepIngredients))
			for _, si := range inst.StepIngredients {
				joinID, ok := joinByName[NormalizeIngredientName(si.Ingredient)]
				if !ok {
					return ErrUnknownStepIngredient
				}
				rows = append(rows, models.RecipeStepIngredient{
					RecipeStepID:       step.ID,
					RecipeIngredientID: joinID,
					Quantity:           si.Quantity,
					Unit:               si.Unit,
					Observation:        si.Observation,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		full, err := loadRecipeAggregate(tx, "id = ?", recipe.ID)
		if err != nil {
			// The writes succeeded, so a miss here is an internal
			// failure, not a not-found.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeCreateFailed
			}
			return err
		}
		resp = toRecipeResponse(full)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRecipe fetches the full aggregate by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeResponse, error) {
	return s.getRecipe(ctx, "id = ?", id)
}

// GetRecipeBySlug fetches the full aggregate by slug.
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slug string) (*types.RecipeResponse, error) {
	return s.getRecipe(ctx, "slug = ?", slug)
}

func (s *RecipeService) getRecipe(ctx context.Context, cond string, arg interface{}) (*types.RecipeResponse, error) {
	full, err := loadRecipeAggregate(s.db.WithContext(ctx), cond, arg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return toRecipeResponse(full), nil
}

// ListRecipes returns the recipes of one user, or of all users when userID
// is nil.
func (s *RecipeService) ListRecipes(ctx context.Context, userID *uuid.UUID) ([]*types.RecipeResponse, error) {
	query := s.db.WithContext(ctx).
		Preload("Categories").
		Preload("Ingredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_steps.step ASC") }).
		Preload("Steps.StepIngredients").
		Order("created_at DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*types.RecipeResponse, len(recipes))
	for i := range recipes {
		result[i] = toRecipeResponse(&recipes[i])
	}
	return result, nil
}

// UpdateRecipe replaces the provided scalar fields; a renamed recipe gets a
// freshly derived slug.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.PrepTime != nil {
		updates["prep_time"] = *req.PrepTime
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrRecipeNotFound
		}
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe hard-deletes the recipe row; dependent rows are left to the
// store's own cascade behavior.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// loadRecipeAggregate re-reads a recipe with everything the response DTO
// needs in one preloaded query. Steps come back ordered by their step
// number for deterministic output.
func loadRecipeAggregate(db *gorm.DB, cond string, arg interface{}) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.
		Preload("Categories").
		Preload("Ingredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_steps.step ASC") }).
		Preload("Steps.StepIngredients").
		First(&recipe, cond, arg).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// toRecipeResponse flattens the preloaded aggregate into the nested DTO.
// Optional text fields come back as empty strings by construction; the
// slices are always non-nil so they serialize as [] rather than null.
func toRecipeResponse(recipe *models.Recipe) *types.RecipeResponse {
	categories := make([]types.CategoryRef, len(recipe.Categories))
	for i, c := range recipe.Categories {
		categories[i] = types.CategoryRef{ID: c.ID, Name: c.Name}
	}

	ingredients := make([]types.IngredientResponse, len(recipe.Ingredients))
	for i, ri := range recipe.Ingredients {
		ingredients[i] = types.IngredientResponse{
			ID:       ri.ID,
			Name:     ri.Ingredient.Name,
			Quantity: ri.Quantity,
			Unit:     ri.Unit,
		}
	}

	steps := make([]types.RecipeStepResponse, len(recipe.Steps))
	for i, st := range recipe.Steps {
		stepIngredients := make([]types.StepIngredientResponse, len(st.StepIngredients))
		for j, si := range st.StepIngredients {
			stepIngredients[j] = types.StepIngredientResponse{
				ID:                 si.ID,
				RecipeIngredientID: si.RecipeIngredientID,
				Quantity:           si.Quantity,
				Unit:               si.Unit,
				Observation:        si.Observation,
			}
		}
		steps[i] = types.RecipeStepResponse{
			ID:              st.ID,
			Step:            st.Step,
			Instruction:     st.Instruction,
			ImageURL:        st.ImageURL,
			VideoURL:        st.VideoURL,
			StepIngredients: stepIngredients,
		}
	}

	return &types.RecipeResponse{
		ID:          recipe.ID,
		Slug:        recipe.Slug,
		Name:        recipe.Name,
		Description: recipe.Description,
		ImageURL:    recipe.ImageURL,
		VideoURL:    recipe.VideoURL,
		PrepTime:    recipe.PrepTime,
		CookingTime: recipe.CookingTime,
		Servings:    recipe.Servings,
		Difficulty:  recipe.Difficulty,
		UserID:      recipe.UserID,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
		Categories:  categories,
		Steps:       steps,
		Ingredients: ingredients,
	}
}
