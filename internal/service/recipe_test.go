package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/service"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
	"github.com/HmgDevWorks/shop-next-api/internal/types"
)

func carbonaraRequest() *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Name:        "Spaghetti Carbonara",
		Description: "Roman classic",
		PrepTime:    10,
		CookingTime: 20,
		Servings:    4,
		Difficulty:  models.DifficultyMedium,
		Ingredients: []types.IngredientInput{
			{Name: "Spaghetti", Quantity: 400, Unit: "g"},
			{Name: "Guanciale", Quantity: 150, Unit: "g"},
		},
		Instructions: []types.InstructionInput{
			{
				Step:        1,
				Instruction: "Boil the spaghetti in salted water.",
				StepIngredients: []types.StepIngredientInput{
					{Ingredient: "Spaghetti", Quantity: 400, Unit: "g"},
				},
			},
			{
				Step:        2,
				Instruction: "Crisp the guanciale.",
				StepIngredients: []types.StepIngredientInput{
					{Ingredient: "Guanciale", Quantity: 150, Unit: "g", Observation: "diced"},
				},
			},
		},
	}
}

func TestCreateRecipeAssemblesNestedResponse(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)
	category := testhelpers.CreateTestCategory(t, db, "Italian")

	svc := service.NewRecipeService(db)
	req := carbonaraRequest()
	req.Categories = []string{category.ID.String()}

	resp, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "spaghetti-carbonara", resp.Slug)
	assert.Equal(t, "Spaghetti Carbonara", resp.Name)
	assert.Equal(t, user.ID, resp.UserID)

	require.Len(t, resp.Categories, 1)
	assert.Equal(t, category.ID, resp.Categories[0].ID)
	assert.Equal(t, "Italian", resp.Categories[0].Name)

	require.Len(t, resp.Ingredients, 2)
	byName := map[string]types.IngredientResponse{}
	for _, in := range resp.Ingredients {
		byName[in.Name] = in
	}
	require.Contains(t, byName, "spaghetti")
	require.Contains(t, byName, "guanciale")
	assert.Equal(t, 400.0, byName["spaghetti"].Quantity)

	require.Len(t, resp.Steps, 2)
	assert.Equal(t, 1, resp.Steps[0].Step)
	assert.Equal(t, 2, resp.Steps[1].Step)

	// Step ingredients point at the join rows exposed as the response's
	// ingredient ids.
	require.Len(t, resp.Steps[0].StepIngredients, 1)
	assert.Equal(t, byName["spaghetti"].ID, resp.Steps[0].StepIngredients[0].RecipeIngredientID)
	require.Len(t, resp.Steps[1].StepIngredients, 1)
	assert.Equal(t, byName["guanciale"].ID, resp.Steps[1].StepIngredients[0].RecipeIngredientID)
	assert.Equal(t, "diced", resp.Steps[1].StepIngredients[0].Observation)
}

func TestCreateRecipeNormalizesOptionalText(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)
	req := carbonaraRequest()
	req.Description = ""
	req.ImageURL = ""
	req.VideoURL = ""
	req.Instructions[0].StepIngredients = nil
	req.Instructions[1].StepIngredients = nil

	resp, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "", resp.Description)
	assert.Equal(t, "", resp.ImageURL)
	assert.Equal(t, "", resp.VideoURL)
	assert.Equal(t, "", resp.Steps[0].ImageURL)

	assert.NotNil(t, resp.Categories)
	assert.NotNil(t, resp.Steps[0].StepIngredients)
	assert.Empty(t, resp.Steps[0].StepIngredients)
}

func TestCreateRecipeReusesIngredientRows(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)

	first := carbonaraRequest()
	first.Name = "Tomato Soup"
	first.Ingredients = []types.IngredientInput{{Name: "Tomato", Quantity: 3, Unit: "pcs"}}
	first.Instructions = []types.InstructionInput{{Step: 1, Instruction: "Simmer."}}
	_, err := svc.CreateRecipe(context.Background(), user.ID, first)
	require.NoError(t, err)

	second := carbonaraRequest()
	second.Name = "Tomato Salad"
	second.Ingredients = []types.IngredientInput{{Name: "  tomato ", Quantity: 2, Unit: "pcs"}}
	second.Instructions = []types.InstructionInput{{Step: 1, Instruction: "Slice."}}
	_, err = svc.CreateRecipe(context.Background(), user.ID, second)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("name = ?", "tomato").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateRecipeUnknownStepIngredientRollsBack(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)
	req := carbonaraRequest()
	req.Instructions[1].StepIngredients = []types.StepIngredientInput{
		{Ingredient: "Parmesan", Quantity: 50, Unit: "g"},
	}

	_, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.ErrorIs(t, err, service.ErrUnknownStepIngredient)

	var recipes, ingredients, steps int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, db.Model(&models.RecipeStep{}).Count(&steps).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, ingredients)
	assert.Zero(t, steps)
}

func TestCreateRecipeUnknownCategory(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)
	req := carbonaraRequest()
	req.Categories = []string{"0a0a0a0a-0a0a-0a0a-0a0a-0a0a0a0a0a0a"}

	_, err := svc.CreateRecipe(context.Background(), user.ID, req)
	require.ErrorIs(t, err, service.ErrUnknownCategory)

	var recipes int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	assert.Zero(t, recipes)
}

func TestGetRecipeBySlug(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)
	created, err := svc.CreateRecipe(context.Background(), user.ID, carbonaraRequest())
	require.NoError(t, err)

	found, err := svc.GetRecipeBySlug(context.Background(), "spaghetti-carbonara")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetRecipeBySlug(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestUpdateRecipeRenamesSlug(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)
	created, err := svc.CreateRecipe(context.Background(), user.ID, carbonaraRequest())
	require.NoError(t, err)

	newName := "Carbonara Deluxe"
	updated, err := svc.UpdateRecipe(context.Background(), created.ID, &types.UpdateRecipeRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Carbonara Deluxe", updated.Name)
	assert.Equal(t, "carbonara-deluxe", updated.Slug)

	// Untouched fields survive a partial update.
	assert.Equal(t, created.Servings, updated.Servings)
}

func TestDeleteRecipe(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)
	created, err := svc.CreateRecipe(context.Background(), user.ID, carbonaraRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(context.Background(), created.ID))

	_, err = svc.GetRecipe(context.Background(), created.ID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	assert.ErrorIs(t, svc.DeleteRecipe(context.Background(), created.ID), service.ErrRecipeNotFound)
}

func TestListRecipesFiltersByUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	alice := testhelpers.CreateTestUser(t, db, models.RoleUser)
	bob := testhelpers.CreateTestUser(t, db, models.RoleUser)

	svc := service.NewRecipeService(db)

	req := carbonaraRequest()
	_, err := svc.CreateRecipe(context.Background(), alice.ID, req)
	require.NoError(t, err)

	req2 := carbonaraRequest()
	req2.Name = "Cacio e Pepe"
	_, err = svc.CreateRecipe(context.Background(), bob.ID, req2)
	require.NoError(t, err)

	all, err := svc.ListRecipes(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListRecipes(context.Background(), &alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)
}
