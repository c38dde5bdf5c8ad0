package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/service"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
	"github.com/HmgDevWorks/shop-next-api/internal/types"
)

func TestCreateProductWithCategories(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	category := testhelpers.CreateTestCategory(t, db, "Drinks")

	svc := service.NewProductService(db)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &types.CreateProductRequest{
		Name:       "Cold Brew",
		Price:      4.5,
		Stock:      20,
		Categories: []string{category.ID.String()},
	})
	require.NoError(t, err)

	fetched, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Categories, 1)
	assert.Equal(t, "Drinks", fetched.Categories[0].Name)
}

func TestCreateProductUnknownCategoryRollsBack(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewProductService(db)

	_, err := svc.CreateProduct(context.Background(), &types.CreateProductRequest{
		Name:       "Cold Brew",
		Price:      4.5,
		Categories: []string{uuid.NewString()},
	})
	require.ErrorIs(t, err, service.ErrUnknownCategory)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateProductPartial(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	product := testhelpers.CreateTestProduct(t, db, "Cold Brew", 4.5, 20)

	svc := service.NewProductService(db)

	newPrice := 5.0
	updated, err := svc.UpdateProduct(context.Background(), product.ID, &types.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Price)
	assert.Equal(t, "Cold Brew", updated.Name)
	assert.Equal(t, 20, updated.Stock)
}

func TestDeleteProduct(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	product := testhelpers.CreateTestProduct(t, db, "Cold Brew", 4.5, 20)

	svc := service.NewProductService(db)
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err := svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, service.ErrProductNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, uuid.New()), service.ErrProductNotFound)
}
