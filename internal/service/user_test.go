package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/pagination"
	"github.com/HmgDevWorks/shop-next-api/internal/service"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
	"github.com/HmgDevWorks/shop-next-api/internal/types"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	req := &types.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
	created, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, created.Role)

	_, err = svc.CreateUser(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestCreateUserNeverExposesPasswordHash(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	created, err := svc.CreateUser(context.Background(), &types.CreateUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestListUsersPagination(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	for i := 0; i < 15; i++ {
		testhelpers.CreateTestUser(t, db, models.RoleUser)
	}

	page, err := svc.ListUsers(context.Background(), pagination.Params{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
}

func TestListUsersPageBeyondRange(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	testhelpers.CreateTestUser(t, db, models.RoleUser)

	page, err := svc.ListUsers(context.Background(), pagination.Params{Page: 9, PageSize: 10})
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	a := testhelpers.CreateTestUser(t, db, models.RoleUser)
	b := testhelpers.CreateTestUser(t, db, models.RoleUser)

	_, err := svc.UpdateUser(context.Background(), b.ID, &types.UpdateUserRequest{Email: &a.Email})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	newName := "Renamed"
	updated, err := svc.UpdateUser(context.Background(), b.ID, &types.UpdateUserRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, b.Email, updated.Email)
}

func TestDeleteUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewUserService(db)

	user := testhelpers.CreateTestUser(t, db, models.RoleUser)
	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	_, err := svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), uuid.New()), service.ErrUserNotFound)
}
