package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
)

func TestListUsersPaginationContract(t *testing.T) {
	router, db := setupTestAPI(t)
	token := loginAdmin(t, router, db)

	// The admin fixture itself counts towards the total.
	for i := 0; i < 14; i++ {
		testhelpers.CreateTestUser(t, db, models.RoleUser)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/users?page=2&pageSize=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page struct {
		Items      []map[string]interface{} `json:"items"`
		Total      int64                    `json:"total"`
		Page       int                      `json:"page"`
		PageSize   int                      `json:"pageSize"`
		TotalPages int                      `json:"totalPages"`
	}
	decodeBody(t, w, &page)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
}

func TestListUsersRejectsBadPagination(t *testing.T) {
	router, db := setupTestAPI(t)
	token := loginAdmin(t, router, db)

	for _, query := range []string{"page=0", "page=abc", "pageSize=0", "pageSize=101", "pageSize=-5"} {
		w := doJSON(t, router, http.MethodGet, "/api/v1/users?"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, fmt.Sprintf("query %q", query))
	}
}

func TestListUsersEmptyPageBeyondRange(t *testing.T) {
	router, db := setupTestAPI(t)
	token := loginAdmin(t, router, db)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users?page=50&pageSize=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestUserAdminGuards(t *testing.T) {
	router, _ := setupTestAPI(t)
	tokens := registerUser(t, router, "plain@example.com")

	// Regular users cannot create or delete accounts.
	w := doJSON(t, router, http.MethodPost, "/api/v1/users", tokens["token"], map[string]string{
		"name": "X", "email": "x@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/users", tokens["token"], nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
