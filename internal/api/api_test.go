package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/config"
	"github.com/HmgDevWorks/shop-next-api/internal/api"
	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
)

// setupTestAPI builds a gin engine with all routes on an in-memory database.
func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	cfg := &config.Config{
		JWTSecret:      testhelpers.TestJWTSecret,
		JWTExpiry:      testhelpers.TestJWTExpiry,
		FrontendOrigin: "http://localhost:3000",
	}

	router := gin.New()
	api.SetupAPI(router, db, nil, cfg, nil)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerUser registers a fresh account and returns its token pair.
func registerUser(t *testing.T, router *gin.Engine, email string) map[string]string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": testhelpers.TestPassword,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tokens map[string]string
	decodeBody(t, w, &tokens)
	require.NotEmpty(t, tokens["token"])
	require.NotEmpty(t, tokens["refreshToken"])
	return tokens
}

// loginAdmin seeds an admin account directly and logs it in over HTTP.
func loginAdmin(t *testing.T, router *gin.Engine, db *gorm.DB) string {
	t.Helper()

	admin := testhelpers.CreateTestUser(t, db, models.RoleAdmin)
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    admin.Email,
		"password": testhelpers.TestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokens map[string]string
	decodeBody(t, w, &tokens)
	return tokens["token"]
}
