package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HmgDevWorks/shop-next-api/config"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
)

func TestNew(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)

	cfg := &config.Config{
		ServerPort:     "8080",
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		FrontendOrigin: "http://localhost:3000",
	}

	srv := New(cfg, db, nil, nil)
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
