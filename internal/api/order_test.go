package api_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/testhelpers"
)

func TestOrderLifecycleOverHTTP(t *testing.T) {
	router, db := setupTestAPI(t)
	tokens := registerUser(t, router, "buyer@example.com")
	adminToken := loginAdmin(t, router, db)

	product := testhelpers.CreateTestProduct(t, db, "Coffee", 12.5, 100)

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", tokens["token"], gin.H{
		"items": []gin.H{{"productId": product.ID.String(), "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	decodeBody(t, w, &order)
	assert.Equal(t, 25.0, order.TotalAmount)

	// The buyer sees it as the current order.
	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/current", tokens["token"], nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Status updates are an admin operation.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/status", tokens["token"], gin.H{
		"status": "PAID",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/orders/"+order.ID.String()+"/status", adminToken, gin.H{
		"status": "PAID",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Another user cannot read the buyer's order.
	other := registerUser(t, router, "other@example.com")
	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/"+order.ID.String(), other["token"], nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/"+order.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderValidation(t *testing.T) {
	router, _ := setupTestAPI(t)
	tokens := registerUser(t, router, "buyer@example.com")

	// Empty item list.
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", tokens["token"], gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed product id fails binding before hitting the service.
	w = doJSON(t, router, http.MethodPost, "/api/v1/orders", tokens["token"], gin.H{
		"items": []gin.H{{"productId": "nope", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Well-formed uuid for a product that does not exist.
	w = doJSON(t, router, http.MethodPost, "/api/v1/orders", tokens["token"], gin.H{
		"items": []gin.H{{"productId": "3a6cbb0e-33b7-44bc-bf0f-b1b1b1b1b1b1", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
