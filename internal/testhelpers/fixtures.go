package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
)

// TestPassword is the plaintext password every fixture user is created with.
const TestPassword = "password123"

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-jwt-secret"

// TestJWTExpiry keeps fixture tokens valid for the whole test run.
const TestJWTExpiry = time.Hour

var userSeq int

// CreateTestUser inserts a user with a unique email and the shared test
// password.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	userSeq++
	user := &models.User{
		Name:         fmt.Sprintf("Test User %d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestCategory inserts a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

// CreateTestProduct inserts a product with the given price and stock.
func CreateTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:  name,
		Price: price,
		Stock: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}

	return product
}
