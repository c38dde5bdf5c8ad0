package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/types"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = time.Hour
	verifyTokenTTL  = 24 * time.Hour

	denylistPrefix = "auth:denylist:"
)

// HashPassword hashes a password with bcrypt before storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// AuthService issues and validates access tokens and the opaque tokens
// (refresh, password reset, email verification) stored hashed in the Token
// table. The redis client backs the logout denylist and may be nil in
// tests, in which case denylisting is skipped.
type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenPair, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, &user)
}

// Login verifies the password against the stored bcrypt hash and issues a
// fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*types.TokenPair, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(ctx, &user)
}

// Refresh verifies the presented refresh token against its stored hash,
// rotates it (the matched row is deleted) and issues a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.TokenPair, error) {
	row, err := s.verifyOpaqueToken(ctx, models.TokenRefresh, refreshToken)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", row.UserID).Error; err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.db.WithContext(ctx).Delete(&models.Token{}, "id = ?", row.ID).Error; err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, &user)
}

// Logout invalidates the user's refresh tokens and denylists the presented
// access token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, accessToken string) error {
	err := s.db.WithContext(ctx).
		Delete(&models.Token{}, "user_id = ? AND type = ?", userID, models.TokenRefresh).Error
	if err != nil {
		return err
	}

	if s.redis == nil {
		return nil
	}
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	// Denylist failures are not fatal; the token still dies at expiry.
	s.redis.Set(ctx, denylistPrefix+accessToken, "1", ttl)
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := types.NewUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password_hash", hash).Error; err != nil {
		return err
	}
	// Old refresh tokens stop working once the password changes.
	return s.db.WithContext(ctx).
		Delete(&models.Token{}, "user_id = ? AND type = ?", userID, models.TokenRefresh).Error
}

// ForgotPassword issues a reset token for the account, if it exists. The
// empty return for unknown emails keeps the endpoint from leaking which
// addresses are registered. Delivery of the token is out of scope.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil
	}
	return s.issueOpaqueToken(ctx, user.ID, models.TokenReset, resetTokenTTL)
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	row, err := s.verifyOpaqueToken(ctx, models.TokenReset, token)
	if err != nil {
		return ErrInvalidToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", row.UserID).Update("password_hash", hash)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		if err := tx.Delete(&models.Token{}, "id = ?", row.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Token{}, "user_id = ? AND type = ?", row.UserID, models.TokenRefresh).Error
	})
}

// SendVerificationEmail issues a verification token; dispatching the email
// itself is out of scope.
func (s *AuthService) SendVerificationEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return "", ErrUserNotFound
	}
	return s.issueOpaqueToken(ctx, user.ID, models.TokenVerify, verifyTokenTTL)
}

// ValidateToken parses an access token and rejects denylisted ones. Redis
// errors fail open; a broken denylist must not take down every
// authenticated route.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		n, err := s.redis.Exists(context.Background(), denylistPrefix+tokenString).Result()
		if err == nil && n > 0 {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

func (s *AuthService) parseClaims(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*types.TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*types.TokenPair, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueOpaqueToken(ctx, user.ID, models.TokenRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &types.TokenPair{Token: access, RefreshToken: refresh}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// issueOpaqueToken stores a bcrypt hash of a random value and hands the
// caller "<rowID>.<value>", so verification can look the row up by id and
// compare the hash without scanning the table.
func (s *AuthService) issueOpaqueToken(ctx context.Context, userID uuid.UUID, tokenType models.TokenType, ttl time.Duration) (string, error) {
	value := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	row := models.Token{
		UserID:    userID,
		Type:      tokenType,
		TokenHash: string(hash),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s", row.ID, value), nil
}

func (s *AuthService) verifyOpaqueToken(ctx context.Context, tokenType models.TokenType, presented string) (*models.Token, error) {
	parts := strings.SplitN(presented, ".", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidRefreshToken
	}
	rowID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	var row models.Token
	if err := s.db.WithContext(ctx).First(&row, "id = ? AND type = ?", rowID, tokenType).Error; err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if time.Now().After(row.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.TokenHash), []byte(parts[1])); err != nil {
		return nil, ErrInvalidRefreshToken
	}
	return &row, nil
}
