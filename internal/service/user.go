package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/internal/models"
	"github.com/HmgDevWorks/shop-next-api/internal/pagination"
	"github.com/HmgDevWorks/shop-next-api/internal/types"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user already exists")
)

// UserService handles user CRUD and the paginated listing.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*types.UserResponse, error) {
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

	resp := types.NewUserResponse(&user)
	return &resp, nil
}

// ListUsers pages through users ordered newest first. The page of rows and
// the total count are fetched independently, then wrapped with the page
// math.
func (s *UserService) ListUsers(ctx context.Context, params pagination.Params) (*pagination.Paginated[types.UserResponse], error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]types.UserResponse, len(users))
	for i := range users {
		items[i] = types.NewUserResponse(&users[i])
	}

	page, err := pagination.New(items, total, params)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*types.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := types.NewUserResponse(&user)
	return &resp, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *types.UpdateUserRequest) (*types.UserResponse, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		var existing models.User
		err := s.db.WithContext(ctx).Where("email = ? AND id <> ?", *req.Email, id).First(&existing).Error
		if err == nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = *req.Email
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
