package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/config"
	"github.com/HmgDevWorks/shop-next-api/internal/service"
)

// SetupAPI wires services and handlers onto the /api/v1 group. The s3Config
// may be nil, in which case image uploads answer 503.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, s3Config *config.S3Config) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, redisClient, cfg.JWTSecret, cfg.JWTExpiry)
		userService := service.NewUserService(db)
		recipeService := service.NewRecipeService(db)
		categoryService := service.NewCategoryService(db)
		productService := service.NewProductService(db)
		orderService := service.NewOrderService(db)

		var imageService *service.ImageService
		if s3Config != nil {
			imageService = service.NewImageService(s3Config)
		}

		NewAuthHandler(authService).RegisterRoutes(v1)
		NewUserHandler(userService, authService).RegisterRoutes(v1)
		NewRecipeHandler(recipeService, authService).RegisterRoutes(v1)
		NewCategoryHandler(categoryService, authService).RegisterRoutes(v1)
		NewProductHandler(productService, authService).RegisterRoutes(v1)
		NewOrderHandler(orderService, authService).RegisterRoutes(v1)
		NewUploadHandler(imageService, authService).RegisterRoutes(v1)
	}
}
