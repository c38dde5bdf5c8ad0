package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/HmgDevWorks/shop-next-api/config"
	"github.com/HmgDevWorks/shop-next-api/internal/api"
	"github.com/HmgDevWorks/shop-next-api/internal/database"
	"github.com/HmgDevWorks/shop-next-api/internal/middleware"
)

// SetupRouter builds the gin engine with the global middleware chain and
// every API route. redisClient and s3Config may be nil; the features they
// back are then disabled.
func SetupRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, s3Config *config.S3Config) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(cfg.FrontendOrigin))

	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     120,
			KeyPrefix: "ratelimit",
		})
		router.Use(limiter.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, db, redisClient, cfg, s3Config)

	return router
}
