package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/santosh-shetty/blog-api/config"
	"github.com/santosh-shetty/blog-api/controllers"
	"github.com/santosh-shetty/blog-api/middleware"
	"github.com/santosh-shetty/blog-api/repositories"
	"github.com/santosh-shetty/blog-api/storage"
	"github.com/santosh-shetty/blog-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, images storage.ImageStore) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Stored blobs are reachable under the same relative path kept in posts.image
	r.Static("/"+cfg.UploadDir, "./"+cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, "success", gin.H{"status": "ok"})
	})

	categoryController := controllers.NewCategoryController(repositories.NewCategoryRepository(db))
	postController := controllers.NewPostController(repositories.NewPostRepository(db, images))

	RegisterRoutes(r, categoryController, postController)

	return r
}

// RegisterRoutes attaches the resource endpoints to the engine. Mutating
// routes sit behind the IP rate limiter.
func RegisterRoutes(r *gin.Engine, categoryController *controllers.CategoryController, postController *controllers.PostController) {
	posts := r.Group("/post")
	posts.GET("", postController.List)
	posts.GET("/:id", postController.Get)
	postsWrite := posts.Group("")
	postsWrite.Use(middleware.RateLimitMiddleware())
	postsWrite.POST("", postController.Create)
	postsWrite.PUT("/:id", postController.Update)
	postsWrite.DELETE("/:id", postController.Delete)

	categories := r.Group("/category")
	categories.GET("", categoryController.List)
	categories.GET("/:id", categoryController.Get)
	categoriesWrite := categories.Group("")
	categoriesWrite.Use(middleware.RateLimitMiddleware())
	categoriesWrite.POST("", categoryController.Create)
	categoriesWrite.PUT("/:id", categoryController.Update)
	categoriesWrite.DELETE("/:id", categoryController.Delete)
}
