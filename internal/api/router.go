package api

import (
	"fmt"
	"net/http"
	"time"

	"meal-planner/internal/api/handlers/health"
	"meal-planner/internal/api/handlers/planner"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *recipe.Service) (*gin.Engine, error) {
	if svc == nil {
		return nil, fmt.Errorf("planner service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{Code: common.ErrCodeNotFound, Message: common.ErrNotFound.Message})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.ErrorResponse{Code: common.ErrCodeMethodNotAllowed, Message: common.ErrMethodNotAllowed.Message})
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svc)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	h := planner.NewHandler(svc, cfg.App.Debug)
	{
		ingredients := api.Group("/ingredients")
		ingredients.GET("", h.SearchIngredients)
		ingredients.GET("/:id", h.GetIngredient)

		pantry := api.Group("/pantry")
		pantry.POST("/matches", h.MatchPantry)
		pantry.POST("/suggestions", h.SuggestIngredients)

		recipes := api.Group("/recipes")
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/pairings", h.Pairings)
		recipes.GET("/:id/similar", h.Similar)

		plans := api.Group("/plans")
		plans.POST("/efficient", h.EfficientPlan)
		plans.POST("/week", h.WeekPlan)

		admin := api.Group("/admin")
		admin.GET("/catalog", h.CatalogStatus)
		admin.POST("/catalog/reload", middleware.Deduplication(cfg.DedupWindow), h.ReloadCatalog)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
