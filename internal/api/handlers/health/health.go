package health

import (
	"net/http"
	"runtime"
	"time"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   recipe.CatalogStatus   `json:"catalog"`
	Cache     map[string]interface{} `json:"cache"`
}

// Handler 健康檢查處理程序
type Handler struct {
	config  *config.Config
	service *recipe.Service
	started time.Time
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, service *recipe.Service) *Handler {
	return &Handler{config: cfg, service: service, started: time.Now()}
}

// HealthCheck 健康檢查處理器；目錄尚未載入時狀態為 degraded
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := "ok"
	if !h.service.Ready() {
		status = "degraded"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"uptime":     time.Since(h.started).Round(time.Second).String(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: h.service.Status(),
		Cache:   h.service.CacheStats(),
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("status", status),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：引擎發布後才接受流量
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if !h.service.Ready() {
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrCatalogNotLoaded.Code,
			Message: common.ErrCatalogNotLoaded.Message,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ready",
		"fingerprint": h.service.Status().Fingerprint,
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
