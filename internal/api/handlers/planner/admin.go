package planner

import (
	"net/http"

	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReloadCatalog POST /admin/catalog/reload
func (h *Handler) ReloadCatalog(c *gin.Context) {
	common.LogInfo("開始重新載入食譜目錄", zap.String("request_id", requestid.Get(c)))

	result, err := h.service.Reload(c.Request.Context())
	if err != nil {
		// 目錄內容無效是伺服端資料問題，不是請求錯誤
		if common.IsValidationError(err) {
			err = common.ErrCatalogLoadFailed.Wrap(err)
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CatalogStatus GET /admin/catalog
func (h *Handler) CatalogStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"catalog": h.service.Status(),
		"cache":   h.service.CacheStats(),
	})
}
