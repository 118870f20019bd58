package planner

import (
	"errors"
	"io"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 規劃 API 處理程序
type Handler struct {
	service *recipe.Service
	debug   bool
}

// NewHandler 創建處理程序；debug 時錯誤回應附上內部細節
func NewHandler(service *recipe.Service, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// respondError 將錯誤轉為 ErrorResponse
func (h *Handler) respondError(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	resp := common.ErrorResponse{Code: ce.Code, Message: ce.Message}
	if ce.Err != nil && (h.debug || common.IsValidationError(err)) {
		resp.Details = ce.Err.Error()
	}

	_ = c.Error(err)
	if ce.Status >= 500 {
		common.LogError("請求處理失敗",
			zap.String("request_id", requestid.Get(c)),
			zap.String("code", ce.Code),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(ce.Status, resp)
}

// bindJSON 解析 JSON 請求；空的請求體視為零值
func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return common.NewValidationError(err.Error())
	}
	return nil
}

// bindQuery 解析查詢參數
func bindQuery(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return common.NewValidationError(err.Error())
	}
	return nil
}
