package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-planner/internal/pkg/common"
)

const defaultDedupWindow = time.Second

// deduplicator 記錄最近的請求指紋
type deduplicator struct {
	mu       sync.Mutex
	window   time.Duration
	requests map[string]time.Time
	now      func() time.Time
}

// seen 指紋在視窗內出現過則回傳 true，否則記錄它；順便清除過期的指紋
func (d *deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for k, t := range d.requests {
		if now.Sub(t) > d.window {
			delete(d.requests, k)
		}
	}

	if last, exists := d.requests[fingerprint]; exists && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Deduplication 拒絕 window 內重複的 POST 請求（相同路徑與內容）
func Deduplication(window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = defaultDedupWindow
	}
	d := &deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
		now:      time.Now,
	}
	return d.handle
}

func (d *deduplicator) handle(c *gin.Context) {
	// 只處理 POST 請求
	if c.Request.Method != http.MethodPost {
		c.Next()
		return
	}

	// 生成請求指紋
	fingerprint := c.Request.Method + ":" + c.Request.URL.Path
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogError("Failed to read request body", zap.Error(err))
			c.Next()
			return
		}
		if len(body) > 0 {
			hash := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(hash[:])
		}
		// 恢復請求體
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	if d.seen(fingerprint) {
		common.LogWarn("Duplicate request rejected",
			zap.String("path", c.Request.URL.Path),
			zap.Duration("window", d.window),
		)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrorResponse{
			Code:    common.ErrCodeTooManyRequests,
			Message: "重複的請求",
		})
		return
	}

	c.Next()
}
