// Package cache 提供查詢結果的快取後端（記憶體、Redis）。
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrCacheMiss 快取中沒有對應的值
var ErrCacheMiss = errors.New("cache miss")

// Store 快取後端
type Store interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Set(ctx context.Context, namespace, key string, value []byte) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取後端；停用時回傳 no-op 實作
func New(cfg *config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return NopStore{}, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		return NewRedisStore(cfg)
	case config.CacheBackendMemory, "":
		return NewMemoryStore(cfg), nil
	default:
		common.LogError("未知的快取後端", zap.String("backend", cfg.Backend))
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// generateKey 生成緩存鍵
func generateKey(namespace, key string) string {
	hash := sha256.Sum256([]byte(key))
	return namespace + ":" + hex.EncodeToString(hash[:])
}

// NopStore 不保存任何內容
type NopStore struct{}

// Get 永遠未命中
func (NopStore) Get(context.Context, string, string) ([]byte, error) {
	return nil, ErrCacheMiss
}

// Set 丟棄值
func (NopStore) Set(context.Context, string, string, []byte) error {
	return nil
}

// Stats 統計
func (NopStore) Stats() map[string]interface{} {
	return map[string]interface{}{"backend": "none", "enabled": false}
}

// Close 關閉
func (NopStore) Close() error {
	return nil
}
