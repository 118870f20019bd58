// Package recipe 規劃服務：持有目前發布的引擎，套用查詢限制並快取結果。
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"meal-planner/internal/core/cache"
	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/engine"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// CatalogLoader 食譜目錄來源
type CatalogLoader interface {
	Load(ctx context.Context) ([]common.Recipe, error)
}

// LoaderFunc 以函數實作 CatalogLoader
type LoaderFunc func(ctx context.Context) ([]common.Recipe, error)

// Load 呼叫函數本身
func (f LoaderFunc) Load(ctx context.Context) ([]common.Recipe, error) {
	return f(ctx)
}

// snapshot 已發布的引擎與其目錄資訊
type snapshot struct {
	engine      *engine.Engine
	fingerprint string
	loadedAt    time.Time
}

// Service 規劃服務
type Service struct {
	loader CatalogLoader
	cache  cache.Store
	limits config.EngineConfig
	warm   bool

	reloadMu sync.Mutex
	current  atomic.Pointer[snapshot]
}

// ReloadResult 重新載入結果
type ReloadResult struct {
	Recipes     int           `json:"recipes"`
	Ingredients int           `json:"ingredients"`
	Fingerprint string        `json:"fingerprint"`
	Changed     bool          `json:"changed"`
	Duration    time.Duration `json:"duration_ns"`
}

// CatalogStatus 目前目錄狀態
type CatalogStatus struct {
	Loaded      bool         `json:"loaded"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	LoadedAt    *time.Time   `json:"loaded_at,omitempty"`
	Engine      engine.Stats `json:"engine"`
}

// NewService 創建規劃服務；store 為 nil 時不快取
func NewService(loader CatalogLoader, store cache.Store, cfg *config.Config) *Service {
	if store == nil {
		store = cache.NopStore{}
	}
	return &Service{
		loader: loader,
		cache:  store,
		limits: cfg.Engine,
		warm:   cfg.Catalog.WarmOnStart,
	}
}

// Reload 載入目錄、建立新引擎後一次性發布；失敗時保留舊引擎
func (s *Service) Reload(ctx context.Context) (*ReloadResult, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	recipes, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := &snapshot{
		engine:      engine.New(recipes),
		fingerprint: catalog.Fingerprint(recipes),
		loadedAt:    time.Now(),
	}
	if s.warm {
		next.engine.Warm()
	}

	prev := s.current.Swap(next)
	result := &ReloadResult{
		Recipes:     len(next.engine.Recipes()),
		Ingredients: len(next.engine.MasterIngredients()),
		Fingerprint: next.fingerprint,
		Changed:     prev == nil || prev.fingerprint != next.fingerprint,
		Duration:    time.Since(start),
	}

	common.LogInfo("食譜引擎已發布",
		zap.Int("食譜數", result.Recipes),
		zap.String("fingerprint", result.Fingerprint),
		zap.Bool("changed", result.Changed),
		zap.Duration("耗時", result.Duration),
	)
	return result, nil
}

// Ready 是否已有可用的引擎
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

// Status 目錄與索引狀態
func (s *Service) Status() CatalogStatus {
	snap := s.current.Load()
	if snap == nil {
		return CatalogStatus{}
	}
	loadedAt := snap.loadedAt
	return CatalogStatus{
		Loaded:      true,
		Fingerprint: snap.fingerprint,
		LoadedAt:    &loadedAt,
		Engine:      snap.engine.Stats(),
	}
}

// CacheStats 快取統計
func (s *Service) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}

// Close 釋放快取資源
func (s *Service) Close() error {
	return s.cache.Close()
}

// published 取得目前發布的引擎；請求已取消或逾時則不再計算
func (s *Service) published(ctx context.Context) (*snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.ErrGatewayTimeout.Wrap(err)
	}
	snap := s.current.Load()
	if snap == nil {
		return nil, common.ErrCatalogNotLoaded
	}
	return snap, nil
}

// limit 套用預設值與上限；負數視為無效請求
func (s *Service) limit(requested, def int) (int, error) {
	switch {
	case requested < 0:
		return 0, common.NewValidationError(fmt.Sprintf("limit must not be negative, got %d", requested))
	case requested == 0:
		requested = def
	}
	if s.limits.MaxLimit > 0 && requested > s.limits.MaxLimit {
		requested = s.limits.MaxLimit
	}
	return requested, nil
}

// cached 先查快取，未命中時計算並寫回；快取錯誤不影響結果
func cached[T any](ctx context.Context, s *Service, snap *snapshot, op string, params any, compute func(*engine.Engine) T) T {
	raw, err := json.Marshal(params)
	if err != nil {
		return compute(snap.engine)
	}
	key := snap.fingerprint + "|" + string(raw)

	if data, err := s.cache.Get(ctx, op, key); err == nil {
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			return out
		}
		common.LogWarn("快取內容無法解析", zap.String("類型", op))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		common.LogWarn("讀取快取失敗", zap.String("類型", op), zap.Error(err))
	}

	out := compute(snap.engine)
	if data, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, op, key, data); err != nil {
			common.LogWarn("寫入快取失敗", zap.String("類型", op), zap.Error(err))
		}
	}
	return out
}
