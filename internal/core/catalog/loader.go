// Package catalog 載入並驗證食譜目錄（本機 JSON/YAML 檔或遠端 URL）。
package catalog

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// 目錄格式
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// envelope {"recipes": [...]} 形式的目錄
type envelope struct {
	Recipes []common.Recipe `json:"recipes" yaml:"recipes"`
}

// Loader 食譜目錄載入器
type Loader struct {
	config   *config.CatalogConfig
	client   *resty.Client
	validate *validator.Validate
}

// NewLoader 創建載入器
func NewLoader(cfg *config.CatalogConfig) *Loader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json, application/yaml;q=0.9").
		SetHeader("User-Agent", "meal-planner")

	return &Loader{
		config:   cfg,
		client:   client,
		validate: validator.New(),
	}
}

// Load 依設定的來源載入、驗證並正規化目錄
func (l *Loader) Load(ctx context.Context) ([]common.Recipe, error) {
	start := time.Now()

	var (
		data   []byte
		format string
		origin string
		err    error
	)
	switch l.config.Source {
	case config.CatalogSourceURL:
		origin = l.config.URL
		data, format, err = l.fetch(ctx, l.config.URL)
	case config.CatalogSourceFile, "":
		origin = l.config.Path
		data, err = os.ReadFile(l.config.Path)
		if err != nil {
			err = fmt.Errorf("failed to read catalog: %w", err)
		}
		format = FormatFromPath(l.config.Path)
	default:
		err = fmt.Errorf("unknown catalog source %q", l.config.Source)
	}
	if err != nil {
		common.LogError("食譜目錄載入失敗", zap.String("來源", origin), zap.Error(err))
		return nil, common.ErrCatalogLoadFailed.Wrap(err)
	}

	recipes, err := l.Parse(data, format)
	if err != nil {
		common.LogError("食譜目錄解析失敗", zap.String("來源", origin), zap.Error(err))
		return nil, err
	}

	common.LogInfo("食譜目錄已載入",
		zap.String("來源", origin),
		zap.Int("食譜數", len(recipes)),
		zap.Duration("耗時", time.Since(start)),
	)
	return recipes, nil
}

// Parse 解碼、驗證並正規化目錄內容
func (l *Loader) Parse(data []byte, format string) ([]common.Recipe, error) {
	recipes, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	Normalize(recipes)
	if err := l.Validate(recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// fetch 從遠端取得目錄
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("catalog fetch failed with status %d", resp.StatusCode())
	}

	format := FormatFromPath(url)
	if strings.Contains(strings.ToLower(resp.Header().Get("Content-Type")), "yaml") {
		format = FormatYAML
	}
	return resp.Body(), format, nil
}

// FormatFromPath 由副檔名判斷格式，預設 JSON
func FormatFromPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode 解碼目錄；接受陣列或 {"recipes": [...]}
func Decode(data []byte, format string) ([]common.Recipe, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, common.NewValidationError("catalog is empty")
	}

	switch format {
	case FormatYAML:
		var recipes []common.Recipe
		if err := yaml.Unmarshal(trimmed, &recipes); err == nil {
			return recipes, nil
		}
		var env envelope
		if err := yaml.Unmarshal(trimmed, &env); err != nil {
			return nil, common.NewValidationError(fmt.Sprintf("invalid catalog yaml: %v", err))
		}
		return env.Recipes, nil
	default:
		if trimmed[0] == '[' {
			var recipes []common.Recipe
			if err := common.ParseJSONBytes(trimmed, &recipes); err != nil {
				return nil, common.NewValidationError(fmt.Sprintf("invalid catalog json: %v", err))
			}
			return recipes, nil
		}
		var env envelope
		if err := common.ParseJSONBytes(trimmed, &env); err != nil {
			return nil, common.NewValidationError(fmt.Sprintf("invalid catalog json: %v", err))
		}
		return env.Recipes, nil
	}
}

// Validate 檢查必要欄位與食譜 ID 唯一性
func (l *Loader) Validate(recipes []common.Recipe) error {
	seen := make(map[string]int, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if err := l.validate.Struct(r); err != nil {
			return common.NewValidationError(fmt.Sprintf("recipe[%d] %q: %s", i, r.ID, describe(err)))
		}
		id := strings.TrimSpace(r.ID)
		if prev, dup := seen[id]; dup {
			return common.NewValidationError(fmt.Sprintf("recipe[%d]: duplicate id %q (first at recipe[%d])", i, id, prev))
		}
		seen[id] = i
	}
	return nil
}

// describe 將驗證錯誤轉為可讀訊息
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", ns, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// Normalize 修剪 ID 與名稱並將餐別轉小寫；未指定餐別視為 any。Parse 在驗證前執行
func Normalize(recipes []common.Recipe) {
	for i := range recipes {
		r := &recipes[i]
		r.ID = strings.TrimSpace(r.ID)
		r.Name = strings.TrimSpace(r.Name)
		for j := range r.Ingredients {
			r.Ingredients[j].Name = strings.TrimSpace(r.Ingredients[j].Name)
		}
		r.MealType = strings.ToLower(strings.TrimSpace(r.MealType))
		if r.MealType == "" {
			r.MealType = common.MealTypeAny
		}
	}
}

// Fingerprint 目錄內容的指紋，用於快取鍵
func Fingerprint(recipes []common.Recipe) string {
	data, err := json.Marshal(recipes)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
