// Package cli 提供 mealctl 命令列工具：不啟動 HTTP 服務，直接對食譜目錄執行查詢。
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// app 命令共用的狀態
type app struct {
	catalogPath string
	logLevel    string
	service     *recipe.Service
}

// NewRootCmd 建立 mealctl 根命令
func NewRootCmd() *cobra.Command {
	a := &app{}
	defaults := config.Default()

	root := &cobra.Command{
		Use:   "mealctl",
		Short: "Query a recipe catalog: ingredient search, pantry matching, pairings and meal plans",
		Long: `mealctl runs the meal planning engine against a recipe catalog without the HTTP server.

The catalog may be a local JSON/YAML file or an http(s) URL.
All results are printed as indented JSON.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd.Context())
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVarP(&a.catalogPath, "catalog", "c", defaults.Catalog.Path, "catalog file or URL")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); empty disables logging")

	root.AddCommand(
		a.searchCmd(),
		a.showCmd(),
		a.matchCmd(),
		a.suggestCmd(),
		a.pairingsCmd(),
		a.similarCmd(),
		a.planCmd(),
		a.weekCmd(),
		a.statsCmd(),
	)
	return root
}

// Execute 執行根命令
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// load 載入目錄並建立服務
func (a *app) load(ctx context.Context) error {
	if a.logLevel != "" {
		if err := common.InitLogger(a.logLevel, ""); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	cfg.Cache.Enabled = false
	cfg.Catalog.Source = config.CatalogSourceFile
	cfg.Catalog.Path = a.catalogPath
	if strings.HasPrefix(a.catalogPath, "http://") || strings.HasPrefix(a.catalogPath, "https://") {
		cfg.Catalog.Source = config.CatalogSourceURL
		cfg.Catalog.URL = a.catalogPath
	}

	a.service = recipe.NewService(catalog.NewLoader(&cfg.Catalog), nil, cfg)
	if _, err := a.service.Reload(ctx); err != nil {
		return fmt.Errorf("load catalog %s: %w", a.catalogPath, err)
	}
	return nil
}

// writeJSON 以縮排 JSON 輸出
func writeJSON(w io.Writer, v interface{}) error {
	return common.WriteIndentedJSON(w, v)
}
