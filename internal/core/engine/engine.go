// Package engine 食譜相似度與食材配對引擎。
//
// Engine 是目錄的純函數：索引（食材總表與兩兩重疊矩陣）在第一次使用時各建立一次，
// 之後唯讀，可供任意數量的 goroutine 同時讀取。
package engine

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Engine 食譜引擎
type Engine struct {
	recipes     []common.Recipe
	recipeIndex map[string]int
	ids         [][]string
	sets        []map[string]struct{}

	masterOnce sync.Once
	master     []MasterIngredient
	masterByID map[string]int
	masterDone atomic.Bool

	overlapOnce sync.Once
	overlaps    OverlapMatrix
	pairCount   int
	overlapDone atomic.Bool
}

// New 以食譜目錄建立引擎；目錄中重複的 ID 只保留第一筆
func New(recipes []common.Recipe) *Engine {
	e := &Engine{
		recipes:     make([]common.Recipe, 0, len(recipes)),
		recipeIndex: make(map[string]int, len(recipes)),
	}
	for _, recipe := range recipes {
		if _, exists := e.recipeIndex[recipe.ID]; exists {
			continue
		}
		e.recipeIndex[recipe.ID] = len(e.recipes)
		e.recipes = append(e.recipes, recipe)
	}

	e.ids = make([][]string, len(e.recipes))
	e.sets = make([]map[string]struct{}, len(e.recipes))
	for i, recipe := range e.recipes {
		e.ids[i] = identifiedIngredientIDs(recipe)
		e.sets[i] = toSet(e.ids[i])
	}
	return e
}

// Warm 立即建立所有索引
func (e *Engine) Warm() {
	e.masterList()
	e.overlapMatrix()
}

func (e *Engine) masterList() []MasterIngredient {
	e.masterOnce.Do(func() {
		start := time.Now()
		e.master = BuildMasterIngredientList(e.recipes)
		e.masterByID = make(map[string]int, len(e.master))
		for i, ing := range e.master {
			e.masterByID[ing.ID] = i
		}
		common.LogIndexBuild("master_ingredients", time.Since(start),
			zap.Int("recipes", len(e.recipes)),
			zap.Int("ingredients", len(e.master)),
		)
		e.masterDone.Store(true)
	})
	return e.master
}

func (e *Engine) overlapMatrix() OverlapMatrix {
	e.overlapOnce.Do(func() {
		start := time.Now()
		e.overlaps = buildOverlapMatrix(e.recipes, e.ids, e.sets)
		for _, list := range e.overlaps {
			e.pairCount += len(list)
		}
		common.LogIndexBuild("overlap_matrix", time.Since(start),
			zap.Int("recipes", len(e.recipes)),
			zap.Int("pairs", e.pairCount),
		)
		e.overlapDone.Store(true)
	})
	return e.overlaps
}

// MasterIngredients 食材總表（依使用次數排序）
func (e *Engine) MasterIngredients() []MasterIngredient {
	return slices.Clone(e.masterList())
}

// Ingredient 依 ID 查詢食材
func (e *Engine) Ingredient(id string) (MasterIngredient, bool) {
	e.masterList()
	idx, ok := e.masterByID[id]
	if !ok {
		return MasterIngredient{}, false
	}
	return e.master[idx], true
}

// Recipes 目錄中的所有食譜（目錄順序）
func (e *Engine) Recipes() []common.Recipe {
	return slices.Clone(e.recipes)
}

// Recipe 依 ID 查詢食譜
func (e *Engine) Recipe(id string) (common.Recipe, bool) {
	idx, ok := e.recipeIndex[id]
	if !ok {
		return common.Recipe{}, false
	}
	return e.recipes[idx], true
}

// Overlaps 指定食譜與其他所有食譜的重疊，依分數由高到低；未知 ID 回傳空清單
func (e *Engine) Overlaps(recipeID string) []IngredientOverlap {
	list, ok := e.overlapMatrix()[recipeID]
	if !ok {
		return []IngredientOverlap{}
	}
	return slices.Clone(list)
}

// Stats 索引統計；不會觸發建立索引
func (e *Engine) Stats() Stats {
	stats := Stats{Recipes: len(e.recipes)}
	if e.masterDone.Load() {
		stats.MasterListBuilt = true
		stats.Ingredients = len(e.master)
	}
	if e.overlapDone.Load() {
		stats.OverlapIndexBuilt = true
		stats.OverlapPairs = e.pairCount
	}
	return stats
}

// ingredientIDs 食譜的識別食材 ID；未知食譜回傳 nil
func (e *Engine) ingredientIDs(recipeID string) ([]string, map[string]struct{}) {
	idx, ok := e.recipeIndex[recipeID]
	if !ok {
		return nil, nil
	}
	return e.ids[idx], e.sets[idx]
}
