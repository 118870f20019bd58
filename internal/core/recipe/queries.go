package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/engine"
	"meal-planner/internal/pkg/common"
)

// MatchRequest 食材庫存配對參數
type MatchRequest struct {
	AvailableIngredientIDs []string
	MinimumMatchPercentage int
	SortBy                 string
	SortDirection          string
}

// PlanRequest 菜單規劃參數
type PlanRequest struct {
	MealCount        int
	ExcludeRecipeIDs []string
	DietaryTags      []string
}

var sortFields = map[string]engine.SortField{
	string(engine.SortByMatchPercentage): engine.SortByMatchPercentage,
	string(engine.SortByMissingCount):    engine.SortByMissingCount,
	string(engine.SortByCookTime):        engine.SortByCookTime,
	string(engine.SortByName):            engine.SortByName,
}

// ParseMatchOptions 驗證排序參數；空值使用預設
func ParseMatchOptions(minimum int, sortBy, direction string) (engine.MatchOptions, error) {
	opts := engine.MatchOptions{MinimumMatchPercentage: minimum}
	if minimum < 0 || minimum > 100 {
		return opts, common.NewValidationError(fmt.Sprintf("minimum_match_percentage must be between 0 and 100, got %d", minimum))
	}

	if sortBy != "" {
		field, ok := sortFields[sortBy]
		if !ok {
			return opts, common.NewValidationError(fmt.Sprintf("unknown sort_by %q", sortBy))
		}
		opts.SortBy = field
	}

	switch strings.ToLower(direction) {
	case "":
	case string(engine.SortAsc):
		opts.SortDirection = engine.SortAsc
	case string(engine.SortDesc):
		opts.SortDirection = engine.SortDesc
	default:
		return opts, common.NewValidationError(fmt.Sprintf("unknown sort_direction %q", direction))
	}
	return opts, nil
}

// SearchIngredients 模糊搜尋食材
func (s *Service) SearchIngredients(ctx context.Context, query string, limit int) ([]engine.ScoredIngredient, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.limit(limit, s.limits.DefaultSearchLimit)
	if err != nil {
		return nil, err
	}

	params := struct {
		Q string `json:"q"`
		N int    `json:"n"`
	}{strings.ToLower(strings.TrimSpace(query)), n}
	return cached(ctx, s, snap, "search", params, func(e *engine.Engine) []engine.ScoredIngredient {
		return e.SearchIngredients(query, n)
	}), nil
}

// Ingredient 取得單一食材
func (s *Service) Ingredient(ctx context.Context, id string) (*engine.MasterIngredient, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	ing, ok := snap.engine.Ingredient(id)
	if !ok {
		return nil, common.ErrNotFound.Wrap(fmt.Errorf("ingredient %q", id))
	}
	return &ing, nil
}

// Recipe 取得單一食譜
func (s *Service) Recipe(ctx context.Context, id string) (*common.Recipe, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	r, ok := snap.engine.Recipe(id)
	if !ok {
		return nil, common.ErrNotFound.Wrap(fmt.Errorf("recipe %q", id))
	}
	return &r, nil
}

// MatchPantry 依現有食材找出可做的食譜
func (s *Service) MatchPantry(ctx context.Context, req MatchRequest) (*engine.PantryMatchResult, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := ParseMatchOptions(req.MinimumMatchPercentage, req.SortBy, req.SortDirection)
	if err != nil {
		return nil, err
	}
	ids := common.NormalizeIDs(req.AvailableIngredientIDs)

	params := struct {
		IDs  []string            `json:"ids"`
		Opts engine.MatchOptions `json:"opts"`
	}{ids, opts}
	result := cached(ctx, s, snap, "pantry", params, func(e *engine.Engine) engine.PantryMatchResult {
		return e.FindMatchingRecipes(ids, opts)
	})
	return &result, nil
}

// SuggestIngredients 建議下一個購買的食材
func (s *Service) SuggestIngredients(ctx context.Context, currentIDs []string, limit int) ([]engine.IngredientSuggestion, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.limit(limit, s.limits.DefaultSuggestionLimit)
	if err != nil {
		return nil, err
	}
	ids := common.NormalizeIDs(currentIDs)

	params := struct {
		IDs []string `json:"ids"`
		N   int      `json:"n"`
	}{ids, n}
	return cached(ctx, s, snap, "suggestions", params, func(e *engine.Engine) []engine.IngredientSuggestion {
		return e.SuggestNextIngredients(ids, n)
	}), nil
}

// Pairings 可一起採買的食譜；未知 ID 回傳空列表
func (s *Service) Pairings(ctx context.Context, recipeID string, limit int) ([]engine.RecipePairing, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.limit(limit, s.limits.DefaultPairingLimit)
	if err != nil {
		return nil, err
	}

	params := struct {
		ID string `json:"id"`
		N  int    `json:"n"`
	}{recipeID, n}
	return cached(ctx, s, snap, "pairings", params, func(e *engine.Engine) []engine.RecipePairing {
		return e.FindPairingRecipes(recipeID, n)
	}), nil
}

// Similar 相似食譜；未知 ID 回傳空列表
func (s *Service) Similar(ctx context.Context, recipeID string, limit int) ([]engine.RecipeSuggestion, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.limit(limit, s.limits.DefaultPairingLimit)
	if err != nil {
		return nil, err
	}

	params := struct {
		ID string `json:"id"`
		N  int    `json:"n"`
	}{recipeID, n}
	return cached(ctx, s, snap, "similar", params, func(e *engine.Engine) []engine.RecipeSuggestion {
		return e.FindSimilarRecipes(recipeID, n)
	}), nil
}

// preferences 正規化規劃偏好
func preferences(req PlanRequest) engine.PlanPreferences {
	return engine.PlanPreferences{
		ExcludeRecipeIDs: common.NormalizeIDs(req.ExcludeRecipeIDs),
		DietaryTags:      common.NormalizeIDs(req.DietaryTags),
	}
}

// EfficientPlan 共用食材最多的菜單組合
func (s *Service) EfficientPlan(ctx context.Context, req PlanRequest) (*engine.WeeklyPlanSuggestion, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.limit(req.MealCount, s.limits.DefaultMealCount)
	if err != nil {
		return nil, err
	}
	prefs := preferences(req)

	params := struct {
		N     int                    `json:"n"`
		Prefs engine.PlanPreferences `json:"prefs"`
	}{n, prefs}
	plan := cached(ctx, s, snap, "plan", params, func(e *engine.Engine) engine.WeeklyPlanSuggestion {
		return e.SuggestEfficientWeeklyPlan(n, prefs)
	})
	return &plan, nil
}

// WeekPlan 從 startDate 起的七天菜單
func (s *Service) WeekPlan(ctx context.Context, startDate time.Time, req PlanRequest) (*engine.WeekPlan, error) {
	snap, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	prefs := preferences(req)

	params := struct {
		Start string                 `json:"start"`
		Prefs engine.PlanPreferences `json:"prefs"`
	}{startDate.Format(time.RFC3339), prefs}
	plan := cached(ctx, s, snap, "week", params, func(e *engine.Engine) engine.WeekPlan {
		return e.GenerateWeekPlan(startDate, prefs)
	})
	return &plan, nil
}
