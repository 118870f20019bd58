package engine

import (
	"time"

	"meal-planner/internal/pkg/common"
)

// MasterIngredient 由食譜目錄彙整出的食材（去重後）
type MasterIngredient struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Aliases   []string `json:"aliases"`
	RecipeIDs []string `json:"recipe_ids"`
	Frequency int      `json:"frequency"`
}

// IngredientOverlap 兩道食譜之間的食材重疊（Jaccard）
type IngredientOverlap struct {
	RecipeA                string   `json:"recipe_a"`
	RecipeB                string   `json:"recipe_b"`
	SharedIngredients      []string `json:"shared_ingredients"`
	SharedCount            int      `json:"shared_count"`
	TotalUniqueIngredients int      `json:"total_unique_ingredients"`
	OverlapScore           float64  `json:"overlap_score"`
}

// OverlapMatrix 以來源食譜 ID 為鍵，值依 OverlapScore 由高到低排序
type OverlapMatrix map[string][]IngredientOverlap

// SortField 配對結果排序欄位
type SortField string

const (
	SortByMatchPercentage SortField = "matchPercentage"
	SortByMissingCount    SortField = "missingCount"
	SortByCookTime        SortField = "cookTime"
	SortByName            SortField = "name"
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// MatchOptions 食材配對選項，零值即預設值
type MatchOptions struct {
	MinimumMatchPercentage int
	SortBy                 SortField
	SortDirection          SortDirection
}

// RecipeMatch 單一食譜的配對結果
type RecipeMatch struct {
	Recipe             common.Recipe `json:"recipe"`
	MatchedIngredients []string      `json:"matched_ingredients"`
	MissingIngredients []string      `json:"missing_ingredients"`
	MatchPercentage    int           `json:"match_percentage"`
	MissingCount       int           `json:"missing_count"`
}

// PantryMatchResult 配對結果與統計
type PantryMatchResult struct {
	Matches        []RecipeMatch `json:"matches"`
	TotalRecipes   int           `json:"total_recipes"`
	PerfectMatches int           `json:"perfect_matches"`
	GoodMatches    int           `json:"good_matches"`
	PartialMatches int           `json:"partial_matches"`
}

// IngredientSuggestion 下一個值得購買的食材
type IngredientSuggestion struct {
	Ingredient      MasterIngredient `json:"ingredient"`
	UnlockCount     int              `json:"unlock_count"`
	ImproveCount    int              `json:"improve_count"`
	UnlockedRecipes []string         `json:"unlocked_recipes"`
}

// RecipePairing 適合一起採買的食譜
type RecipePairing struct {
	Recipe                common.Recipe `json:"recipe"`
	OverlapScore          float64       `json:"overlap_score"`
	SharedIngredients     []string      `json:"shared_ingredients"`
	SharedCount           int           `json:"shared_count"`
	AdditionalIngredients int           `json:"additional_ingredients"`
	ShoppingEfficiency    float64       `json:"shopping_efficiency"`
}

// ReasonType 相似原因
type ReasonType string

const (
	ReasonIngredientOverlap ReasonType = "ingredient-overlap"
	ReasonCuisineMatch      ReasonType = "cuisine-match"
	ReasonTimeEfficient     ReasonType = "time-efficient"
)

// SimilarityReason 相似原因與權重
type SimilarityReason struct {
	Type        ReasonType `json:"type"`
	Description string     `json:"description"`
	Weight      float64    `json:"weight"`
}

// RecipeSuggestion 相似食譜
type RecipeSuggestion struct {
	Recipe        common.Recipe      `json:"recipe"`
	Score         int                `json:"score"`
	Reasons       []SimilarityReason `json:"reasons"`
	PrimaryReason ReasonType         `json:"primary_reason"`
}

// PlanPreferences 菜單規劃偏好
type PlanPreferences struct {
	ExcludeRecipeIDs []string `json:"exclude_recipe_ids,omitempty"`
	DietaryTags      []string `json:"dietary_tags,omitempty"`
}

// WeeklyPlanSuggestion 食材重複利用率最高的食譜組合
type WeeklyPlanSuggestion struct {
	Recipes                []common.Recipe `json:"recipes"`
	TotalUniqueIngredients int             `json:"total_unique_ingredients"`
	TotalIngredientUsages  int             `json:"total_ingredient_usages"`
	EfficiencyScore        float64         `json:"efficiency_score"`
	EstimatedShoppingItems int             `json:"estimated_shopping_items"`
	SharedIngredients      []string        `json:"shared_ingredients"`
}

// PlannedMeal 一餐
type PlannedMeal struct {
	MealType string        `json:"meal_type"`
	Recipe   common.Recipe `json:"recipe"`
}

// DayPlan 一天的菜單
type DayPlan struct {
	Date  time.Time     `json:"date"`
	Meals []PlannedMeal `json:"meals"`
}

// WeekPlan 一週菜單
type WeekPlan struct {
	StartDate time.Time            `json:"start_date"`
	Days      []DayPlan            `json:"days"`
	Summary   WeeklyPlanSuggestion `json:"summary"`
}

// Stats 索引統計
type Stats struct {
	Recipes           int  `json:"recipes"`
	Ingredients       int  `json:"ingredients"`
	OverlapPairs      int  `json:"overlap_pairs"`
	MasterListBuilt   bool `json:"master_list_built"`
	OverlapIndexBuilt bool `json:"overlap_index_built"`
}
