package common

import (
	"fmt"
	"strings"
)

// 餐別
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeAny       = "any"
)

// RecipeIngredient 食譜中的一筆食材用量
type RecipeIngredient struct {
	IngredientID *string `json:"ingredient_id" yaml:"ingredient_id"` // 允許 null，使用者自建食譜可能沒有
	Name         string  `json:"name" yaml:"name" validate:"required"`
	Category     string  `json:"category,omitempty" yaml:"category,omitempty"`
	Amount       string  `json:"amount,omitempty" yaml:"amount,omitempty"`
	Unit         string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Recipe 食譜（外部唯讀輸入）
type Recipe struct {
	ID          string             `json:"id" yaml:"id" validate:"required"`
	Name        string             `json:"name" yaml:"name" validate:"required"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Cuisine     string             `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	Difficulty  string             `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	MealType    string             `json:"meal_type,omitempty" yaml:"meal_type,omitempty"`
	PrepTime    int                `json:"prep_time" yaml:"prep_time" validate:"gte=0"` // 分鐘
	CookTime    int                `json:"cook_time" yaml:"cook_time" validate:"gte=0"` // 分鐘
	Servings    int                `json:"servings,omitempty" yaml:"servings,omitempty"`
	DietaryTags []string           `json:"dietary_tags,omitempty" yaml:"dietary_tags,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients" yaml:"ingredients" validate:"dive"`
}

// TotalTime 總時間（準備 + 烹調）
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// ID 回傳食材識別碼，null 或空白時 ok 為 false
func (i RecipeIngredient) ID() (string, bool) {
	if i.IngredientID == nil {
		return "", false
	}
	id := strings.TrimSpace(*i.IngredientID)
	if id == "" {
		return "", false
	}
	return id, true
}

// StringPtr 取得字串指標
func StringPtr(s string) *string {
	return &s
}

// FormatIngredients 格式化食材列表
func FormatIngredients(ingredients []RecipeIngredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		id, ok := ing.ID()
		if !ok {
			id = "-"
		}
		sb.WriteString(fmt.Sprintf("- %s [%s] %s%s\n", ing.Name, id, ing.Amount, ing.Unit))
	}
	return sb.String()
}
