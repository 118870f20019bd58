package engine

import (
	"sort"
	"strings"
	"time"

	"meal-planner/internal/pkg/common"
)

const (
	daysPerWeek  = 7
	mealsPerDay  = 3
	weekMealSize = daysPerWeek * mealsPerDay
)

// 每個餐別可接受的食譜餐別
var mealSlots = []struct {
	mealType   string
	compatible []string
}{
	{common.MealTypeBreakfast, []string{common.MealTypeBreakfast, common.MealTypeAny}},
	{common.MealTypeLunch, []string{common.MealTypeLunch, common.MealTypeAny}},
	{common.MealTypeDinner, []string{common.MealTypeDinner, common.MealTypeAny}},
}

// planCandidates 依排除清單與飲食標籤篩選候選食譜（目錄索引）
func (e *Engine) planCandidates(prefs PlanPreferences) []int {
	excluded := toSet(prefs.ExcludeRecipeIDs)
	tags := make(map[string]struct{}, len(prefs.DietaryTags))
	for _, t := range prefs.DietaryTags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags[t] = struct{}{}
		}
	}

	candidates := make([]int, 0, len(e.recipes))
	for i, recipe := range e.recipes {
		if _, skip := excluded[recipe.ID]; skip {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(recipe.DietaryTags, tags) {
			continue
		}
		candidates = append(candidates, i)
	}
	return candidates
}

func hasAnyTag(recipeTags []string, wanted map[string]struct{}) bool {
	for _, t := range recipeTags {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}

// mostVersatile 與其他候選食譜重疊分數總和最高者；同分取目錄中較前者
func (e *Engine) mostVersatile(candidates []int) int {
	inSet := make(map[string]struct{}, len(candidates))
	for _, idx := range candidates {
		inSet[e.recipes[idx].ID] = struct{}{}
	}

	matrix := e.overlapMatrix()
	best, bestScore := -1, -1.0
	for pos, idx := range candidates {
		total := 0.0
		for _, o := range matrix[e.recipes[idx].ID] {
			if _, ok := inSet[o.RecipeB]; ok {
				total += o.OverlapScore
			}
		}
		if total > bestScore {
			best, bestScore = pos, total
		}
	}
	return best
}

// SuggestEfficientWeeklyPlan 以貪婪法挑選 mealCount 道食譜，使需要購買的不同食材盡量少。
// 第一道為最具通用性的食譜；之後每次挑選新增食材最少者，同數量時取與已選食材共用最多者。
// 這是近似解，不保證全域最佳。
func (e *Engine) SuggestEfficientWeeklyPlan(mealCount int, prefs PlanPreferences) WeeklyPlanSuggestion {
	plan := WeeklyPlanSuggestion{
		Recipes:           []common.Recipe{},
		SharedIngredients: []string{},
	}

	candidates := e.planCandidates(prefs)
	if mealCount <= 0 || len(candidates) == 0 {
		return plan
	}

	selected := make([]int, 0, min(mealCount, len(candidates)))
	committed := make(map[string]struct{})
	commit := func(pos int) {
		idx := candidates[pos]
		selected = append(selected, idx)
		for _, id := range e.ids[idx] {
			committed[id] = struct{}{}
		}
		candidates = append(candidates[:pos], candidates[pos+1:]...)
	}

	commit(e.mostVersatile(candidates))

	for len(selected) < mealCount && len(candidates) > 0 {
		best, bestNew, bestShared := -1, 0, 0
		for pos, idx := range candidates {
			newCount, shared := 0, 0
			for _, id := range e.ids[idx] {
				if _, ok := committed[id]; ok {
					shared++
				} else {
					newCount++
				}
			}
			if best == -1 || newCount < bestNew || (newCount == bestNew && shared > bestShared) {
				best, bestNew, bestShared = pos, newCount, shared
			}
		}
		commit(best)
	}

	usage := make(map[string]int)
	firstUse := make([]string, 0)
	for _, idx := range selected {
		plan.Recipes = append(plan.Recipes, e.recipes[idx])
		for _, id := range e.ids[idx] {
			if usage[id] == 0 {
				firstUse = append(firstUse, id)
			}
			usage[id]++
			plan.TotalIngredientUsages++
		}
	}

	plan.TotalUniqueIngredients = len(usage)
	plan.EstimatedShoppingItems = len(usage)
	if plan.TotalUniqueIngredients > 0 {
		plan.EfficiencyScore = float64(plan.TotalIngredientUsages) / float64(plan.TotalUniqueIngredients)
	}

	for _, id := range firstUse {
		if usage[id] > 1 {
			plan.SharedIngredients = append(plan.SharedIngredients, id)
		}
	}
	sort.SliceStable(plan.SharedIngredients, func(i, j int) bool {
		return usage[plan.SharedIngredients[i]] > usage[plan.SharedIngredients[j]]
	})

	return plan
}

// GenerateWeekPlan 產生從 startDate 起 7 天、每天早午晚三餐的菜單。
// 沒有相容食譜的餐別在每一天都會被省略。
func (e *Engine) GenerateWeekPlan(startDate time.Time, prefs PlanPreferences) WeekPlan {
	summary := e.SuggestEfficientWeeklyPlan(weekMealSize, prefs)

	buckets := make([][]common.Recipe, len(mealSlots))
	for i, slot := range mealSlots {
		for _, recipe := range summary.Recipes {
			if mealTypeIn(recipe.MealType, slot.compatible) {
				buckets[i] = append(buckets[i], recipe)
			}
		}
	}

	week := WeekPlan{
		StartDate: startDate,
		Days:      make([]DayPlan, 0, daysPerWeek),
		Summary:   summary,
	}
	for day := 0; day < daysPerWeek; day++ {
		plan := DayPlan{
			Date:  startDate.AddDate(0, 0, day),
			Meals: make([]PlannedMeal, 0, mealsPerDay),
		}
		for i, slot := range mealSlots {
			if len(buckets[i]) == 0 {
				continue
			}
			plan.Meals = append(plan.Meals, PlannedMeal{
				MealType: slot.mealType,
				Recipe:   buckets[i][day%len(buckets[i])],
			})
		}
		week.Days = append(week.Days, plan)
	}
	return week
}

// mealTypeIn 空白餐別視為 any
func mealTypeIn(mealType string, compatible []string) bool {
	mt := strings.ToLower(strings.TrimSpace(mealType))
	if mt == "" {
		mt = common.MealTypeAny
	}
	for _, c := range compatible {
		if mt == c {
			return true
		}
	}
	return false
}
