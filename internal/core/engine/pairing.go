package engine

import (
	"fmt"
	"math"
	"strings"

	"meal-planner/internal/pkg/common"
)

const (
	overlapReasonThreshold = 0.3
	cuisineMatchWeight     = 0.3
	timeEfficientWeight    = 0.2
)

// topOverlaps 取前 limit 筆重疊；limit <= 0 表示全部
func (e *Engine) topOverlaps(recipeID string, limit int) []IngredientOverlap {
	list, ok := e.overlapMatrix()[recipeID]
	if !ok {
		return nil
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

// FindPairingRecipes 找出與指定食譜共用最多食材、適合一起採買的食譜。未知 ID 回傳空清單。
func (e *Engine) FindPairingRecipes(recipeID string, limit int) []RecipePairing {
	overlaps := e.topOverlaps(recipeID, limit)
	pairings := make([]RecipePairing, 0, len(overlaps))
	if len(overlaps) == 0 {
		return pairings
	}

	_, baseSet := e.ingredientIDs(recipeID)
	for _, o := range overlaps {
		paired, _ := e.Recipe(o.RecipeB)
		pairedIDs, _ := e.ingredientIDs(o.RecipeB)

		additional := 0
		for _, id := range pairedIDs {
			if _, ok := baseSet[id]; !ok {
				additional++
			}
		}
		efficiency := 0.0
		if len(pairedIDs) > 0 {
			efficiency = 1 - float64(additional)/float64(len(pairedIDs))
		}

		pairings = append(pairings, RecipePairing{
			Recipe:                paired,
			OverlapScore:          o.OverlapScore,
			SharedIngredients:     sharedIngredientNames(paired.Ingredients, o.SharedIngredients),
			SharedCount:           o.SharedCount,
			AdditionalIngredients: additional,
			ShoppingEfficiency:    efficiency,
		})
	}
	return pairings
}

// FindSimilarRecipes 依食材重疊、菜系與時間找出相似食譜。未知 ID 回傳空清單。
func (e *Engine) FindSimilarRecipes(recipeID string, limit int) []RecipeSuggestion {
	overlaps := e.topOverlaps(recipeID, limit)
	suggestions := make([]RecipeSuggestion, 0, len(overlaps))
	if len(overlaps) == 0 {
		return suggestions
	}

	base, _ := e.Recipe(recipeID)
	for _, o := range overlaps {
		candidate, _ := e.Recipe(o.RecipeB)

		reasons := make([]SimilarityReason, 0, 3)
		if o.OverlapScore > overlapReasonThreshold {
			reasons = append(reasons, SimilarityReason{
				Type:        ReasonIngredientOverlap,
				Description: fmt.Sprintf("Shares %d ingredients", o.SharedCount),
				Weight:      o.OverlapScore,
			})
		}
		if sameCuisine(base.Cuisine, candidate.Cuisine) {
			reasons = append(reasons, SimilarityReason{
				Type:        ReasonCuisineMatch,
				Description: fmt.Sprintf("Same cuisine (%s)", candidate.Cuisine),
				Weight:      cuisineMatchWeight,
			})
		}
		if candidate.TotalTime() <= base.TotalTime() {
			reasons = append(reasons, SimilarityReason{
				Type:        ReasonTimeEfficient,
				Description: fmt.Sprintf("Ready in %d minutes or less", base.TotalTime()),
				Weight:      timeEfficientWeight,
			})
		}

		suggestions = append(suggestions, RecipeSuggestion{
			Recipe:        candidate,
			Score:         similarityScore(reasons),
			Reasons:       reasons,
			PrimaryReason: primaryReason(reasons),
		})
	}
	return suggestions
}

// similarityScore 各原因權重的平均值換算為百分比，上限 100
func similarityScore(reasons []SimilarityReason) int {
	total := 0.0
	for _, r := range reasons {
		total += r.Weight
	}
	divisor := max(len(reasons), 1)
	return min(100, int(math.Round(100*total/float64(divisor))))
}

// primaryReason 第一個原因；沒有任何原因時以食材重疊作為預設
func primaryReason(reasons []SimilarityReason) ReasonType {
	if len(reasons) == 0 {
		return ReasonIngredientOverlap
	}
	return reasons[0].Type
}

func sameCuisine(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

// sharedIngredientNames 依食譜自身的食材紀錄取出共同食材名稱
func sharedIngredientNames(ingredients []common.RecipeIngredient, sharedIDs []string) []string {
	shared := toSet(sharedIDs)
	names := make([]string, 0, len(sharedIDs))
	seen := make(map[string]struct{}, len(sharedIDs))
	for _, ing := range ingredients {
		id, ok := ing.ID()
		if !ok {
			continue
		}
		if _, in := shared[id]; !in {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		names = append(names, ing.Name)
	}
	return names
}
