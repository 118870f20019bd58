package engine

import (
	"sort"

	"meal-planner/internal/pkg/common"
)

// identifiedIngredientIDs 取得食譜中有識別碼的食材 ID（去重，保留首次出現順序）。
// 沒有識別碼的食材無法參與配對、建議與相似度計算。
func identifiedIngredientIDs(recipe common.Recipe) []string {
	ids := make([]string, 0, len(recipe.Ingredients))
	seen := make(map[string]struct{}, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		id, ok := ing.ID()
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// BuildMasterIngredientList 掃描食譜目錄建立去重後的食材清單，依使用次數由高到低排序，
// 同次數時依目錄中首次出現順序。
func BuildMasterIngredientList(recipes []common.Recipe) []MasterIngredient {
	list := make([]MasterIngredient, 0)
	position := make(map[string]int)
	// 每個食材已記錄過的食譜
	counted := make(map[string]map[string]struct{})

	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			id, ok := ing.ID()
			if !ok {
				continue
			}

			idx, exists := position[id]
			if !exists {
				position[id] = len(list)
				counted[id] = map[string]struct{}{recipe.ID: {}}
				list = append(list, MasterIngredient{
					ID:        id,
					Name:      ing.Name,
					Category:  ing.Category,
					Aliases:   generateAliases(id, ing.Name),
					RecipeIDs: []string{recipe.ID},
					Frequency: 1,
				})
				continue
			}

			if _, seen := counted[id][recipe.ID]; seen {
				continue
			}
			counted[id][recipe.ID] = struct{}{}
			list[idx].RecipeIDs = append(list[idx].RecipeIDs, recipe.ID)
			list[idx].Frequency++
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Frequency > list[j].Frequency
	})
	return list
}

// computeOverlap 計算兩組食材 ID 的 Jaccard 重疊；共同食材依 a 的順序
func computeOverlap(recipeA, recipeB string, idsA []string, setB map[string]struct{}) IngredientOverlap {
	shared := make([]string, 0)
	for _, id := range idsA {
		if _, ok := setB[id]; ok {
			shared = append(shared, id)
		}
	}

	union := len(idsA) + len(setB) - len(shared)
	score := 0.0
	if union > 0 {
		score = float64(len(shared)) / float64(union)
	}

	return IngredientOverlap{
		RecipeA:                recipeA,
		RecipeB:                recipeB,
		SharedIngredients:      shared,
		SharedCount:            len(shared),
		TotalUniqueIngredients: union,
		OverlapScore:           score,
	}
}

// BuildOverlapMatrix 計算所有食譜兩兩之間的食材重疊。複雜度為 O(R²·I)，
// 呼叫端應只計算一次並快取結果（見 Engine）。
func BuildOverlapMatrix(recipes []common.Recipe) OverlapMatrix {
	ids := make([][]string, len(recipes))
	sets := make([]map[string]struct{}, len(recipes))
	for i, recipe := range recipes {
		ids[i] = identifiedIngredientIDs(recipe)
		sets[i] = toSet(ids[i])
	}
	return buildOverlapMatrix(recipes, ids, sets)
}

func buildOverlapMatrix(recipes []common.Recipe, ids [][]string, sets []map[string]struct{}) OverlapMatrix {
	matrix := make(OverlapMatrix, len(recipes))
	for i, a := range recipes {
		if _, exists := matrix[a.ID]; exists {
			continue
		}
		overlaps := make([]IngredientOverlap, 0, len(recipes)-1)
		for j, b := range recipes {
			if i == j || a.ID == b.ID {
				continue
			}
			overlaps = append(overlaps, computeOverlap(a.ID, b.ID, ids[i], sets[j]))
		}
		sort.SliceStable(overlaps, func(x, y int) bool {
			return overlaps[x].OverlapScore > overlaps[y].OverlapScore
		})
		matrix[a.ID] = overlaps
	}
	return matrix
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
