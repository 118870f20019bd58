package engine

import (
	"math"
	"sort"
	"strings"
)

const (
	goodMatchThreshold    = 75
	partialMatchThreshold = 50

	// 只有缺 1~3 樣食材的食譜會影響購買建議
	suggestionMinMatch   = 50
	suggestionMaxMissing = 3
)

// FindMatchingRecipes 依使用者現有食材計算每道食譜的配對百分比與缺少的食材
func (e *Engine) FindMatchingRecipes(availableIDs []string, opts MatchOptions) PantryMatchResult {
	available := toSet(availableIDs)

	matches := make([]RecipeMatch, 0, len(e.recipes))
	for i, recipe := range e.recipes {
		ids := e.ids[i]
		matched := make([]string, 0, len(ids))
		missing := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := available[id]; ok {
				matched = append(matched, id)
			} else {
				missing = append(missing, id)
			}
		}

		m := RecipeMatch{
			Recipe:             recipe,
			MatchedIngredients: matched,
			MissingIngredients: missing,
			MatchPercentage:    matchPercentage(len(matched), len(ids)),
			MissingCount:       len(missing),
		}
		if m.MatchPercentage < opts.MinimumMatchPercentage {
			continue
		}
		matches = append(matches, m)
	}

	sortMatches(matches, opts.SortBy, opts.SortDirection)

	result := PantryMatchResult{
		Matches:      matches,
		TotalRecipes: len(e.recipes),
	}
	for _, m := range matches {
		switch {
		case m.MatchPercentage == 100:
			result.PerfectMatches++
			result.GoodMatches++
		case m.MatchPercentage >= goodMatchThreshold:
			result.GoodMatches++
		case m.MatchPercentage >= partialMatchThreshold:
			result.PartialMatches++
		}
	}
	return result
}

// matchPercentage 四捨五入的百分比；沒有可辨識食材時為 0
func matchPercentage(matched, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}

// sortMatches 穩定排序，目錄順序為同分時的次序
func sortMatches(matches []RecipeMatch, by SortField, dir SortDirection) {
	var less func(a, b RecipeMatch) bool
	switch by {
	case SortByMissingCount:
		less = func(a, b RecipeMatch) bool { return a.MissingCount < b.MissingCount }
	case SortByCookTime:
		less = func(a, b RecipeMatch) bool { return a.Recipe.CookTime < b.Recipe.CookTime }
	case SortByName:
		less = func(a, b RecipeMatch) bool {
			return strings.ToLower(a.Recipe.Name) < strings.ToLower(b.Recipe.Name)
		}
	default:
		less = func(a, b RecipeMatch) bool { return a.MatchPercentage < b.MatchPercentage }
	}

	if dir == SortAsc {
		sort.SliceStable(matches, func(i, j int) bool { return less(matches[i], matches[j]) })
		return
	}
	sort.SliceStable(matches, func(i, j int) bool { return less(matches[j], matches[i]) })
}

// SuggestNextIngredients 找出最值得取得的食材：能讓最多食譜從缺一樣變成齊全（unlock），
// 或出現在最多接近完成食譜的缺少清單中（improve）。limit <= 0 表示不限制。
func (e *Engine) SuggestNextIngredients(currentIDs []string, limit int) []IngredientSuggestion {
	current := toSet(currentIDs)
	matches := e.FindMatchingRecipes(currentIDs, MatchOptions{MinimumMatchPercentage: suggestionMinMatch})

	order := make([]string, 0)
	byID := make(map[string]*IngredientSuggestion)

	for _, m := range matches.Matches {
		if m.MissingCount == 0 || m.MissingCount > suggestionMaxMissing {
			continue
		}
		for _, id := range m.MissingIngredients {
			if _, owned := current[id]; owned {
				continue
			}
			s, ok := byID[id]
			if !ok {
				ing, known := e.Ingredient(id)
				if !known {
					continue
				}
				s = &IngredientSuggestion{Ingredient: ing, UnlockedRecipes: []string{}}
				byID[id] = s
				order = append(order, id)
			}
			if m.MissingCount == 1 {
				s.UnlockCount++
				s.UnlockedRecipes = append(s.UnlockedRecipes, m.Recipe.ID)
			}
			s.ImproveCount++
		}
	}

	suggestions := make([]IngredientSuggestion, 0, len(order))
	for _, id := range order {
		suggestions = append(suggestions, *byID[id])
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].UnlockCount != suggestions[j].UnlockCount {
			return suggestions[i].UnlockCount > suggestions[j].UnlockCount
		}
		return suggestions[i].ImproveCount > suggestions[j].ImproveCount
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
