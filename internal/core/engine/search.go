package engine

import (
	"sort"
	"strings"
)

// 模糊搜尋分數等級
const (
	scoreExactName      = 100
	scoreNamePrefix     = 80
	scoreNameContains   = 60
	scoreIDContains     = 50
	scoreAliasPrefix    = 45
	scoreAliasContains  = 40
	maxFrequencyBoost   = 10
	frequencyBoostRatio = 2
)

// ScoredIngredient 搜尋結果
type ScoredIngredient struct {
	MasterIngredient
	Score int `json:"score"`
}

// SearchIngredients 以查詢字串排序食材總表。
// 空白查詢回傳總表前 limit 筆；limit <= 0 表示不限制筆數。
func SearchIngredients(query string, list []MasterIngredient, limit int) []ScoredIngredient {
	q := normalizeQuery(query)

	if q == "" {
		n := len(list)
		if limit > 0 && limit < n {
			n = limit
		}
		results := make([]ScoredIngredient, n)
		for i := 0; i < n; i++ {
			results[i] = ScoredIngredient{MasterIngredient: list[i]}
		}
		return results
	}

	results := make([]ScoredIngredient, 0)
	for _, ing := range list {
		score := matchScore(q, ing)
		if score <= 0 {
			continue
		}
		score += min(ing.Frequency*frequencyBoostRatio, maxFrequencyBoost)
		results = append(results, ScoredIngredient{MasterIngredient: ing, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// matchScore 分數不累加，依序取第一個符合的等級。
// 名稱包含（60）排在別名開頭（45）之前。
func matchScore(q string, ing MasterIngredient) int {
	name := strings.ToLower(ing.Name)
	switch {
	case name == q:
		return scoreExactName
	case strings.HasPrefix(name, q):
		return scoreNamePrefix
	case strings.Contains(name, q):
		return scoreNameContains
	case strings.Contains(strings.ToLower(ing.ID), strings.Join(strings.Fields(q), "-")):
		return scoreIDContains
	case anyAlias(ing.Aliases, func(a string) bool { return strings.HasPrefix(a, q) }):
		return scoreAliasPrefix
	case anyAlias(ing.Aliases, func(a string) bool { return strings.Contains(a, q) }):
		return scoreAliasContains
	}
	return 0
}

func anyAlias(aliases []string, fn func(string) bool) bool {
	for _, a := range aliases {
		if fn(a) {
			return true
		}
	}
	return false
}

// SearchIngredients 在引擎的食材總表中搜尋
func (e *Engine) SearchIngredients(query string, limit int) []ScoredIngredient {
	return SearchIngredients(query, e.masterList(), limit)
}
