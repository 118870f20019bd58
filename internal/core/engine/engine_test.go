package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineBuildsIndexesLazily(t *testing.T) {
	e := New(bakingCatalog())

	stats := e.Stats()
	assert.Equal(t, 3, stats.Recipes)
	assert.False(t, stats.MasterListBuilt)
	assert.False(t, stats.OverlapIndexBuilt)

	e.SearchIngredients("", 1)
	stats = e.Stats()
	assert.True(t, stats.MasterListBuilt)
	assert.Equal(t, 6, stats.Ingredients)
	assert.False(t, stats.OverlapIndexBuilt)

	e.Warm()
	stats = e.Stats()
	assert.True(t, stats.OverlapIndexBuilt)
	assert.Equal(t, 6, stats.OverlapPairs)
}

func TestEngineConcurrentFirstAccess(t *testing.T) {
	e := New(bakingCatalog())

	var wg sync.WaitGroup
	results := make([][]IngredientOverlap, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Overlaps("r1")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.Equal(t, 6, e.Stats().OverlapPairs)
}

func TestEngineSkipsDuplicateRecipeIDs(t *testing.T) {
	catalog := bakingCatalog()
	dup := recipe("r1", ing("salt", "Salt"))
	e := New(append(catalog, dup))

	assert.Len(t, e.Recipes(), 3)
	r, ok := e.Recipe("r1")
	require.True(t, ok)
	assert.Equal(t, "Sponge cake", r.Name)
	_, ok = e.Ingredient("salt")
	assert.False(t, ok)
}

func TestEngineLookups(t *testing.T) {
	e := New(bakingCatalog())

	_, ok := e.Recipe("missing")
	assert.False(t, ok)

	egg, ok := e.Ingredient("egg")
	require.True(t, ok)
	assert.Equal(t, []string{"r1"}, egg.RecipeIDs)

	assert.NotNil(t, e.Overlaps("missing"))
	assert.Empty(t, e.Overlaps("missing"))

	// 回傳的是複本，呼叫端修改不影響索引
	list := e.MasterIngredients()
	list[0].Name = "changed"
	assert.Equal(t, "Flour", e.MasterIngredients()[0].Name)
}

func TestEmptyCatalog(t *testing.T) {
	e := New(nil)

	assert.Empty(t, e.SearchIngredients("", 10))
	assert.Empty(t, e.SearchIngredients("salt", 10))

	res := e.FindMatchingRecipes([]string{"salt"}, MatchOptions{})
	assert.Empty(t, res.Matches)
	assert.Zero(t, res.TotalRecipes)

	assert.Empty(t, e.SuggestNextIngredients([]string{"salt"}, 5))
	assert.Empty(t, e.FindPairingRecipes("x", 5))
	assert.Empty(t, e.FindSimilarRecipes("x", 5))

	plan := e.SuggestEfficientWeeklyPlan(5, PlanPreferences{})
	assert.Empty(t, plan.Recipes)
	assert.Zero(t, plan.EfficiencyScore)
}
