package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"meal-planner/internal/core/engine"
	"meal-planner/internal/core/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
- id: pancakes
  name: Pancakes
  meal_type: breakfast
  prep_time: 5
  cook_time: 15
  ingredients:
    - {ingredient_id: egg, name: Egg, amount: "2"}
    - {ingredient_id: flour, name: Flour, amount: "200", unit: g}
    - {ingredient_id: milk, name: Milk}
- id: omelette
  name: Omelette
  meal_type: breakfast
  cook_time: 5
  ingredients:
    - {ingredient_id: egg, name: Egg}
    - {ingredient_id: milk, name: Milk}
    - {ingredient_id: null, name: Salt to taste}
- id: crepes
  name: Crepes
  cuisine: French
  meal_type: dinner
  cook_time: 20
  dietary_tags: [vegetarian]
  ingredients:
    - {ingredient_id: egg, name: Egg}
    - {ingredient_id: flour, name: Flour}
    - {ingredient_id: milk, name: Milk}
    - {ingredient_id: butter, name: Butter}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o644))

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--catalog", path}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "search", "fl", "--limit", "1")
	require.NoError(t, err)

	var results []engine.ScoredIngredient
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "flour", results[0].ID)
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "show", "omelette")
	require.NoError(t, err)
	assert.Contains(t, out, "Omelette (omelette)")
	assert.Contains(t, out, "- Salt to taste [-]")

	_, err = run(t, "show", "nope")
	assert.Error(t, err)
}

func TestMatchCommand(t *testing.T) {
	out, err := run(t, "match", "--have", "egg,milk", "--min", "60", "--sort", "name", "--dir", "asc")
	require.NoError(t, err)

	var result engine.PantryMatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "omelette", result.Matches[0].Recipe.ID)
	assert.Equal(t, "pancakes", result.Matches[1].Recipe.ID)

	_, err = run(t, "match", "--sort", "calories")
	assert.Error(t, err)
}

func TestSuggestCommand(t *testing.T) {
	out, err := run(t, "suggest", "--have", "egg,milk")
	require.NoError(t, err)

	var suggestions []engine.IngredientSuggestion
	require.NoError(t, json.Unmarshal([]byte(out), &suggestions))
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "flour", suggestions[0].Ingredient.ID)
	assert.Equal(t, []string{"pancakes"}, suggestions[0].UnlockedRecipes)
}

func TestPairingsAndSimilarCommands(t *testing.T) {
	out, err := run(t, "pairings", "pancakes", "-n", "1")
	require.NoError(t, err)
	var pairings []engine.RecipePairing
	require.NoError(t, json.Unmarshal([]byte(out), &pairings))
	require.Len(t, pairings, 1)
	assert.Equal(t, "crepes", pairings[0].Recipe.ID)

	out, err = run(t, "similar", "unknown")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestPlanCommands(t *testing.T) {
	out, err := run(t, "plan", "--meals", "2", "--exclude", "crepes")
	require.NoError(t, err)
	var plan engine.WeeklyPlanSuggestion
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Len(t, plan.Recipes, 2)
	assert.Equal(t, 3, plan.TotalUniqueIngredients)

	out, err = run(t, "week", "--start", "2024-01-01", "--tags", "vegetarian")
	require.NoError(t, err)
	var week engine.WeekPlan
	require.NoError(t, json.Unmarshal([]byte(out), &week))
	require.Len(t, week.Days, 7)
	require.Len(t, week.Days[0].Meals, 1)
	assert.Equal(t, "dinner", week.Days[0].Meals[0].MealType)

	_, err = run(t, "week", "--start", "01/01/2024")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)

	var status recipe.CatalogStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Loaded)
	assert.Equal(t, 3, status.Engine.Recipes)
	assert.Equal(t, 4, status.Engine.Ingredients)
}

func TestMissingCatalog(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--catalog", filepath.Join(t.TempDir(), "missing.json"), "stats"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")
}
