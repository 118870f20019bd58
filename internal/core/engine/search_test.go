package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func master(id, name string, freq int, aliases ...string) MasterIngredient {
	if len(aliases) == 0 {
		aliases = generateAliases(id, name)
	}
	return MasterIngredient{ID: id, Name: name, Aliases: aliases, Frequency: freq}
}

func TestSearchIngredientsPrefixBeatsAliasContains(t *testing.T) {
	list := []MasterIngredient{
		master("tapenade", "Tapenade", 9, "tapenade", "black olive paste"),
		master("olive-oil", "Olive oil", 1),
	}

	results := SearchIngredients("oliv", list, 10)
	require.Len(t, results, 2)
	assert.Equal(t, "olive-oil", results[0].ID)
	assert.Equal(t, 82, results[0].Score)
	assert.Equal(t, "tapenade", results[1].ID)
	assert.Equal(t, 50, results[1].Score)
}

func TestSearchIngredientsTiers(t *testing.T) {
	cases := []struct {
		name  string
		query string
		ing   MasterIngredient
		want  int
	}{
		{"exact name", "basil", master("basil", "Basil", 0), 100},
		{"case insensitive", "  BASIL ", master("basil", "Basil", 0), 100},
		{"name prefix", "bas", master("basil", "Basil", 0), 80},
		{"name contains", "sil", master("basil", "Basil", 0), 60},
		{"id contains", "red pepper", master("crushed-red-pepper-flakes", "Chili flakes", 0, "chili flakes"), 50},
		{"id contains with repeated spaces", "red   pepper", master("crushed-red-pepper-flakes", "Chili flakes", 0, "chili flakes"), 50},
		{"alias prefix", "scal", master("green-onion", "Green onion", 0), 45},
		{"alias contains", "lion", master("green-onion", "Green onion", 0), 40},
		{"no match", "xyz", master("basil", "Basil", 0), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchScore(normalizeQuery(tc.query), tc.ing))
		})
	}
}

func TestSearchIngredientsNameContainsOutranksAliasPrefix(t *testing.T) {
	list := []MasterIngredient{
		master("spring-mix", "Spring mix", 0, "mesclun", "pea shoots"),
		master("split-peas", "Split peas", 0),
	}

	results := SearchIngredients("pea", list, 0)
	require.Len(t, results, 2)
	assert.Equal(t, "split-peas", results[0].ID)
	assert.Equal(t, 60, results[0].Score)
	assert.Equal(t, 45, results[1].Score)
}

func TestSearchIngredientsFrequencyBoostIsCapped(t *testing.T) {
	list := []MasterIngredient{
		master("salt", "Salt", 3),
		master("sea-salt", "Sea salt", 40),
	}
	results := SearchIngredients("salt", list, 0)
	require.Len(t, results, 2)
	assert.Equal(t, 106, results[0].Score)
	assert.Equal(t, "sea-salt", results[1].ID)
	assert.Equal(t, 70, results[1].Score)
}

func TestSearchIngredientsEmptyQueryReturnsTopOfList(t *testing.T) {
	e := New(bakingCatalog())

	results := e.SearchIngredients("   ", 2)
	require.Len(t, results, 2)
	assert.Equal(t, "flour", results[0].ID)
	assert.Equal(t, "sugar", results[1].ID)
	assert.Zero(t, results[0].Score)

	assert.Len(t, e.SearchIngredients("", 0), 6)
}

func TestSearchIngredientsLimitAndStableOrder(t *testing.T) {
	list := []MasterIngredient{
		master("brown-sugar", "Brown sugar", 1),
		master("cane-sugar", "Cane sugar", 1),
		master("icing", "Icing", 1, "icing", "sugar glaze"),
	}
	results := SearchIngredients("sugar", list, 2)
	require.Len(t, results, 2)
	assert.Equal(t, "brown-sugar", results[0].ID)
	assert.Equal(t, "cane-sugar", results[1].ID)
}
