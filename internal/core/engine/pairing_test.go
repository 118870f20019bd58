package engine

import (
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPairingRecipes(t *testing.T) {
	e := New(bakingCatalog())

	pairings := e.FindPairingRecipes("r1", 5)
	require.Len(t, pairings, 2)

	top := pairings[0]
	assert.Equal(t, "r2", top.Recipe.ID)
	assert.InDelta(t, 0.5, top.OverlapScore, 1e-9)
	assert.Equal(t, 2, top.SharedCount)
	assert.Equal(t, []string{"Flour", "Sugar"}, top.SharedIngredients)
	assert.Equal(t, 1, top.AdditionalIngredients)
	assert.InDelta(t, 2.0/3.0, top.ShoppingEfficiency, 1e-9)

	last := pairings[1]
	assert.Equal(t, "r3", last.Recipe.ID)
	assert.Zero(t, last.ShoppingEfficiency)
	assert.Empty(t, last.SharedIngredients)

	assert.Len(t, e.FindPairingRecipes("r1", 1), 1)
}

func TestFindPairingRecipesUnknownRecipe(t *testing.T) {
	e := New(bakingCatalog())

	pairings := e.FindPairingRecipes("nope", 5)
	assert.NotNil(t, pairings)
	assert.Empty(t, pairings)
}

func TestFindPairingRecipesUsesPairedRecipeNames(t *testing.T) {
	e := New([]common.Recipe{
		recipe("base", ing("tomato", "Tomato"), ing("basil", "Basil")),
		recipe("salad", ing("tomato", "Heirloom tomatoes"), ing("basil", "Fresh basil"), adhoc("Salt")),
	})

	pairings := e.FindPairingRecipes("base", 1)
	require.Len(t, pairings, 1)
	assert.Equal(t, []string{"Heirloom tomatoes", "Fresh basil"}, pairings[0].SharedIngredients)
	assert.InDelta(t, 1.0, pairings[0].ShoppingEfficiency, 1e-9)
}

func TestFindSimilarRecipes(t *testing.T) {
	e := New(bakingCatalog())

	similar := e.FindSimilarRecipes("r1", 5)
	require.Len(t, similar, 2)

	top := similar[0]
	assert.Equal(t, "r2", top.Recipe.ID)
	require.Len(t, top.Reasons, 3)
	assert.Equal(t, ReasonIngredientOverlap, top.Reasons[0].Type)
	assert.Equal(t, ReasonCuisineMatch, top.Reasons[1].Type)
	assert.Equal(t, ReasonTimeEfficient, top.Reasons[2].Type)
	assert.Equal(t, 33, top.Score)
	assert.Equal(t, ReasonIngredientOverlap, top.PrimaryReason)

	none := similar[1]
	assert.Equal(t, "r3", none.Recipe.ID)
	assert.Empty(t, none.Reasons)
	assert.Zero(t, none.Score)
	assert.Equal(t, ReasonIngredientOverlap, none.PrimaryReason)

	assert.Empty(t, e.FindSimilarRecipes("nope", 5))
}

func TestFindSimilarRecipesReasonOrder(t *testing.T) {
	base := recipe("base", ing("a", "A"), ing("b", "B"), ing("c", "C"), ing("d", "D"))
	base.Cuisine, base.CookTime = "Thai", 30
	other := recipe("other", ing("a", "A"), ing("x", "X"), ing("y", "Y"), ing("z", "Z"))
	other.Cuisine, other.CookTime = "thai", 45

	e := New([]common.Recipe{base, other})
	similar := e.FindSimilarRecipes("base", 1)
	require.Len(t, similar, 1)

	// 重疊 1/7 低於門檻，只有菜系相同
	require.Len(t, similar[0].Reasons, 1)
	assert.Equal(t, ReasonCuisineMatch, similar[0].PrimaryReason)
	assert.Equal(t, 30, similar[0].Score)
}

func TestSimilarityScore(t *testing.T) {
	assert.Equal(t, 0, similarityScore(nil))
	assert.Equal(t, 20, similarityScore([]SimilarityReason{{Weight: timeEfficientWeight}}))
	assert.Equal(t, 100, similarityScore([]SimilarityReason{{Weight: 1.0}}))
	assert.Equal(t, 100, similarityScore([]SimilarityReason{{Weight: 1.5}}))
}

func TestSameCuisineRequiresValue(t *testing.T) {
	assert.False(t, sameCuisine("", ""))
	assert.True(t, sameCuisine("Korean", " korean"))
	assert.False(t, sameCuisine("Korean", "Chinese"))
}
