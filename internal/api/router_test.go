package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"meal-planner/internal/core/engine"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ing(id, name string) common.RecipeIngredient {
	return common.RecipeIngredient{IngredientID: common.StringPtr(id), Name: name}
}

func catalogFixture() []common.Recipe {
	return []common.Recipe{
		{ID: "shakshuka", Name: "Shakshuka", Cuisine: "Middle Eastern", MealType: "breakfast", PrepTime: 10, CookTime: 20,
			Ingredients: []common.RecipeIngredient{ing("egg", "Egg"), ing("tomato", "Tomato"), ing("onion", "Onion"), ing("cumin", "Cumin")}},
		{ID: "tomato-soup", Name: "Tomato soup", MealType: "lunch", PrepTime: 10, CookTime: 30, DietaryTags: []string{"vegan"},
			Ingredients: []common.RecipeIngredient{ing("tomato", "Tomato"), ing("onion", "Onion"), ing("garlic", "Garlic")}},
		{ID: "fried-rice", Name: "Fried rice", MealType: "dinner", PrepTime: 5, CookTime: 10,
			Ingredients: []common.RecipeIngredient{ing("rice", "Rice"), ing("egg", "Egg"), ing("onion", "Onion"), ing("soy-sauce", "Soy sauce")}},
	}
}

type testServer struct {
	router  *gin.Engine
	service *recipe.Service
	broken  *atomic.Bool
}

func newTestServer(t *testing.T, load bool) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.App.Debug = false
	cfg.RateLimit.Enabled = false
	cfg.DedupWindow = time.Minute

	broken := &atomic.Bool{}
	loader := recipe.LoaderFunc(func(context.Context) ([]common.Recipe, error) {
		if broken.Load() {
			return nil, common.NewValidationError("recipe[0]: duplicate id")
		}
		return catalogFixture(), nil
	})
	svc := recipe.NewService(loader, nil, cfg)
	if load {
		_, err := svc.Reload(context.Background())
		require.NoError(t, err)
	}

	router, err := SetupRouter(cfg, svc)
	require.NoError(t, err)
	return &testServer{router: router, service: svc, broken: broken}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp common.ErrorResponse
	decode(t, w, &resp)
	return resp.Code
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "CATALOG_NOT_LOADED", errorCode(t, w))

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/live", nil).Code)

	var health map[string]interface{}
	w = s.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &health)
	assert.Equal(t, "degraded", health["status"])

	_, err := s.service.Reload(context.Background())
	require.NoError(t, err)

	w = s.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAPIBeforeCatalogLoad(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(http.MethodGet, "/api/v1/ingredients?q=egg", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "CATALOG_NOT_LOADED", errorCode(t, w))
}

func TestSearchIngredients(t *testing.T) {
	s := newTestServer(t, true)

	var resp struct {
		Query   string                    `json:"query"`
		Results []engine.ScoredIngredient `json:"results"`
	}
	w := s.do(http.MethodGet, "/api/v1/ingredients?q=tom&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "tomato", resp.Results[0].ID)
	assert.Equal(t, 84, resp.Results[0].Score)

	for _, q := range []string{"limit=-1", "limit=abc"} {
		w := s.do(http.MethodGet, "/api/v1/ingredients?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, common.ErrCodeInvalidRequest, errorCode(t, w), q)
	}
}

func TestGetIngredientAndRecipe(t *testing.T) {
	s := newTestServer(t, true)

	var onion engine.MasterIngredient
	w := s.do(http.MethodGet, "/api/v1/ingredients/onion", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &onion)
	assert.Equal(t, 3, onion.Frequency)

	w = s.do(http.MethodGet, "/api/v1/ingredients/unicorn", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrCodeNotFound, errorCode(t, w))

	w = s.do(http.MethodGet, "/api/v1/recipes/fried-rice", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/recipes/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPantryEndpoints(t *testing.T) {
	s := newTestServer(t, true)

	var result engine.PantryMatchResult
	w := s.do(http.MethodPost, "/api/v1/pantry/matches", map[string]interface{}{
		"available_ingredient_ids": []string{"tomato", "onion", "garlic"},
		"minimum_match_percentage": 50,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &result)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "tomato-soup", result.Matches[0].Recipe.ID)
	assert.Equal(t, 3, result.TotalRecipes)
	assert.Equal(t, 1, result.PerfectMatches)

	w = s.do(http.MethodPost, "/api/v1/pantry/matches", map[string]interface{}{"sort_by": "calories"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/pantry/matches", map[string]interface{}{"minimum_match_percentage": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var suggestions struct {
		Suggestions []engine.IngredientSuggestion `json:"suggestions"`
	}
	w = s.do(http.MethodPost, "/api/v1/pantry/suggestions", map[string]interface{}{
		"current_ingredient_ids": []string{"tomato", "onion", "egg"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &suggestions)
	require.NotEmpty(t, suggestions.Suggestions)
	assert.Equal(t, "cumin", suggestions.Suggestions[0].Ingredient.ID)
}

func TestRecipeRelations(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/api/v1/recipes/nope/pairings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipe_id":"nope","pairings":[]}`, w.Body.String())

	var pairings struct {
		Pairings []engine.RecipePairing `json:"pairings"`
	}
	w = s.do(http.MethodGet, "/api/v1/recipes/tomato-soup/pairings?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &pairings)
	require.Len(t, pairings.Pairings, 1)
	assert.Equal(t, "shakshuka", pairings.Pairings[0].Recipe.ID)

	w = s.do(http.MethodGet, "/api/v1/recipes/shakshuka/similar", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/recipes/shakshuka/similar?limit=-2", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanEndpoints(t *testing.T) {
	s := newTestServer(t, true)

	var plan engine.WeeklyPlanSuggestion
	w := s.do(http.MethodPost, "/api/v1/plans/efficient", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &plan)
	assert.Len(t, plan.Recipes, 3)
	assert.Contains(t, plan.SharedIngredients, "onion")

	var week engine.WeekPlan
	w = s.do(http.MethodPost, "/api/v1/plans/week", map[string]interface{}{"start_date": "2024-05-06"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &week)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "2024-05-12", week.Days[6].Date.Format("2006-01-02"))
	assert.Len(t, week.Days[0].Meals, 3)

	for _, body := range []map[string]interface{}{
		{"start_date": "06/05/2024"},
		{},
	} {
		w := s.do(http.MethodPost, "/api/v1/plans/week", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, common.ErrCodeInvalidRequest, errorCode(t, w))
	}
}

func TestReloadCatalog(t *testing.T) {
	s := newTestServer(t, true)

	var result recipe.ReloadResult
	w := s.do(http.MethodPost, "/api/v1/admin/catalog/reload", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &result)
	assert.Equal(t, 3, result.Recipes)
	assert.False(t, result.Changed)

	// 視窗內重複的請求被拒絕
	w = s.do(http.MethodPost, "/api/v1/admin/catalog/reload", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	s.broken.Store(true)
	w = s.do(http.MethodPost, "/api/v1/admin/catalog/reload", map[string]bool{"force": true})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "CATALOG_LOAD_FAILED", errorCode(t, w))

	// 舊引擎仍在服務
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/ingredients/egg", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/admin/catalog", nil).Code)
}

func TestUnknownRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(http.MethodGet, "/api/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, common.ErrCodeNotFound, errorCode(t, w))

	w = s.do(http.MethodDelete, "/api/v1/pantry/matches", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, common.ErrCodeMethodNotAllowed, errorCode(t, w))
}
