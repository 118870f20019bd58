package planner

import (
	"net/http"

	"meal-planner/internal/core/recipe"

	"github.com/gin-gonic/gin"
)

// MatchPantryRequest 食材庫存配對請求
type MatchPantryRequest struct {
	AvailableIngredientIDs []string `json:"available_ingredient_ids"`
	MinimumMatchPercentage int      `json:"minimum_match_percentage" binding:"min=0,max=100"`
	SortBy                 string   `json:"sort_by"`
	SortDirection          string   `json:"sort_direction"`
}

// SuggestIngredientsRequest 採買建議請求
type SuggestIngredientsRequest struct {
	CurrentIngredientIDs []string `json:"current_ingredient_ids"`
	Limit                int      `json:"limit" binding:"min=0"`
}

// MatchPantry POST /pantry/matches
func (h *Handler) MatchPantry(c *gin.Context) {
	var req MatchPantryRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.service.MatchPantry(c.Request.Context(), recipe.MatchRequest{
		AvailableIngredientIDs: req.AvailableIngredientIDs,
		MinimumMatchPercentage: req.MinimumMatchPercentage,
		SortBy:                 req.SortBy,
		SortDirection:          req.SortDirection,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SuggestIngredients POST /pantry/suggestions
func (h *Handler) SuggestIngredients(c *gin.Context) {
	var req SuggestIngredientsRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	suggestions, err := h.service.SuggestIngredients(c.Request.Context(), req.CurrentIngredientIDs, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
