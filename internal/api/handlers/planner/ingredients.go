package planner

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchIngredientsQuery 食材搜尋參數
type SearchIngredientsQuery struct {
	Query string `form:"q"`
	Limit int    `form:"limit" binding:"min=0"`
}

// SearchIngredients GET /ingredients
func (h *Handler) SearchIngredients(c *gin.Context) {
	var q SearchIngredientsQuery
	if err := bindQuery(c, &q); err != nil {
		h.respondError(c, err)
		return
	}

	results, err := h.service.SearchIngredients(c.Request.Context(), q.Query, q.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q.Query, "results": results})
}

// GetIngredient GET /ingredients/:id
func (h *Handler) GetIngredient(c *gin.Context) {
	ing, err := h.service.Ingredient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}
