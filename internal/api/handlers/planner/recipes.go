package planner

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitQuery 列表數量參數
type LimitQuery struct {
	Limit int `form:"limit" binding:"min=0"`
}

// GetRecipe GET /recipes/:id
func (h *Handler) GetRecipe(c *gin.Context) {
	r, err := h.service.Recipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Pairings GET /recipes/:id/pairings
func (h *Handler) Pairings(c *gin.Context) {
	var q LimitQuery
	if err := bindQuery(c, &q); err != nil {
		h.respondError(c, err)
		return
	}

	pairings, err := h.service.Pairings(c.Request.Context(), c.Param("id"), q.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": c.Param("id"), "pairings": pairings})
}

// Similar GET /recipes/:id/similar
func (h *Handler) Similar(c *gin.Context) {
	var q LimitQuery
	if err := bindQuery(c, &q); err != nil {
		h.respondError(c, err)
		return
	}

	similar, err := h.service.Similar(c.Request.Context(), c.Param("id"), q.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": c.Param("id"), "similar": similar})
}
