package planner

import (
	"fmt"
	"net/http"
	"time"

	"meal-planner/internal/core/recipe"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// EfficientPlanRequest 採買效率菜單請求
type EfficientPlanRequest struct {
	MealCount        int      `json:"meal_count" binding:"min=0"`
	ExcludeRecipeIDs []string `json:"exclude_recipe_ids"`
	DietaryTags      []string `json:"dietary_tags"`
}

// WeekPlanRequest 一週菜單請求
type WeekPlanRequest struct {
	StartDate        string   `json:"start_date" binding:"required"`
	ExcludeRecipeIDs []string `json:"exclude_recipe_ids"`
	DietaryTags      []string `json:"dietary_tags"`
}

// EfficientPlan POST /plans/efficient
func (h *Handler) EfficientPlan(c *gin.Context) {
	var req EfficientPlanRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	plan, err := h.service.EfficientPlan(c.Request.Context(), recipe.PlanRequest{
		MealCount:        req.MealCount,
		ExcludeRecipeIDs: req.ExcludeRecipeIDs,
		DietaryTags:      req.DietaryTags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// WeekPlan POST /plans/week
func (h *Handler) WeekPlan(c *gin.Context) {
	var req WeekPlanRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if req.StartDate == "" {
		h.respondError(c, common.NewValidationError("start_date is required"))
		return
	}
	start, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		h.respondError(c, common.NewValidationError(fmt.Sprintf("start_date must be YYYY-MM-DD, got %q", req.StartDate)))
		return
	}

	plan, err := h.service.WeekPlan(c.Request.Context(), start, recipe.PlanRequest{
		ExcludeRecipeIDs: req.ExcludeRecipeIDs,
		DietaryTags:      req.DietaryTags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
