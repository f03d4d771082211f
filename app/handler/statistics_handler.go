package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
)

// StatisticsHandler handles specification completeness reporting APIs
type StatisticsHandler struct {
	statisticsService *service.StatisticsService
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statisticsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// GetProductCompleteness reports a product's missing required keys
// @Summary Get product completeness
// @Tags Statistics
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} interfaces.ProductCompleteness
// @Router /api/v1/statistics/products/{id}/completeness [get]
func (h *StatisticsHandler) GetProductCompleteness(c *gin.Context) {
	report, err := h.statisticsService.GetProductCompleteness(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCategoryCompleteness aggregates completeness over a category
// @Summary Get category completeness
// @Tags Statistics
// @Produce json
// @Param id path int true "Category id"
// @Param include_products query bool false "Include per-product breakdown"
// @Success 200 {object} interfaces.CategoryCompleteness
// @Router /api/v1/statistics/categories/{id}/completeness [get]
func (h *StatisticsHandler) GetCategoryCompleteness(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	includeProducts := c.Query("include_products") == "true"

	report, err := h.statisticsService.GetCategoryCompleteness(c.Request.Context(), id, includeProducts)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
