package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
	"voltshop/pkg/interfaces"
)

// CompatibilityHandler handles compatibility verdict APIs
type CompatibilityHandler struct {
	compatService *service.CompatibilityService
}

// NewCompatibilityHandler creates a new compatibility handler
func NewCompatibilityHandler(compatService *service.CompatibilityService) *CompatibilityHandler {
	return &CompatibilityHandler{compatService: compatService}
}

// CheckCompatibility evaluates a candidate selection
// @Summary Check selection compatibility
// @Tags Compatibility
// @Accept json
// @Produce json
// @Param request body interfaces.CompatibilityCheckRequest true "Selection to check"
// @Success 200 {object} compat.EvaluationResult
// @Router /api/v1/configurator/check [post]
func (h *CompatibilityHandler) CheckCompatibility(c *gin.Context) {
	var req interfaces.CompatibilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.compatService.CheckCompatibility(c.Request.Context(), req.Selections)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
