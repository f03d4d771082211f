package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
)

// RuleHandler handles compatibility rule authoring APIs
type RuleHandler struct {
	ruleService *service.RuleService
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(ruleService *service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// CreateRule creates a compatibility rule
// @Summary Create compatibility rule
// @Tags Rules
// @Accept json
// @Produce json
// @Param request body interfaces.CreateRuleRequest true "Rule creation request"
// @Success 200 {object} interfaces.RuleResult
// @Router /api/v1/rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req interfaces.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to bind create rule request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ruleService.CreateRule(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Created rule %d between categories %d and %d",
		result.Rule.ID, req.PrimaryCategoryID, req.SecondaryCategoryID)
	c.JSON(http.StatusOK, result)
}

// ListRules lists active rules, optionally filtered by category
// @Summary List compatibility rules
// @Tags Rules
// @Produce json
// @Param category_id query int false "Filter by category on either side"
// @Success 200 {array} compat.Rule
// @Router /api/v1/rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	if categoryParam := c.Query("category_id"); categoryParam != "" {
		categoryID, err := strconv.ParseInt(categoryParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		rules, err := h.ruleService.ListRulesForCategory(c.Request.Context(), categoryID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, rules)
		return
	}

	rules, err := h.ruleService.ListActiveRules(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rules)
}

// SetRuleActive enables or disables a rule
// @Summary Toggle compatibility rule
// @Tags Rules
// @Accept json
// @Produce json
// @Param id path int true "Rule id"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/rules/{id}/active [put]
func (h *RuleHandler) SetRuleActive(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ruleService.SetRuleActive(c.Request.Context(), id, req.Active); err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Rule %d active=%v", id, req.Active)
	c.JSON(http.StatusOK, gin.H{"id": id, "active": req.Active})
}

// DeleteRule deletes a rule
// @Summary Delete compatibility rule
// @Tags Rules
// @Param id path int true "Rule id"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/rules/{id} [delete]
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.ruleService.DeleteRule(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Deleted rule %d", id)
	c.JSON(http.StatusOK, gin.H{"message": "rule deleted", "id": id})
}
