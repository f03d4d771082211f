package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
)

// TemplateHandler handles specification template APIs
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplate creates a specification template
// @Summary Create specification template
// @Tags Templates
// @Accept json
// @Produce json
// @Param request body interfaces.CreateTemplateRequest true "Template creation request"
// @Success 200 {object} interfaces.TemplateResult
// @Router /api/v1/templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req interfaces.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to bind create template request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.templateService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Created template %s in category %d", req.Name, req.CategoryID)
	c.JSON(http.StatusOK, result)
}

// GetTemplate gets a template by id
// @Summary Get specification template
// @Tags Templates
// @Produce json
// @Param id path int true "Template id"
// @Success 200 {object} specs.Template
// @Router /api/v1/templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListTemplatesForCategory lists a category's templates in display order
// @Summary List templates for category
// @Tags Templates
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {array} specs.Template
// @Router /api/v1/categories/{id}/templates [get]
func (h *TemplateHandler) ListTemplatesForCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	templates, err := h.templateService.GetTemplatesForCategory(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate updates mutable template fields
// @Summary Update specification template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path int true "Template id"
// @Param request body interfaces.UpdateTemplateRequest true "Template update request"
// @Success 200 {object} interfaces.TemplateResult
// @Router /api/v1/templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	var req interfaces.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to bind update template request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.templateService.UpdateTemplate(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTemplate deletes a template
// @Summary Delete specification template
// @Tags Templates
// @Param id path int true "Template id"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Deleted template %d", id)
	c.JSON(http.StatusOK, gin.H{"message": "template deleted", "id": id})
}
