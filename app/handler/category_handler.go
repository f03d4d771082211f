package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
)

// CategoryHandler handles category tree APIs
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory creates a category or subcategory
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body interfaces.CreateCategoryRequest true "Category creation request"
// @Success 200 {object} interfaces.CategoryInfo
// @Router /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req interfaces.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to bind create category request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Created category: %s", category.Name)
	c.JSON(http.StatusOK, category)
}

// GetCategory gets a category by id
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} interfaces.CategoryInfo
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// ListCategories lists all categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} interfaces.CategoryInfo
// @Router /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListSubcategories lists the children of a category
// @Summary List subcategories
// @Tags Categories
// @Produce json
// @Param id path int true "Parent category id"
// @Success 200 {array} interfaces.CategoryInfo
// @Router /api/v1/categories/{id}/children [get]
func (h *CategoryHandler) ListSubcategories(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	categories, err := h.categoryService.ListSubcategories(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListPCComponents lists configurator categories in picker order
// @Summary List PC component categories
// @Tags Categories
// @Produce json
// @Success 200 {array} interfaces.CategoryInfo
// @Router /api/v1/configurator/categories [get]
func (h *CategoryHandler) ListPCComponents(c *gin.Context) {
	categories, err := h.categoryService.ListPCComponentCategories(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
