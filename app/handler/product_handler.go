package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voltshop/internal/service"
	"voltshop/pkg/config"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
	queue "voltshop/pkg/queue/asynq"
)

// ProductHandler handles product APIs including the creation pipeline and
// bulk specification edits
type ProductHandler struct {
	productService *service.ProductService
	queueManager   *queue.Manager
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, queueManager *queue.Manager) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		queueManager:   queueManager,
	}
}

// CreateProduct creates a product with its specifications
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body interfaces.CreateProductRequest true "Product creation request"
// @Success 200 {object} interfaces.CreateProductResult
// @Router /api/v1/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req interfaces.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to bind create product request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.productService.CreateProductWithSpecifications(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if !result.Success {
		// Validation failures are part of the contract, not server errors
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Created product %s with %d specifications",
		result.Product.ID, len(result.Product.Specifications))
	c.JSON(http.StatusOK, result)
}

// GetProduct gets a product with its resolved specifications
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} interfaces.ProductInfo
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProductsByCategory lists a category's products
// @Summary List products in category
// @Tags Products
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {array} interfaces.ProductInfo
// @Router /api/v1/categories/{id}/products [get]
func (h *ProductHandler) ListProductsByCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	products, err := h.productService.ListProductsByCategory(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// DeleteProduct soft deletes a product
// @Summary Delete product
// @Tags Products
// @Param id path string true "Product id"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}

	logger.InfoCtx(c.Request.Context(), "Deleted product %s", id)
	c.JSON(http.StatusOK, gin.H{"message": "product deleted", "id": id})
}

// BulkApplySpecification applies one value to several products. Requests
// above the configured threshold are queued and processed in the background.
// @Summary Bulk apply specification value
// @Tags Products
// @Accept json
// @Produce json
// @Param request body interfaces.BulkApplyRequest true "Bulk apply request"
// @Success 200 {object} interfaces.BulkApplyResult
// @Success 202 {object} map[string]interface{}
// @Router /api/v1/products/specifications/bulk [post]
func (h *ProductHandler) BulkApplySpecification(c *gin.Context) {
	var req interfaces.BulkApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorCtx(c.Request.Context(), "Failed to bind bulk apply request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	threshold := config.GlobalConfig.Catalog.BulkAsyncThreshold
	if h.queueManager != nil && threshold > 0 && len(req.ProductIDs) > threshold {
		taskID, err := h.queueManager.EnqueueBulkApply(c.Request.Context(), &queue.BulkApplyPayload{
			TemplateID: req.TemplateID,
			Value:      req.Value,
			ProductIDs: req.ProductIDs,
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"task_id": taskID, "queued": len(req.ProductIDs)})
		return
	}

	result, err := h.productService.BulkApplySpecification(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
