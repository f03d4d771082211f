// Package jobs wires queued background work to the catalog services.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"voltshop/internal/service"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
	queue "voltshop/pkg/queue/asynq"
)

// BulkApplyHandler processes queued bulk specification edits
type BulkApplyHandler struct {
	productService *service.ProductService
}

// NewBulkApplyHandler creates a bulk apply handler
func NewBulkApplyHandler(productService *service.ProductService) *BulkApplyHandler {
	return &BulkApplyHandler{productService: productService}
}

// Register attaches the handler to the queue manager
func (h *BulkApplyHandler) Register(manager *queue.Manager) {
	manager.RegisterHandler(queue.TypeBulkApply, asynq.HandlerFunc(h.ProcessTask))
}

// ProcessTask runs one queued bulk edit. Per-product failures are part of the
// result, not task failures; only infrastructure errors trigger a retry.
func (h *BulkApplyHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.BulkApplyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal bulk apply payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := h.productService.BulkApplySpecification(ctx, &interfaces.BulkApplyRequest{
		TemplateID: payload.TemplateID,
		Value:      payload.Value,
		ProductIDs: payload.ProductIDs,
	})
	if err != nil {
		return fmt.Errorf("bulk apply failed: %w", err)
	}

	logger.InfoCtx(ctx, "queued bulk apply finished, template_id: %d, succeeded: %d, failed: %d",
		payload.TemplateID, result.SuccessCount, result.ErrorCount)
	return nil
}
