package command

import (
	"context"
	"fmt"

	"github.com/tokoparts/backoffice/internal/replenishment/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// UpdateBatchStatusCommand advances a batch through PENDING → ORDERED →
// RECEIVED. Receiving goods is recorded through the goods-receipt path, not
// here; this only tracks the order document.
type UpdateBatchStatusCommand struct {
	BatchID uint
	Status  string
}

// UpdateBatchStatusHandler handles update batch status command
type UpdateBatchStatusHandler struct {
	repo domain.SupplierOrderRepository
}

// NewUpdateBatchStatusHandler creates a new update batch status handler
func NewUpdateBatchStatusHandler(repo domain.SupplierOrderRepository) *UpdateBatchStatusHandler {
	return &UpdateBatchStatusHandler{repo: repo}
}

// Handle executes the update batch status command
func (h *UpdateBatchStatusHandler) Handle(ctx context.Context, cmd UpdateBatchStatusCommand) (*domain.SupplierOrder, error) {
	if cmd.BatchID == 0 {
		return nil, fmt.Errorf("batch id is required")
	}
	if !domain.ValidStatus(cmd.Status) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Status)
	}

	order, err := h.repo.FindByID(cmd.BatchID)
	if err != nil {
		return nil, err
	}

	if !domain.CanAdvance(order.Status, cmd.Status) {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, cmd.Status, domain.ErrStatusRegression)
	}

	if err := h.repo.UpdateStatus(order.ID, cmd.Status); err != nil {
		return nil, fmt.Errorf("failed to update batch status: %w", err)
	}
	order.Status = cmd.Status

	logger.Info(ctx).
		Uint("batch_id", order.ID).
		Str("status", cmd.Status).
		Msg("Batch status updated")

	return order, nil
}
