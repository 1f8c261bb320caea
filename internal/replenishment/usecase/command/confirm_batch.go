package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/replenishment/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// BatchLineInput is one selected part with its order quantity and the price
// the user accepted from the plan estimate.
type BatchLineInput struct {
	PartNumber string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// ConfirmBatchCommand turns a user-selected subset of a replenishment plan
// into a PENDING supplier order batch.
type ConfirmBatchCommand struct {
	Supplier string
	Lines    []BatchLineInput
}

// ConfirmBatchHandler handles confirm batch command
type ConfirmBatchHandler struct {
	repo domain.SupplierOrderRepository
}

// NewConfirmBatchHandler creates a new confirm batch handler
func NewConfirmBatchHandler(repo domain.SupplierOrderRepository) *ConfirmBatchHandler {
	return &ConfirmBatchHandler{repo: repo}
}

// Handle executes the confirm batch command
func (h *ConfirmBatchHandler) Handle(ctx context.Context, cmd ConfirmBatchCommand) (*domain.SupplierOrder, error) {
	supplier := strings.TrimSpace(cmd.Supplier)
	if supplier == "" {
		return nil, fmt.Errorf("supplier is required")
	}
	if strings.EqualFold(supplier, domain.SupplierUnknown) {
		return nil, fmt.Errorf("cannot create a batch for the %s bucket", domain.SupplierUnknown)
	}
	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("batch must have at least one line")
	}

	order := &domain.SupplierOrder{
		Reference: uuid.NewString(),
		Supplier:  supplier,
		Status:    domain.StatusPending,
	}

	total := decimal.Zero
	for _, line := range cmd.Lines {
		if line.PartNumber == "" {
			return nil, fmt.Errorf("line part_number is required")
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %s: quantity must be greater than 0", line.PartNumber)
		}
		order.Lines = append(order.Lines, domain.SupplierOrderLine{
			PartNumber: line.PartNumber,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	order.TotalValue = total

	if err := h.repo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create supplier order: %w", err)
	}

	logger.Info(ctx).
		Str("supplier", supplier).
		Str("reference", order.Reference).
		Int("lines", len(order.Lines)).
		Str("total_value", order.TotalValue.StringFixed(2)).
		Msg("Replenishment batch confirmed")

	return order, nil
}
