package command

import (
	"context"
	"fmt"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	orderdomain "github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/internal/returns/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
	"github.com/tokoparts/backoffice/pkg/metrics"
)

// ReturnLineInput is one line of a partial or full order return.
type ReturnLineInput struct {
	OrderItemID uint
	Quantity    int
}

// ProcessReturnCommand reverses part or all of a processing/completed order's
// stock effect without re-running the state machine.
type ProcessReturnCommand struct {
	OrderID uint
	Lines   []ReturnLineInput
}

// ReturnLineResult reports what happened to one requested return line.
type ReturnLineResult struct {
	OrderItemID uint   `json:"order_item_id"`
	PartNumber  string `json:"part_number"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// ReturnResult is the itemized outcome of one return call.
type ReturnResult struct {
	OrderID     uint               `json:"order_id"`
	OrderStatus string             `json:"order_status"`
	TotalAmount string             `json:"total_amount"`
	Lines       []ReturnLineResult `json:"lines"`
}

// ProcessReturnHandler processes order-attached returns.
//
// The handler does not track already-returned quantity beyond the shrinking
// line quantity, so replaying the same call double-returns. Single invocation
// is the caller's job (the HTTP layer holds a Redis idempotency guard).
type ProcessReturnHandler struct {
	orders  orderdomain.OrderRepository
	returns domain.ReturnRepository
	ledger  *ledger.Ledger
}

// NewProcessReturnHandler creates a new process return handler
func NewProcessReturnHandler(orders orderdomain.OrderRepository, returns domain.ReturnRepository, l *ledger.Ledger) *ProcessReturnHandler {
	return &ProcessReturnHandler{orders: orders, returns: returns, ledger: l}
}

// Handle executes the return. Per line: restore stock, shrink the order line
// (never below zero), drop emptied lines; then re-derive the total and cancel
// the order when nothing remains.
func (h *ProcessReturnHandler) Handle(ctx context.Context, cmd ProcessReturnCommand) (*ReturnResult, error) {
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("at least one return line is required")
	}
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("return quantity must be greater than 0")
		}
	}

	order, err := h.orders.FindByID(cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != orderdomain.StatusProcessing && order.Status != orderdomain.StatusCompleted {
		return nil, fmt.Errorf("returns require a processing or completed order, order is %s", order.Status)
	}

	result := &ReturnResult{OrderID: order.ID}
	label := order.CounterpartyLabel()
	var records []domain.ReturnRecord

	for _, req := range cmd.Lines {
		lineResult := ReturnLineResult{OrderItemID: req.OrderItemID}

		line := findLine(order, req.OrderItemID)
		if line == nil {
			lineResult.Status = "skipped"
			lineResult.Reason = "order line not found"
			result.Lines = append(result.Lines, lineResult)
			continue
		}
		lineResult.PartNumber = line.PartNumber

		// Cap at what the line still holds; a return can never drive the
		// line quantity negative.
		qty := req.Quantity
		if qty > line.Quantity {
			qty = line.Quantity
		}
		lineResult.Quantity = qty

		_, err := h.ledger.Restore(ctx, ledger.Adjustment{
			PartNumber:   line.PartNumber,
			Quantity:     qty,
			UnitPrice:    line.EffectivePrice(),
			Counterparty: label,
			Reason:       invdomain.ReasonReturn,
			PaymentTerm:  order.Tempo,
		})
		if err != nil {
			lineResult.Status = "skipped"
			lineResult.Reason = err.Error()
			result.Lines = append(result.Lines, lineResult)
			logger.Warn(ctx).
				Err(err).
				Uint("order_id", order.ID).
				Str("part_number", line.PartNumber).
				Msg("Return line skipped")
			continue
		}

		line.Quantity -= qty
		lineResult.Status = "applied"
		result.Lines = append(result.Lines, lineResult)

		itemID := line.ID
		orderID := order.ID
		records = append(records, domain.ReturnRecord{
			OrderID:     &orderID,
			OrderItemID: &itemID,
			PartNumber:  line.PartNumber,
			Quantity:    qty,
			Type:        domain.TypeOrder,
		})
	}

	// Drop emptied lines and re-derive the total from what remains.
	remaining := order.Items[:0]
	for _, line := range order.Items {
		if line.Quantity > 0 {
			remaining = append(remaining, line)
		}
	}
	order.Items = remaining
	order.RecomputeTotal()

	if len(order.Items) == 0 {
		order.Status = orderdomain.StatusCancelled
	}

	if err := h.orders.ReplaceItems(order); err != nil {
		return nil, fmt.Errorf("failed to update order after return: %w", err)
	}

	// Each record carries the order status the return left behind, so they
	// are written only once that status is settled.
	for i := range records {
		records[i].ResultingStatus = order.Status
		if err := h.returns.Create(&records[i]); err != nil {
			return nil, fmt.Errorf("failed to record return: %w", err)
		}
		metrics.ReturnsTotal.WithLabelValues(domain.TypeOrder).Inc()
	}

	result.OrderStatus = order.Status
	result.TotalAmount = order.TotalAmount.StringFixed(2)

	logger.Info(ctx).
		Uint("order_id", order.ID).
		Str("status", order.Status).
		Int("lines", len(result.Lines)).
		Msg("Return processed")

	return result, nil
}

func findLine(order *orderdomain.Order, orderItemID uint) *orderdomain.OrderItem {
	for i := range order.Items {
		if order.Items[i].ID == orderItemID {
			return &order.Items[i]
		}
	}
	return nil
}
