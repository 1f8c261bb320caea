package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	"github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
	"github.com/tokoparts/backoffice/pkg/metrics"
)

// Per-line outcomes of a transition.
const (
	LineApplied = "applied"
	LineSkipped = "skipped"
)

// LineResult reports what happened to one order line during a transition.
// Remaining is the ledger quantity after the adjustment (only for applied
// lines that moved stock).
type LineResult struct {
	ItemID     uint   `json:"item_id"`
	PartNumber string `json:"part_number"`
	Quantity   int    `json:"quantity"`
	Remaining  int    `json:"remaining,omitempty"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

// TransitionResult is the itemized outcome of one order transition.
type TransitionResult struct {
	OrderID uint         `json:"order_id"`
	From    string       `json:"from"`
	To      string       `json:"to"`
	Applied int          `json:"applied"`
	Skipped int          `json:"skipped"`
	Lines   []LineResult `json:"lines,omitempty"`
}

// TransitionOrderCommand moves an order to a target status
type TransitionOrderCommand struct {
	OrderID uint
	Target  string
}

// TransitionOrderHandler enforces the order status state machine and its
// paired ledger side effects.
type TransitionOrderHandler struct {
	orders domain.OrderRepository
	ledger *ledger.Ledger
}

// NewTransitionOrderHandler creates a new transition order handler
func NewTransitionOrderHandler(orders domain.OrderRepository, l *ledger.Ledger) *TransitionOrderHandler {
	return &TransitionOrderHandler{orders: orders, ledger: l}
}

// Handle executes the transition. Lines whose part number no longer resolves
// are skipped and itemized, not fatal; the rest of the batch proceeds
// (at-least-effort, no rollback).
func (h *TransitionOrderHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*TransitionResult, error) {
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	if !domain.ValidStatus(cmd.Target) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Target)
	}

	order, err := h.orders.FindByID(cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if domain.IsTerminal(order.Status) {
		metrics.OrderTransitionsTotal.WithLabelValues(order.Status, cmd.Target, "rejected").Inc()
		return nil, fmt.Errorf("order %d: %w", order.ID, domain.ErrTerminalStatus)
	}

	result := &TransitionResult{OrderID: order.ID, From: order.Status, To: cmd.Target}

	// Same-status refresh: timestamp only, no ledger effect.
	if cmd.Target == order.Status {
		if err := h.orders.Touch(order.ID); err != nil {
			return nil, err
		}
		metrics.OrderTransitionsTotal.WithLabelValues(order.Status, cmd.Target, "refreshed").Inc()
		return result, nil
	}

	if !domain.CanTransition(order.Status, cmd.Target) {
		metrics.OrderTransitionsTotal.WithLabelValues(order.Status, cmd.Target, "rejected").Inc()
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, cmd.Target, domain.ErrInvalidTransition)
	}

	var completedAt *time.Time

	switch {
	case order.Status == domain.StatusPending && cmd.Target == domain.StatusProcessing:
		result.Lines = h.issueLines(ctx, order)

	case order.Status == domain.StatusPending && cmd.Target == domain.StatusCancelled:
		// Rejected before processing: stock was never decremented.

	case order.Status == domain.StatusProcessing && cmd.Target == domain.StatusCancelled:
		result.Lines = h.restoreLines(ctx, order, invdomain.ReasonReturnFull)

	case order.Status == domain.StatusProcessing && cmd.Target == domain.StatusCompleted:
		now := time.Now()
		completedAt = &now
	}

	for _, line := range result.Lines {
		if line.Status == LineApplied {
			result.Applied++
		} else {
			result.Skipped++
		}
	}

	if err := h.orders.UpdateStatus(order.ID, cmd.Target, completedAt); err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues(order.Status, cmd.Target, "failed").Inc()
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.Status, cmd.Target, "applied").Inc()
	logger.Info(ctx).
		Uint("order_id", order.ID).
		Str("from", order.Status).
		Str("to", cmd.Target).
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Msg("Order transitioned")

	return result, nil
}

// issueLines decrements stock for every order line. Each line is independent;
// a failure skips that line only.
func (h *TransitionOrderHandler) issueLines(ctx context.Context, order *domain.Order) []LineResult {
	results := make([]LineResult, 0, len(order.Items))
	label := order.CounterpartyLabel()

	for _, item := range order.Items {
		line := LineResult{
			ItemID:     item.ID,
			PartNumber: item.PartNumber,
			Quantity:   item.Quantity,
		}

		updated, err := h.ledger.Issue(ctx, ledger.Adjustment{
			PartNumber:   item.PartNumber,
			Quantity:     item.Quantity,
			UnitPrice:    item.EffectivePrice(),
			Counterparty: label,
			Reason:       invdomain.ReasonSale,
			PaymentTerm:  order.Tempo,
		})
		if err != nil {
			line.Status = LineSkipped
			line.Reason = skipReason(err)
			logger.Warn(ctx).
				Err(err).
				Uint("order_id", order.ID).
				Str("part_number", item.PartNumber).
				Msg("Line skipped during transition")
		} else {
			line.Status = LineApplied
			line.Remaining = updated.Quantity
		}

		results = append(results, line)
	}
	return results
}

// restoreLines puts stock back for every order line (full return).
func (h *TransitionOrderHandler) restoreLines(ctx context.Context, order *domain.Order, reason string) []LineResult {
	results := make([]LineResult, 0, len(order.Items))
	label := order.CounterpartyLabel()

	for _, item := range order.Items {
		line := LineResult{
			ItemID:     item.ID,
			PartNumber: item.PartNumber,
			Quantity:   item.Quantity,
		}

		updated, err := h.ledger.Restore(ctx, ledger.Adjustment{
			PartNumber:   item.PartNumber,
			Quantity:     item.Quantity,
			UnitPrice:    item.EffectivePrice(),
			Counterparty: label,
			Reason:       reason,
			PaymentTerm:  order.Tempo,
		})
		if err != nil {
			line.Status = LineSkipped
			line.Reason = skipReason(err)
			logger.Warn(ctx).
				Err(err).
				Uint("order_id", order.ID).
				Str("part_number", item.PartNumber).
				Msg("Line skipped during restore")
		} else {
			line.Status = LineApplied
			line.Remaining = updated.Quantity
		}

		results = append(results, line)
	}
	return results
}

func skipReason(err error) string {
	if errors.Is(err, invdomain.ErrItemNotFound) {
		return "part number not found"
	}
	if errors.Is(err, invdomain.ErrVersionConflict) {
		return "concurrent update, retry"
	}
	return err.Error()
}
