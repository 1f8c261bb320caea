package command

import (
	"context"
	"fmt"

	"github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// TransitionGroupCommand applies one transition to every non-terminal order
// sharing a customer+tempo key, the grouping produced when a multi-item order
// was placed as several rows by the legacy checkout.
type TransitionGroupCommand struct {
	CustomerName string
	Tempo        string
	Target       string
}

// GroupResult aggregates the itemized per-order outcomes of a group
// transition. Partial failure does not roll back orders already transitioned.
type GroupResult struct {
	CustomerName string             `json:"customer_name"`
	Tempo        string             `json:"tempo"`
	Matched      int                `json:"matched"`
	Transitioned int                `json:"transitioned"`
	Failed       int                `json:"failed"`
	Orders       []TransitionResult `json:"orders"`
	Errors       []string           `json:"errors,omitempty"`
}

// TransitionGroupHandler handles group transitions
type TransitionGroupHandler struct {
	orders     domain.OrderRepository
	transition *TransitionOrderHandler
}

// NewTransitionGroupHandler creates a new group transition handler
func NewTransitionGroupHandler(orders domain.OrderRepository, transition *TransitionOrderHandler) *TransitionGroupHandler {
	return &TransitionGroupHandler{orders: orders, transition: transition}
}

// Handle executes the group transition with at-least-effort semantics: each
// order is attempted once, failures are collected, nothing is rolled back.
func (h *TransitionGroupHandler) Handle(ctx context.Context, cmd TransitionGroupCommand) (*GroupResult, error) {
	if cmd.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if !domain.ValidStatus(cmd.Target) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Target)
	}

	tempo := cmd.Tempo
	if tempo == "" {
		tempo = "CASH"
	}

	orders, err := h.orders.FindGroup(cmd.CustomerName, tempo)
	if err != nil {
		return nil, fmt.Errorf("failed to load order group: %w", err)
	}

	result := &GroupResult{
		CustomerName: cmd.CustomerName,
		Tempo:        tempo,
		Matched:      len(orders),
	}

	for _, order := range orders {
		tr, err := h.transition.Handle(ctx, TransitionOrderCommand{
			OrderID: order.ID,
			Target:  cmd.Target,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("order %d: %v", order.ID, err))
			continue
		}
		result.Transitioned++
		result.Orders = append(result.Orders, *tr)
	}

	logger.Info(ctx).
		Str("customer", cmd.CustomerName).
		Str("tempo", tempo).
		Str("target", cmd.Target).
		Int("matched", result.Matched).
		Int("transitioned", result.Transitioned).
		Int("failed", result.Failed).
		Msg("Group transition finished")

	return result, nil
}
