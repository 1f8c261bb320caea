package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/replenishment/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// DefaultThreshold is the low-stock cutoff when none is configured.
const DefaultThreshold = 5

// PlanQuery asks for a replenishment plan over all low-stock items.
type PlanQuery struct {
	Threshold int
}

// PlanLine is one low-stock item with its resolved price basis.
type PlanLine struct {
	PartNumber  string          `json:"part_number"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	CashPrice   decimal.Decimal `json:"cash_price"`
	TempoPrice  decimal.Decimal `json:"tempo_price"`
	NoCostBasis bool            `json:"no_cost_basis,omitempty"`
}

// SupplierPlan groups plan lines under one supplier. DisplayOnly marks the
// TANPA SUPPLIER bucket, which can never become a batch.
type SupplierPlan struct {
	Supplier    string     `json:"supplier"`
	DisplayOnly bool       `json:"display_only,omitempty"`
	Lines       []PlanLine `json:"lines"`
}

// Plan is the full replenishment proposal.
type Plan struct {
	Threshold int            `json:"threshold"`
	Suppliers []SupplierPlan `json:"suppliers"`
}

// PlanHandler assembles replenishment plans
type PlanHandler struct {
	items     invdomain.ItemRepository
	movements invdomain.MovementRepository
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(items invdomain.ItemRepository, movements invdomain.MovementRepository) *PlanHandler {
	return &PlanHandler{items: items, movements: movements}
}

// Handle builds the plan: select items below threshold, resolve each item's
// last-known supplier from its most recent IN movement, group under the
// normalized supplier name, and price each line from the most recent cash and
// tempo purchases independently. Output ordering is deterministic.
func (h *PlanHandler) Handle(ctx context.Context, q PlanQuery) (*Plan, error) {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	items, err := h.lowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load low-stock items: %w", err)
	}

	groups := make(map[string]*SupplierPlan)

	for _, item := range items {
		supplier := domain.SupplierUnknown
		latest, err := h.movements.FindLatestIncoming(item.PartNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve supplier for %s: %w", item.PartNumber, err)
		}
		if latest != nil && strings.TrimSpace(latest.Counterparty) != "" {
			supplier = strings.TrimSpace(latest.Counterparty)
		}

		line, err := h.priceLine(item)
		if err != nil {
			return nil, err
		}

		key := strings.ToUpper(supplier)
		group, ok := groups[key]
		if !ok {
			group = &SupplierPlan{
				Supplier:    supplier,
				DisplayOnly: key == domain.SupplierUnknown,
			}
			groups[key] = group
		}
		group.Lines = append(group.Lines, line)
	}

	plan := &Plan{Threshold: threshold}
	for _, group := range groups {
		sort.Slice(group.Lines, func(i, j int) bool {
			return group.Lines[i].PartNumber < group.Lines[j].PartNumber
		})
		plan.Suppliers = append(plan.Suppliers, *group)
	}
	sort.Slice(plan.Suppliers, func(i, j int) bool {
		return strings.ToUpper(plan.Suppliers[i].Supplier) < strings.ToUpper(plan.Suppliers[j].Supplier)
	})

	logger.Debug(ctx).
		Int("threshold", threshold).
		Int("items", len(items)).
		Int("suppliers", len(plan.Suppliers)).
		Msg("Replenishment plan assembled")

	return plan, nil
}

// lowStock prefers the context-aware repository method when the configured
// repository has one, so the plan's item scan shows up in the request trace.
func (h *PlanHandler) lowStock(ctx context.Context, threshold int) ([]invdomain.Item, error) {
	if traced, ok := h.items.(invdomain.ContextItemRepository); ok {
		return traced.FindBelowQuantityWithContext(ctx, threshold)
	}
	return h.items.FindBelowQuantity(threshold)
}

// priceLine resolves the cash and tempo price basis for one item. An item
// with neither purchase record is priced at zero and flagged, so estimates
// carry a warning instead of a silent zero.
func (h *PlanHandler) priceLine(item invdomain.Item) (PlanLine, error) {
	line := PlanLine{
		PartNumber: item.PartNumber,
		Name:       item.Name,
		Quantity:   item.Quantity,
	}

	cash, err := h.movements.FindLatestIncomingByTerm(item.PartNumber, true)
	if err != nil {
		return line, fmt.Errorf("failed to resolve cash price for %s: %w", item.PartNumber, err)
	}
	tempo, err := h.movements.FindLatestIncomingByTerm(item.PartNumber, false)
	if err != nil {
		return line, fmt.Errorf("failed to resolve tempo price for %s: %w", item.PartNumber, err)
	}

	if cash != nil {
		line.CashPrice = cash.UnitPrice
	}
	if tempo != nil {
		line.TempoPrice = tempo.UnitPrice
	}
	if cash == nil && tempo == nil {
		line.NoCostBasis = true
	}

	return line, nil
}
