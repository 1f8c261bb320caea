package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
)

// ReceiveStockCommand records a goods receipt (barang masuk) from a supplier.
// This is the only path by which replenishment stock enters the ledger; the
// replenishment planner itself never writes stock.
type ReceiveStockCommand struct {
	PartNumber  string
	Quantity    int
	UnitPrice   decimal.Decimal
	Supplier    string
	PaymentTerm string
}

// ReceiveStockHandler handles receive stock command
type ReceiveStockHandler struct {
	ledger *ledger.Ledger
}

// NewReceiveStockHandler creates a new receive stock handler
func NewReceiveStockHandler(l *ledger.Ledger) *ReceiveStockHandler {
	return &ReceiveStockHandler{ledger: l}
}

// Handle executes the receive stock command
func (h *ReceiveStockHandler) Handle(ctx context.Context, cmd ReceiveStockCommand) (*domain.Item, error) {
	if cmd.Supplier == "" {
		return nil, fmt.Errorf("supplier is required")
	}

	term := cmd.PaymentTerm
	if term == "" {
		term = domain.PaymentTermCash
	}

	item, err := h.ledger.Receive(ctx, ledger.Adjustment{
		PartNumber:   cmd.PartNumber,
		Quantity:     cmd.Quantity,
		UnitPrice:    cmd.UnitPrice,
		Counterparty: cmd.Supplier,
		Reason:       domain.ReasonPurchase,
		PaymentTerm:  term,
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}
