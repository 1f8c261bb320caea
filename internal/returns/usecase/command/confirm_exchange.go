package command

import (
	"context"
	"fmt"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	"github.com/tokoparts/backoffice/internal/returns/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
)

// ConfirmExchangeCommand confirms that a TUKAR_SUPPLIER return came back from
// the supplier ("sudah ditukar"), releasing the deferred restock.
type ConfirmExchangeCommand struct {
	ReturnID uint
}

// ConfirmExchangeHandler handles supplier exchange confirmations
type ConfirmExchangeHandler struct {
	returns domain.ReturnRepository
	ledger  *ledger.Ledger
}

// NewConfirmExchangeHandler creates a new confirm exchange handler
func NewConfirmExchangeHandler(returns domain.ReturnRepository, l *ledger.Ledger) *ConfirmExchangeHandler {
	return &ConfirmExchangeHandler{returns: returns, ledger: l}
}

// Handle executes the confirm exchange command
func (h *ConfirmExchangeHandler) Handle(ctx context.Context, cmd ConfirmExchangeCommand) (*domain.ReturnRecord, error) {
	if cmd.ReturnID == 0 {
		return nil, fmt.Errorf("return id is required")
	}

	record, err := h.returns.FindByID(cmd.ReturnID)
	if err != nil {
		return nil, err
	}
	if record.Type != domain.TypeSupplierSwap {
		return nil, domain.ErrNotExchangeable
	}
	if record.Exchanged {
		return nil, domain.ErrAlreadyExchanged
	}

	_, err = h.ledger.Restore(ctx, ledger.Adjustment{
		PartNumber: record.PartNumber,
		Quantity:   record.Quantity,
		Reason:     invdomain.ReasonReturn,
	})
	if err != nil {
		return nil, err
	}

	if err := h.returns.MarkExchanged(record.ID); err != nil {
		return nil, err
	}
	record.Exchanged = true

	logger.Info(ctx).
		Uint("return_id", record.ID).
		Str("part_number", record.PartNumber).
		Int("quantity", record.Quantity).
		Msg("Supplier exchange confirmed, stock restored")

	return record, nil
}
