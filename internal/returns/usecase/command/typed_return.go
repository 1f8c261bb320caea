package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	"github.com/tokoparts/backoffice/internal/returns/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
	"github.com/tokoparts/backoffice/pkg/metrics"
)

// TypedReturnCommand is a single-item marketplace return with a disposition:
// BALIK_STOK restocks now, RUSAK never restocks, TUKAR_SUPPLIER restocks
// later when the supplier exchange is confirmed.
type TypedReturnCommand struct {
	PartNumber   string
	Quantity     int
	Type         string
	Counterparty string
	UnitPrice    decimal.Decimal
}

// TypedReturnHandler handles typed single-item returns
type TypedReturnHandler struct {
	returns domain.ReturnRepository
	ledger  *ledger.Ledger
}

// NewTypedReturnHandler creates a new typed return handler
func NewTypedReturnHandler(returns domain.ReturnRepository, l *ledger.Ledger) *TypedReturnHandler {
	return &TypedReturnHandler{returns: returns, ledger: l}
}

// Handle executes the typed return command
func (h *TypedReturnHandler) Handle(ctx context.Context, cmd TypedReturnCommand) (*domain.ReturnRecord, error) {
	if cmd.PartNumber == "" {
		return nil, fmt.Errorf("part_number is required")
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}
	if !domain.ValidType(cmd.Type) {
		return nil, fmt.Errorf("invalid return type: %s", cmd.Type)
	}

	// Only BALIK_STOK restores immediately. RUSAK is a pure record; the
	// damaged unit never re-enters stock. TUKAR_SUPPLIER waits for the
	// explicit exchange confirmation.
	if cmd.Type == domain.TypeRestock {
		_, err := h.ledger.Restore(ctx, ledger.Adjustment{
			PartNumber:   cmd.PartNumber,
			Quantity:     cmd.Quantity,
			UnitPrice:    cmd.UnitPrice,
			Counterparty: cmd.Counterparty,
			Reason:       invdomain.ReasonReturn,
		})
		if err != nil {
			return nil, err
		}
	}

	record := &domain.ReturnRecord{
		PartNumber: cmd.PartNumber,
		Quantity:   cmd.Quantity,
		Type:       cmd.Type,
	}
	if err := h.returns.Create(record); err != nil {
		return nil, fmt.Errorf("failed to record return: %w", err)
	}

	metrics.ReturnsTotal.WithLabelValues(cmd.Type).Inc()
	logger.Info(ctx).
		Str("part_number", cmd.PartNumber).
		Int("quantity", cmd.Quantity).
		Str("type", cmd.Type).
		Msg("Typed return recorded")

	return record, nil
}
