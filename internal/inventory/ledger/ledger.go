package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/pkg/logger"
	"github.com/tokoparts/backoffice/pkg/metrics"
)

// maxRetries bounds optimistic-concurrency retries on a single adjustment.
const maxRetries = 3

// Adjustment describes one ledger mutation. Quantity is always positive; the
// operation determines the direction.
type Adjustment struct {
	PartNumber   string
	Quantity     int
	UnitPrice    decimal.Decimal
	Counterparty string
	Reason       string
	PaymentTerm  string
}

// Ledger applies read-modify-write adjustments to inventory rows and appends
// one movement record per adjustment. Quantity and QtyOut never go negative:
// decrements clamp at zero and the discrepancy is logged, not failed.
type Ledger struct {
	items     domain.ItemRepository
	movements domain.MovementRepository
}

func New(items domain.ItemRepository, movements domain.MovementRepository) *Ledger {
	return &Ledger{items: items, movements: movements}
}

// Receive records inbound stock (barang masuk): quantity and the lifetime
// QtyIn counter both grow by the adjustment quantity.
func (l *Ledger) Receive(ctx context.Context, adj Adjustment) (*domain.Item, error) {
	if err := validate(adj); err != nil {
		return nil, err
	}
	item, err := l.apply(ctx, adj.PartNumber, func(item *domain.Item) {
		item.Quantity += adj.Quantity
		item.QtyIn += int64(adj.Quantity)
	})
	if err != nil {
		return nil, err
	}
	if err := l.append(ctx, domain.DirectionIn, adj); err != nil {
		return nil, err
	}
	return item, nil
}

// Issue records outbound stock (barang keluar). Quantity is decremented but
// floored at zero; QtyOut grows by the full adjustment quantity either way.
func (l *Ledger) Issue(ctx context.Context, adj Adjustment) (*domain.Item, error) {
	if err := validate(adj); err != nil {
		return nil, err
	}
	item, err := l.apply(ctx, adj.PartNumber, func(item *domain.Item) {
		remaining := item.Quantity - adj.Quantity
		if remaining < 0 {
			metrics.LedgerClampsTotal.Inc()
			logger.Warn(ctx).
				Str("part_number", item.PartNumber).
				Int("on_hand", item.Quantity).
				Int("requested", adj.Quantity).
				Msg("Stock decrement clamped at zero")
			remaining = 0
		}
		item.Quantity = remaining
		item.QtyOut += int64(adj.Quantity)
	})
	if err != nil {
		return nil, err
	}
	if err := l.append(ctx, domain.DirectionOut, adj); err != nil {
		return nil, err
	}
	return item, nil
}

// Restore reverses an earlier issue for a return: quantity grows back and the
// lifetime QtyOut counter shrinks, floored at zero.
func (l *Ledger) Restore(ctx context.Context, adj Adjustment) (*domain.Item, error) {
	if err := validate(adj); err != nil {
		return nil, err
	}
	item, err := l.apply(ctx, adj.PartNumber, func(item *domain.Item) {
		item.Quantity += adj.Quantity
		out := item.QtyOut - int64(adj.Quantity)
		if out < 0 {
			metrics.LedgerClampsTotal.Inc()
			logger.Warn(ctx).
				Str("part_number", item.PartNumber).
				Int64("qty_out", item.QtyOut).
				Int("requested", adj.Quantity).
				Msg("QtyOut decrement clamped at zero")
			out = 0
		}
		item.QtyOut = out
	})
	if err != nil {
		return nil, err
	}
	if err := l.append(ctx, domain.DirectionIn, adj); err != nil {
		return nil, err
	}
	return item, nil
}

// apply runs one read-modify-write cycle with bounded retries on version
// conflicts. Exhausted retries surface ErrVersionConflict to the caller.
func (l *Ledger) apply(ctx context.Context, partNumber string, mutate func(*domain.Item)) (*domain.Item, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		item, err := l.find(ctx, partNumber)
		if err != nil {
			return nil, err
		}

		mutate(item)

		err = l.update(ctx, item)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}

		metrics.VersionConflictsTotal.Inc()
		logger.Warn(ctx).
			Str("part_number", partNumber).
			Int("attempt", attempt+1).
			Msg("Ledger write lost a race, retrying")
		lastErr = err
	}
	return nil, fmt.Errorf("ledger adjustment for %s: %w", partNumber, lastErr)
}

// find and update prefer the context-aware repository methods when the
// configured repository has them, so every read-modify-write attempt lands
// in the request trace.
func (l *Ledger) find(ctx context.Context, partNumber string) (*domain.Item, error) {
	if traced, ok := l.items.(domain.ContextItemRepository); ok {
		return traced.FindByPartNumberWithContext(ctx, partNumber)
	}
	return l.items.FindByPartNumber(partNumber)
}

func (l *Ledger) update(ctx context.Context, item *domain.Item) error {
	if traced, ok := l.items.(domain.ContextItemRepository); ok {
		return traced.UpdateWithContext(ctx, item)
	}
	return l.items.Update(item)
}

func (l *Ledger) append(ctx context.Context, direction string, adj Adjustment) error {
	movement := &domain.StockMovement{
		Direction:    direction,
		PartNumber:   adj.PartNumber,
		Quantity:     adj.Quantity,
		UnitPrice:    adj.UnitPrice,
		Counterparty: adj.Counterparty,
		Reason:       adj.Reason,
		PaymentTerm:  adj.PaymentTerm,
	}
	if err := l.movements.Append(movement); err != nil {
		return fmt.Errorf("failed to append %s movement for %s: %w", direction, adj.PartNumber, err)
	}
	metrics.StockMovementsTotal.WithLabelValues(direction).Inc()
	return nil
}

func validate(adj Adjustment) error {
	if adj.PartNumber == "" {
		return fmt.Errorf("part_number is required")
	}
	if adj.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than 0")
	}
	return nil
}
