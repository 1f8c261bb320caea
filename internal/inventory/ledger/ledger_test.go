package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tokoparts/backoffice/internal/inventory/domain"
)

type memItems struct {
	byPart map[string]*domain.Item
	// conflicts forces the next N updates to lose the version race.
	conflicts int
}

func newMemItems(items ...*domain.Item) *memItems {
	m := &memItems{byPart: make(map[string]*domain.Item)}
	for _, item := range items {
		copied := *item
		m.byPart[item.PartNumber] = &copied
	}
	return m
}

func (m *memItems) Create(item *domain.Item) error {
	copied := *item
	m.byPart[item.PartNumber] = &copied
	return nil
}

func (m *memItems) FindByID(id uint) (*domain.Item, error) {
	for _, item := range m.byPart {
		if item.ID == id {
			copied := *item
			return &copied, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (m *memItems) FindByPartNumber(partNumber string) (*domain.Item, error) {
	item, ok := m.byPart[partNumber]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memItems) FindAll(limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	for _, item := range m.byPart {
		items = append(items, *item)
	}
	return items, nil
}

func (m *memItems) FindBelowQuantity(threshold int) ([]domain.Item, error) {
	var items []domain.Item
	for _, item := range m.byPart {
		if item.Quantity < threshold {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *memItems) Update(item *domain.Item) error {
	if m.conflicts > 0 {
		m.conflicts--
		return domain.ErrVersionConflict
	}
	stored, ok := m.byPart[item.PartNumber]
	if !ok {
		return domain.ErrItemNotFound
	}
	if stored.Version != item.Version {
		return domain.ErrVersionConflict
	}
	copied := *item
	copied.Version++
	m.byPart[item.PartNumber] = &copied
	item.Version = copied.Version
	return nil
}

func (m *memItems) Delete(id uint) error { return nil }

type memMovements struct {
	movements []domain.StockMovement
}

func (m *memMovements) Append(movement *domain.StockMovement) error {
	movement.ID = uint(len(m.movements) + 1)
	m.movements = append(m.movements, *movement)
	return nil
}

func (m *memMovements) FindAll(limit, offset int) ([]domain.StockMovement, error) {
	return m.movements, nil
}

func (m *memMovements) FindByPartNumber(partNumber string, limit int) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, movement := range m.movements {
		if movement.PartNumber == partNumber {
			out = append(out, movement)
		}
	}
	return out, nil
}

func (m *memMovements) FindLatestIncoming(partNumber string) (*domain.StockMovement, error) {
	for i := len(m.movements) - 1; i >= 0; i-- {
		if m.movements[i].PartNumber == partNumber && m.movements[i].Direction == domain.DirectionIn {
			movement := m.movements[i]
			return &movement, nil
		}
	}
	return nil, nil
}

func (m *memMovements) FindLatestIncomingByTerm(partNumber string, cash bool) (*domain.StockMovement, error) {
	for i := len(m.movements) - 1; i >= 0; i-- {
		movement := m.movements[i]
		if movement.PartNumber != partNumber || movement.Direction != domain.DirectionIn {
			continue
		}
		isCash := movement.PaymentTerm == domain.PaymentTermCash
		if cash == isCash && movement.PaymentTerm != "" {
			return &movement, nil
		}
	}
	return nil, nil
}

// tracedItems adds the context-aware methods on top of memItems and counts
// how often they are taken.
type tracedItems struct {
	*memItems
	ctxFinds   int
	ctxUpdates int
}

func (t *tracedItems) FindByPartNumberWithContext(ctx context.Context, partNumber string) (*domain.Item, error) {
	t.ctxFinds++
	return t.memItems.FindByPartNumber(partNumber)
}

func (t *tracedItems) FindBelowQuantityWithContext(ctx context.Context, threshold int) ([]domain.Item, error) {
	return t.memItems.FindBelowQuantity(threshold)
}

func (t *tracedItems) UpdateWithContext(ctx context.Context, item *domain.Item) error {
	t.ctxUpdates++
	return t.memItems.Update(item)
}

func testItem(part string, qty int) *domain.Item {
	return &domain.Item{ID: 1, PartNumber: part, Name: "Kampas Rem", Quantity: qty}
}

func TestReceiveIncreasesQuantityAndQtyIn(t *testing.T) {
	items := newMemItems(testItem("BP-101", 3))
	movements := &memMovements{}
	l := New(items, movements)

	item, err := l.Receive(context.Background(), Adjustment{
		PartNumber:   "BP-101",
		Quantity:     7,
		UnitPrice:    decimal.NewFromInt(15000),
		Counterparty: "PT MAJU",
		Reason:       domain.ReasonPurchase,
		PaymentTerm:  domain.PaymentTermCash,
	})
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("Quantity = %d, want 10", item.Quantity)
	}
	if item.QtyIn != 7 {
		t.Errorf("QtyIn = %d, want 7", item.QtyIn)
	}

	if len(movements.movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements.movements))
	}
	movement := movements.movements[0]
	if movement.Direction != domain.DirectionIn {
		t.Errorf("Direction = %q, want IN", movement.Direction)
	}
	if movement.Reason != domain.ReasonPurchase {
		t.Errorf("Reason = %q, want %q", movement.Reason, domain.ReasonPurchase)
	}
}

func TestIssueDecrementsQuantity(t *testing.T) {
	items := newMemItems(testItem("BP-101", 10))
	movements := &memMovements{}
	l := New(items, movements)

	item, err := l.Issue(context.Background(), Adjustment{
		PartNumber: "BP-101",
		Quantity:   3,
		Reason:     domain.ReasonSale,
	})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if item.Quantity != 7 {
		t.Errorf("Quantity = %d, want 7", item.Quantity)
	}
	if item.QtyOut != 3 {
		t.Errorf("QtyOut = %d, want 3", item.QtyOut)
	}
	if movements.movements[0].Direction != domain.DirectionOut {
		t.Errorf("Direction = %q, want OUT", movements.movements[0].Direction)
	}
}

func TestIssueClampsQuantityAtZero(t *testing.T) {
	items := newMemItems(testItem("BP-101", 3))
	movements := &memMovements{}
	l := New(items, movements)

	item, err := l.Issue(context.Background(), Adjustment{
		PartNumber: "BP-101",
		Quantity:   5,
		Reason:     domain.ReasonSale,
	})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0 (clamped)", item.Quantity)
	}
	// The lifetime counter still records the full requested amount.
	if item.QtyOut != 5 {
		t.Errorf("QtyOut = %d, want 5", item.QtyOut)
	}
	if len(movements.movements) != 1 {
		t.Errorf("movements = %d, want 1", len(movements.movements))
	}
}

func TestRestoreGrowsQuantityAndFloorsQtyOut(t *testing.T) {
	item := testItem("BP-101", 2)
	item.QtyOut = 1
	items := newMemItems(item)
	movements := &memMovements{}
	l := New(items, movements)

	got, err := l.Restore(context.Background(), Adjustment{
		PartNumber: "BP-101",
		Quantity:   3,
		Reason:     domain.ReasonReturn,
	})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", got.Quantity)
	}
	if got.QtyOut != 0 {
		t.Errorf("QtyOut = %d, want 0 (floored)", got.QtyOut)
	}
	if movements.movements[0].Direction != domain.DirectionIn {
		t.Errorf("Direction = %q, want IN", movements.movements[0].Direction)
	}
}

func TestIssueRetriesOnVersionConflict(t *testing.T) {
	items := newMemItems(testItem("BP-101", 10))
	items.conflicts = 2
	movements := &memMovements{}
	l := New(items, movements)

	item, err := l.Issue(context.Background(), Adjustment{
		PartNumber: "BP-101",
		Quantity:   4,
		Reason:     domain.ReasonSale,
	})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if item.Quantity != 6 {
		t.Errorf("Quantity = %d, want 6", item.Quantity)
	}
}

func TestIssueGivesUpAfterMaxRetries(t *testing.T) {
	items := newMemItems(testItem("BP-101", 10))
	items.conflicts = maxRetries
	movements := &memMovements{}
	l := New(items, movements)

	_, err := l.Issue(context.Background(), Adjustment{
		PartNumber: "BP-101",
		Quantity:   4,
		Reason:     domain.ReasonSale,
	})
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("Issue() error = %v, want ErrVersionConflict", err)
	}
	if len(movements.movements) != 0 {
		t.Errorf("movements = %d, want 0 after failed adjustment", len(movements.movements))
	}
}

func TestAdjustmentValidation(t *testing.T) {
	l := New(newMemItems(), &memMovements{})

	if _, err := l.Receive(context.Background(), Adjustment{Quantity: 1}); err == nil {
		t.Error("Receive() with empty part number should fail")
	}
	if _, err := l.Issue(context.Background(), Adjustment{PartNumber: "BP-101", Quantity: 0}); err == nil {
		t.Error("Issue() with zero quantity should fail")
	}
	if _, err := l.Restore(context.Background(), Adjustment{PartNumber: "BP-101", Quantity: -2}); err == nil {
		t.Error("Restore() with negative quantity should fail")
	}
}

func TestUnknownPartSurfacesNotFound(t *testing.T) {
	l := New(newMemItems(), &memMovements{})

	_, err := l.Issue(context.Background(), Adjustment{PartNumber: "NOPE", Quantity: 1})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("Issue() error = %v, want ErrItemNotFound", err)
	}
}

func TestLifetimeCountersStayConsistent(t *testing.T) {
	items := newMemItems(testItem("BP-101", 0))
	movements := &memMovements{}
	l := New(items, movements)
	ctx := context.Background()

	if _, err := l.Receive(ctx, Adjustment{PartNumber: "BP-101", Quantity: 10, Reason: domain.ReasonPurchase}); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if _, err := l.Issue(ctx, Adjustment{PartNumber: "BP-101", Quantity: 3, Reason: domain.ReasonSale}); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	item, err := l.Restore(ctx, Adjustment{PartNumber: "BP-101", Quantity: 2, Reason: domain.ReasonReturn})
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if item.Quantity != 9 {
		t.Errorf("Quantity = %d, want 9", item.Quantity)
	}
	if item.QtyIn != 10 {
		t.Errorf("QtyIn = %d, want 10", item.QtyIn)
	}
	if item.QtyOut != 1 {
		t.Errorf("QtyOut = %d, want 1", item.QtyOut)
	}
	if len(movements.movements) != 3 {
		t.Errorf("movements = %d, want 3", len(movements.movements))
	}
}

func TestApplyPrefersContextAwareRepository(t *testing.T) {
	items := &tracedItems{memItems: newMemItems(testItem("BP-101", 3))}
	movements := &memMovements{}
	l := New(items, movements)

	if _, err := l.Receive(context.Background(), Adjustment{
		PartNumber: "BP-101",
		Quantity:   2,
		Reason:     domain.ReasonPurchase,
	}); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}

	if items.ctxFinds != 1 || items.ctxUpdates != 1 {
		t.Errorf("traced reads/writes = %d/%d, want 1/1", items.ctxFinds, items.ctxUpdates)
	}
}
