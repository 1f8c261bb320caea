package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/inventory/ledger"
	orderdomain "github.com/tokoparts/backoffice/internal/order/domain"
	"github.com/tokoparts/backoffice/internal/returns/domain"
)

type fakeItems struct {
	byPart map[string]*invdomain.Item
}

func newFakeItems(items ...*invdomain.Item) *fakeItems {
	f := &fakeItems{byPart: make(map[string]*invdomain.Item)}
	for _, item := range items {
		copied := *item
		f.byPart[item.PartNumber] = &copied
	}
	return f
}

func (f *fakeItems) Create(item *invdomain.Item) error { return nil }

func (f *fakeItems) FindByID(id uint) (*invdomain.Item, error) {
	return nil, invdomain.ErrItemNotFound
}

func (f *fakeItems) FindByPartNumber(partNumber string) (*invdomain.Item, error) {
	item, ok := f.byPart[partNumber]
	if !ok {
		return nil, invdomain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItems) FindAll(limit, offset int) ([]invdomain.Item, error)       { return nil, nil }
func (f *fakeItems) FindBelowQuantity(threshold int) ([]invdomain.Item, error) { return nil, nil }

func (f *fakeItems) Update(item *invdomain.Item) error {
	stored, ok := f.byPart[item.PartNumber]
	if !ok {
		return invdomain.ErrItemNotFound
	}
	if stored.Version != item.Version {
		return invdomain.ErrVersionConflict
	}
	copied := *item
	copied.Version++
	f.byPart[item.PartNumber] = &copied
	item.Version = copied.Version
	return nil
}

func (f *fakeItems) Delete(id uint) error { return nil }

func (f *fakeItems) quantity(t *testing.T, part string) int {
	t.Helper()
	item, ok := f.byPart[part]
	if !ok {
		t.Fatalf("item %s not found", part)
	}
	return item.Quantity
}

type fakeMovements struct {
	movements []invdomain.StockMovement
}

func (f *fakeMovements) Append(movement *invdomain.StockMovement) error {
	f.movements = append(f.movements, *movement)
	return nil
}

func (f *fakeMovements) FindAll(limit, offset int) ([]invdomain.StockMovement, error) {
	return f.movements, nil
}

func (f *fakeMovements) FindByPartNumber(partNumber string, limit int) ([]invdomain.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovements) FindLatestIncoming(partNumber string) (*invdomain.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovements) FindLatestIncomingByTerm(partNumber string, cash bool) (*invdomain.StockMovement, error) {
	return nil, nil
}

type fakeOrders struct {
	byID map[uint]*orderdomain.Order
}

func newFakeOrders(orders ...*orderdomain.Order) *fakeOrders {
	f := &fakeOrders{byID: make(map[uint]*orderdomain.Order)}
	for _, order := range orders {
		copied := *order
		copied.Items = append([]orderdomain.OrderItem(nil), order.Items...)
		f.byID[copied.ID] = &copied
	}
	return f
}

func (f *fakeOrders) Create(order *orderdomain.Order) error { return nil }

func (f *fakeOrders) FindByID(id uint) (*orderdomain.Order, error) {
	order, ok := f.byID[id]
	if !ok {
		return nil, orderdomain.ErrOrderNotFound
	}
	copied := *order
	copied.Items = append([]orderdomain.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (f *fakeOrders) FindAll(status string, limit, offset int) ([]orderdomain.Order, error) {
	return nil, nil
}

func (f *fakeOrders) FindGroup(customerName, tempo string) ([]orderdomain.Order, error) {
	return nil, nil
}

func (f *fakeOrders) UpdateStatus(id uint, status string, completedAt *time.Time) error { return nil }
func (f *fakeOrders) Touch(id uint) error                                               { return nil }
func (f *fakeOrders) UpdateItem(item *orderdomain.OrderItem) error                      { return nil }

func (f *fakeOrders) ReplaceItems(order *orderdomain.Order) error {
	copied := *order
	copied.Items = append([]orderdomain.OrderItem(nil), order.Items...)
	f.byID[copied.ID] = &copied
	return nil
}

type fakeReturns struct {
	records []domain.ReturnRecord
}

func (f *fakeReturns) Create(record *domain.ReturnRecord) error {
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeReturns) FindByID(id uint) (*domain.ReturnRecord, error) {
	for _, record := range f.records {
		if record.ID == id {
			copied := record
			return &copied, nil
		}
	}
	return nil, domain.ErrReturnNotFound
}

func (f *fakeReturns) FindByOrderID(orderID uint) ([]domain.ReturnRecord, error) {
	var out []domain.ReturnRecord
	for _, record := range f.records {
		if record.OrderID != nil && *record.OrderID == orderID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeReturns) FindPendingExchanges(limit, offset int) ([]domain.ReturnRecord, error) {
	var out []domain.ReturnRecord
	for _, record := range f.records {
		if record.Type == domain.TypeSupplierSwap && !record.Exchanged {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeReturns) MarkExchanged(id uint) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Exchanged = true
			return nil
		}
	}
	return domain.ErrReturnNotFound
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func processingOrder(id uint) *orderdomain.Order {
	order := &orderdomain.Order{
		ID:           id,
		CustomerName: "BUDI MOTOR",
		Tempo:        "CASH",
		Status:       orderdomain.StatusProcessing,
		Items: []orderdomain.OrderItem{
			{ID: 10, OrderID: id, ItemID: 1, PartNumber: "BP-101", Quantity: 5, Price: price(1000)},
		},
	}
	order.RecomputeTotal()
	return order
}

func TestPartialReturnShrinksLineAndRestoresStock(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 0, QtyOut: 5, Price: price(1000)})
	movements := &fakeMovements{}
	orders := newFakeOrders(processingOrder(1))
	returns := &fakeReturns{}
	handler := NewProcessReturnHandler(orders, returns, ledger.New(items, movements))

	result, err := handler.Handle(context.Background(), ProcessReturnCommand{
		OrderID: 1,
		Lines:   []ReturnLineInput{{OrderItemID: 10, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if got := items.quantity(t, "BP-101"); got != 2 {
		t.Errorf("stock = %d, want 2 restored", got)
	}
	order, _ := orders.FindByID(1)
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Errorf("line = %+v, want quantity 3", order.Items)
	}
	if result.TotalAmount != "3000.00" {
		t.Errorf("total = %s, want 3000.00", result.TotalAmount)
	}
	if result.OrderStatus != orderdomain.StatusProcessing {
		t.Errorf("status = %s, want processing unchanged", result.OrderStatus)
	}
	if len(returns.records) != 1 || returns.records[0].Quantity != 2 {
		t.Errorf("records = %+v, want one of quantity 2", returns.records)
	}
	if returns.records[0].ResultingStatus != orderdomain.StatusProcessing {
		t.Errorf("record status = %q, want processing", returns.records[0].ResultingStatus)
	}
	if len(movements.movements) != 1 || movements.movements[0].Reason != invdomain.ReasonReturn {
		t.Errorf("expected one RETUR movement, got %+v", movements.movements)
	}
}

func TestReturnQuantityCapsAtLine(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 0, QtyOut: 5, Price: price(1000)})
	orders := newFakeOrders(processingOrder(1))
	returns := &fakeReturns{}
	handler := NewProcessReturnHandler(orders, returns, ledger.New(items, &fakeMovements{}))

	result, err := handler.Handle(context.Background(), ProcessReturnCommand{
		OrderID: 1,
		Lines:   []ReturnLineInput{{OrderItemID: 10, Quantity: 99}},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if result.Lines[0].Quantity != 5 {
		t.Errorf("returned = %d, want capped at 5", result.Lines[0].Quantity)
	}
	if got := items.quantity(t, "BP-101"); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestFullReturnCancelsOrder(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 0, QtyOut: 5, Price: price(1000)})
	orders := newFakeOrders(processingOrder(1))
	returns := &fakeReturns{}
	handler := NewProcessReturnHandler(orders, returns, ledger.New(items, &fakeMovements{}))

	result, err := handler.Handle(context.Background(), ProcessReturnCommand{
		OrderID: 1,
		Lines:   []ReturnLineInput{{OrderItemID: 10, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if result.OrderStatus != orderdomain.StatusCancelled {
		t.Errorf("status = %s, want cancelled when nothing remains", result.OrderStatus)
	}
	if result.TotalAmount != "0.00" {
		t.Errorf("total = %s, want 0.00", result.TotalAmount)
	}
	order, _ := orders.FindByID(1)
	if len(order.Items) != 0 {
		t.Errorf("items = %d, want 0", len(order.Items))
	}
	if len(returns.records) != 1 || returns.records[0].ResultingStatus != orderdomain.StatusCancelled {
		t.Errorf("records = %+v, want one carrying the cancelled status", returns.records)
	}
}

func TestReturnRequiresProcessingOrCompleted(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 10, Price: price(1000)})
	order := processingOrder(1)
	order.Status = orderdomain.StatusPending
	orders := newFakeOrders(order)
	handler := NewProcessReturnHandler(orders, &fakeReturns{}, ledger.New(items, &fakeMovements{}))

	_, err := handler.Handle(context.Background(), ProcessReturnCommand{
		OrderID: 1,
		Lines:   []ReturnLineInput{{OrderItemID: 10, Quantity: 1}},
	})
	if err == nil {
		t.Fatal("return against a pending order should fail")
	}
	if items.quantity(t, "BP-101") != 10 {
		t.Error("rejected return must not move stock")
	}
}

func TestReturnSkipsUnknownLine(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 0, QtyOut: 5, Price: price(1000)})
	orders := newFakeOrders(processingOrder(1))
	handler := NewProcessReturnHandler(orders, &fakeReturns{}, ledger.New(items, &fakeMovements{}))

	result, err := handler.Handle(context.Background(), ProcessReturnCommand{
		OrderID: 1,
		Lines: []ReturnLineInput{
			{OrderItemID: 999, Quantity: 1},
			{OrderItemID: 10, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.Lines[0].Status != "skipped" || result.Lines[1].Status != "applied" {
		t.Errorf("line statuses = %+v, want skipped then applied", result.Lines)
	}
}

func TestTypedReturnRestockRestoresImmediately(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 3, QtyOut: 2, Price: price(1000)})
	returns := &fakeReturns{}
	handler := NewTypedReturnHandler(returns, ledger.New(items, &fakeMovements{}))

	record, err := handler.Handle(context.Background(), TypedReturnCommand{
		PartNumber: "BP-101",
		Quantity:   2,
		Type:       domain.TypeRestock,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if record.Type != domain.TypeRestock {
		t.Errorf("type = %s", record.Type)
	}
	if got := items.quantity(t, "BP-101"); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestTypedReturnDamagedNeverRestocks(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 3, Price: price(1000)})
	movements := &fakeMovements{}
	returns := &fakeReturns{}
	handler := NewTypedReturnHandler(returns, ledger.New(items, movements))

	if _, err := handler.Handle(context.Background(), TypedReturnCommand{
		PartNumber: "BP-101",
		Quantity:   1,
		Type:       domain.TypeDamaged,
	}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if got := items.quantity(t, "BP-101"); got != 3 {
		t.Errorf("stock = %d, want 3 untouched", got)
	}
	if len(movements.movements) != 0 {
		t.Errorf("movements = %d, want 0", len(movements.movements))
	}
	if len(returns.records) != 1 {
		t.Errorf("records = %d, want 1 (record still written)", len(returns.records))
	}
}

func TestSupplierSwapDefersRestockUntilConfirmed(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 3, QtyOut: 1, Price: price(1000)})
	returns := &fakeReturns{}
	l := ledger.New(items, &fakeMovements{})
	typed := NewTypedReturnHandler(returns, l)
	confirm := NewConfirmExchangeHandler(returns, l)
	ctx := context.Background()

	record, err := typed.Handle(ctx, TypedReturnCommand{
		PartNumber: "BP-101",
		Quantity:   1,
		Type:       domain.TypeSupplierSwap,
	})
	if err != nil {
		t.Fatalf("typed return error = %v", err)
	}
	if got := items.quantity(t, "BP-101"); got != 3 {
		t.Fatalf("stock = %d, want 3 before exchange", got)
	}

	confirmed, err := confirm.Handle(ctx, ConfirmExchangeCommand{ReturnID: record.ID})
	if err != nil {
		t.Fatalf("confirm error = %v", err)
	}
	if !confirmed.Exchanged {
		t.Error("record not marked exchanged")
	}
	if got := items.quantity(t, "BP-101"); got != 4 {
		t.Errorf("stock = %d, want 4 after exchange", got)
	}

	// Second confirmation must be rejected, not double-restock.
	_, err = confirm.Handle(ctx, ConfirmExchangeCommand{ReturnID: record.ID})
	if !errors.Is(err, domain.ErrAlreadyExchanged) {
		t.Fatalf("second confirm error = %v, want ErrAlreadyExchanged", err)
	}
	if got := items.quantity(t, "BP-101"); got != 4 {
		t.Errorf("stock = %d, want 4 unchanged", got)
	}
}

func TestConfirmExchangeRejectsOtherTypes(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 3, Price: price(1000)})
	returns := &fakeReturns{}
	l := ledger.New(items, &fakeMovements{})

	record := &domain.ReturnRecord{PartNumber: "BP-101", Quantity: 1, Type: domain.TypeDamaged}
	if err := returns.Create(record); err != nil {
		t.Fatal(err)
	}

	handler := NewConfirmExchangeHandler(returns, l)
	_, err := handler.Handle(context.Background(), ConfirmExchangeCommand{ReturnID: record.ID})
	if !errors.Is(err, domain.ErrNotExchangeable) {
		t.Fatalf("error = %v, want ErrNotExchangeable", err)
	}
}

func TestTypedReturnValidation(t *testing.T) {
	items := newFakeItems(&invdomain.Item{ID: 1, PartNumber: "BP-101", Quantity: 3, Price: price(1000)})
	handler := NewTypedReturnHandler(&fakeReturns{}, ledger.New(items, &fakeMovements{}))
	ctx := context.Background()

	if _, err := handler.Handle(ctx, TypedReturnCommand{Quantity: 1, Type: domain.TypeRestock}); err == nil {
		t.Error("empty part number should fail")
	}
	if _, err := handler.Handle(ctx, TypedReturnCommand{PartNumber: "BP-101", Quantity: 0, Type: domain.TypeRestock}); err == nil {
		t.Error("zero quantity should fail")
	}
	if _, err := handler.Handle(ctx, TypedReturnCommand{PartNumber: "BP-101", Quantity: 1, Type: "WHATEVER"}); err == nil {
		t.Error("unknown type should fail")
	}
}
