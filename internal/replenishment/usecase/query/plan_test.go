package query

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	invdomain "github.com/tokoparts/backoffice/internal/inventory/domain"
	"github.com/tokoparts/backoffice/internal/replenishment/domain"
)

type fakeItems struct {
	items []invdomain.Item
}

func (f *fakeItems) Create(item *invdomain.Item) error { return nil }

func (f *fakeItems) FindByID(id uint) (*invdomain.Item, error) {
	return nil, invdomain.ErrItemNotFound
}

func (f *fakeItems) FindByPartNumber(p string) (*invdomain.Item, error) {
	return nil, invdomain.ErrItemNotFound
}

func (f *fakeItems) FindAll(limit, offset int) ([]invdomain.Item, error) {
	return f.items, nil
}

func (f *fakeItems) FindBelowQuantity(threshold int) ([]invdomain.Item, error) {
	var out []invdomain.Item
	for _, item := range f.items {
		if item.Quantity < threshold {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeItems) Update(item *invdomain.Item) error { return nil }
func (f *fakeItems) Delete(id uint) error              { return nil }

type fakeMovements struct {
	movements []invdomain.StockMovement
}

func (f *fakeMovements) Append(movement *invdomain.StockMovement) error { return nil }
func (f *fakeMovements) FindAll(limit, offset int) ([]invdomain.StockMovement, error) {
	return f.movements, nil
}
func (f *fakeMovements) FindByPartNumber(p string, limit int) ([]invdomain.StockMovement, error) {
	return nil, nil
}

func (f *fakeMovements) FindLatestIncoming(partNumber string) (*invdomain.StockMovement, error) {
	for i := len(f.movements) - 1; i >= 0; i-- {
		if f.movements[i].PartNumber == partNumber && f.movements[i].Direction == invdomain.DirectionIn {
			movement := f.movements[i]
			return &movement, nil
		}
	}
	return nil, nil
}

func (f *fakeMovements) FindLatestIncomingByTerm(partNumber string, cash bool) (*invdomain.StockMovement, error) {
	for i := len(f.movements) - 1; i >= 0; i-- {
		movement := f.movements[i]
		if movement.PartNumber != partNumber || movement.Direction != invdomain.DirectionIn {
			continue
		}
		if movement.PaymentTerm == "" {
			continue
		}
		isCash := movement.PaymentTerm == invdomain.PaymentTermCash
		if cash == isCash {
			return &movement, nil
		}
	}
	return nil, nil
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func inMovement(part, supplier, term string, unit int64) invdomain.StockMovement {
	return invdomain.StockMovement{
		Direction:    invdomain.DirectionIn,
		PartNumber:   part,
		Quantity:     10,
		UnitPrice:    price(unit),
		Counterparty: supplier,
		Reason:       invdomain.ReasonPurchase,
		PaymentTerm:  term,
	}
}

func TestPlanGroupsLowStockBySupplier(t *testing.T) {
	items := &fakeItems{items: []invdomain.Item{
		{PartNumber: "A-1", Name: "Kampas", Quantity: 2},
		{PartNumber: "B-2", Name: "Filter", Quantity: 4},
		{PartNumber: "C-3", Name: "Busi", Quantity: 9},
	}}
	movements := &fakeMovements{movements: []invdomain.StockMovement{
		inMovement("A-1", "PT MAJU", "CASH", 5000),
		inMovement("B-2", "PT MAJU", "CASH", 8000),
		inMovement("C-3", "CV LAIN", "CASH", 2000),
	}}

	handler := NewPlanHandler(items, movements)
	plan, err := handler.Handle(context.Background(), PlanQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if plan.Threshold != DefaultThreshold {
		t.Errorf("threshold = %d, want %d", plan.Threshold, DefaultThreshold)
	}
	// C-3 sits above the threshold and stays out entirely.
	if len(plan.Suppliers) != 1 {
		t.Fatalf("suppliers = %+v, want one group", plan.Suppliers)
	}
	group := plan.Suppliers[0]
	if group.Supplier != "PT MAJU" || group.DisplayOnly {
		t.Errorf("group = %+v", group)
	}
	if len(group.Lines) != 2 || group.Lines[0].PartNumber != "A-1" || group.Lines[1].PartNumber != "B-2" {
		t.Errorf("lines = %+v, want A-1 then B-2", group.Lines)
	}
}

func TestPlanNormalizesSupplierNames(t *testing.T) {
	items := &fakeItems{items: []invdomain.Item{
		{PartNumber: "A-1", Quantity: 1},
		{PartNumber: "B-2", Quantity: 1},
	}}
	movements := &fakeMovements{movements: []invdomain.StockMovement{
		inMovement("A-1", "pt maju", "CASH", 5000),
		inMovement("B-2", "  PT MAJU ", "CASH", 8000),
	}}

	handler := NewPlanHandler(items, movements)
	plan, err := handler.Handle(context.Background(), PlanQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(plan.Suppliers) != 1 {
		t.Fatalf("suppliers = %d, want 1 after case/whitespace folding", len(plan.Suppliers))
	}
	if len(plan.Suppliers[0].Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(plan.Suppliers[0].Lines))
	}
}

func TestPlanUnknownSupplierBucketIsDisplayOnly(t *testing.T) {
	items := &fakeItems{items: []invdomain.Item{
		{PartNumber: "A-1", Quantity: 1},
	}}
	movements := &fakeMovements{}

	handler := NewPlanHandler(items, movements)
	plan, err := handler.Handle(context.Background(), PlanQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(plan.Suppliers) != 1 {
		t.Fatalf("suppliers = %d, want 1", len(plan.Suppliers))
	}
	group := plan.Suppliers[0]
	if group.Supplier != domain.SupplierUnknown || !group.DisplayOnly {
		t.Errorf("group = %+v, want display-only %s bucket", group, domain.SupplierUnknown)
	}
	if !group.Lines[0].NoCostBasis {
		t.Error("line without purchase history must carry NoCostBasis")
	}
}

func TestPlanPricesCashAndTempoIndependently(t *testing.T) {
	items := &fakeItems{items: []invdomain.Item{
		{PartNumber: "A-1", Quantity: 1},
	}}
	movements := &fakeMovements{movements: []invdomain.StockMovement{
		inMovement("A-1", "PT MAJU", "CASH", 5000),
		inMovement("A-1", "PT MAJU", "TEMPO 30", 5500),
		inMovement("A-1", "PT MAJU", "CASH", 5200),
	}}

	handler := NewPlanHandler(items, movements)
	plan, err := handler.Handle(context.Background(), PlanQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	line := plan.Suppliers[0].Lines[0]
	if !line.CashPrice.Equal(price(5200)) {
		t.Errorf("cash price = %s, want latest 5200", line.CashPrice)
	}
	if !line.TempoPrice.Equal(price(5500)) {
		t.Errorf("tempo price = %s, want 5500", line.TempoPrice)
	}
	if line.NoCostBasis {
		t.Error("NoCostBasis must be false when any purchase exists")
	}
}

func TestPlanOrderingIsDeterministic(t *testing.T) {
	items := &fakeItems{items: []invdomain.Item{
		{PartNumber: "Z-9", Quantity: 1},
		{PartNumber: "A-1", Quantity: 1},
		{PartNumber: "M-5", Quantity: 1},
	}}
	movements := &fakeMovements{movements: []invdomain.StockMovement{
		inMovement("Z-9", "CV BETA", "CASH", 100),
		inMovement("A-1", "CV ALFA", "CASH", 100),
		inMovement("M-5", "CV BETA", "CASH", 100),
	}}

	handler := NewPlanHandler(items, movements)
	for i := 0; i < 5; i++ {
		plan, err := handler.Handle(context.Background(), PlanQuery{Threshold: 5})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if plan.Suppliers[0].Supplier != "CV ALFA" || plan.Suppliers[1].Supplier != "CV BETA" {
			t.Fatalf("supplier order = %+v", plan.Suppliers)
		}
		beta := plan.Suppliers[1]
		if beta.Lines[0].PartNumber != "M-5" || beta.Lines[1].PartNumber != "Z-9" {
			t.Fatalf("line order = %+v", beta.Lines)
		}
	}
}

type tracedFakeItems struct {
	fakeItems
	ctxScans int
}

func (f *tracedFakeItems) FindByPartNumberWithContext(ctx context.Context, p string) (*invdomain.Item, error) {
	return f.FindByPartNumber(p)
}

func (f *tracedFakeItems) FindBelowQuantityWithContext(ctx context.Context, threshold int) ([]invdomain.Item, error) {
	f.ctxScans++
	return f.FindBelowQuantity(threshold)
}

func (f *tracedFakeItems) UpdateWithContext(ctx context.Context, item *invdomain.Item) error {
	return f.Update(item)
}

func TestPlanUsesContextAwareLowStockScan(t *testing.T) {
	items := &tracedFakeItems{fakeItems: fakeItems{items: []invdomain.Item{
		{PartNumber: "A-1", Quantity: 1},
	}}}
	handler := NewPlanHandler(items, &fakeMovements{})

	if _, err := handler.Handle(context.Background(), PlanQuery{}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if items.ctxScans != 1 {
		t.Errorf("traced scans = %d, want 1", items.ctxScans)
	}
}
