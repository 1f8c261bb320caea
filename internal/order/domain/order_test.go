package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusProcessing, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) || IsTerminal(StatusProcessing) {
		t.Error("pending and processing are not terminal")
	}
	if !IsTerminal(StatusCompleted) || !IsTerminal(StatusCancelled) {
		t.Error("completed and cancelled are terminal")
	}
}

func TestRecomputeTotalUsesEffectivePrice(t *testing.T) {
	custom := decimal.NewFromInt(900)
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, Price: decimal.NewFromInt(1000)},
			{Quantity: 3, Price: decimal.NewFromInt(1000), CustomPrice: &custom},
		},
	}
	order.RecomputeTotal()

	want := decimal.NewFromInt(2000 + 2700)
	if !order.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want %s", order.TotalAmount, want)
	}
}

func TestCounterpartyLabelReappliesLegacySuffixes(t *testing.T) {
	order := Order{CustomerName: "BUDI MOTOR"}
	order.SetMeta(Metadata{Resi: "JX123", Shop: "TOKOPEDIA", Channel: "JNE"})

	got := order.CounterpartyLabel()
	want := "BUDI MOTOR (Resi: JX123) (Toko: TOKOPEDIA) (Via: JNE)"
	if got != want {
		t.Errorf("label = %q, want %q", got, want)
	}
}
