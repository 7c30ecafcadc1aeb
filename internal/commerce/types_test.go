package commerce

import (
	"testing"
	"time"
)

func TestItemCountSumsQuantities(t *testing.T) {
	cart := &Cart{Items: []LineItem{
		{ID: "item_1", Quantity: 2},
		{ID: "item_2", Quantity: 3},
	}}

	if got := cart.ItemCount(); got != 5 {
		t.Fatalf("item count = %d, want 5", got)
	}
}

func TestItemCountNilCartIsZero(t *testing.T) {
	var cart *Cart
	if got := cart.ItemCount(); got != 0 {
		t.Fatalf("item count = %d, want 0", got)
	}
}

func TestCompletedChecksTimestamp(t *testing.T) {
	now := time.Now()
	if (&Cart{}).Completed() {
		t.Fatal("open cart reported completed")
	}
	if !(&Cart{CompletedAt: &now}).Completed() {
		t.Fatal("completed cart not reported")
	}
}

func TestCheapestVariant(t *testing.T) {
	product := &Product{Variants: []Variant{
		{ID: "v1", Price: 2500},
		{ID: "v2", Price: 1200},
		{ID: "v3", Price: 1800},
	}}

	cheapest := product.CheapestVariant()
	if cheapest == nil || cheapest.ID != "v2" {
		t.Fatalf("cheapest = %+v, want v2", cheapest)
	}
}

func TestSelectedProviderIDTakesLatestSession(t *testing.T) {
	collection := &PaymentCollection{Sessions: []PaymentSession{
		{ProviderID: "pp_stripe"},
		{ProviderID: "pp_manual"},
	}}

	if got := collection.SelectedProviderID(); got != "pp_manual" {
		t.Fatalf("selected provider = %q, want pp_manual", got)
	}
	var empty *PaymentCollection
	if got := empty.SelectedProviderID(); got != "" {
		t.Fatalf("selected provider on nil = %q, want empty", got)
	}
}
