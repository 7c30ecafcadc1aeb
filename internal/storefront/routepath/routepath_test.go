package routepath

import "testing"

func TestProductEscapesHandle(t *testing.T) {
	got := Product("blue shirt")
	if got != "/products/blue%20shirt" {
		t.Fatalf("Product = %q, want %q", got, "/products/blue%20shirt")
	}
}

func TestCartItemTrimsID(t *testing.T) {
	got := CartItem(" item_1 ")
	if got != "/cart/items/item_1" {
		t.Fatalf("CartItem = %q, want %q", got, "/cart/items/item_1")
	}
}

func TestSearchWithQuery(t *testing.T) {
	got := SearchWithQuery("black mug")
	if got != "/search?q=black+mug" {
		t.Fatalf("SearchWithQuery = %q, want %q", got, "/search?q=black+mug")
	}
}

func TestSearchWithEmptyQuery(t *testing.T) {
	if got := SearchWithQuery("  "); got != Search {
		t.Fatalf("SearchWithQuery = %q, want %q", got, Search)
	}
}
