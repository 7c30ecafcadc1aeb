package cartstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tidegoods/storefront/internal/commerce"
	"github.com/tidegoods/storefront/internal/platform/money"
	"golang.org/x/text/language"
)

type fakeIDStorage struct {
	mu     sync.Mutex
	cartID string
	getErr error
}

func (f *fakeIDStorage) Get(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.cartID, nil
}

func (f *fakeIDStorage) Set(ctx context.Context, cartID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartID = cartID
	return nil
}

func (f *fakeIDStorage) Delete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartID = ""
	return nil
}

func (f *fakeIDStorage) stored() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cartID
}

func newTestStore(ids IDStorage) *Store {
	return New(Config{
		IDStorage:     ids,
		Formatter:     money.NewFormatter(language.English),
		AnnounceDelay: 20 * time.Millisecond,
	})
}

func testCart() *commerce.Cart {
	return &commerce.Cart{
		ID:           "cart_1",
		CurrencyCode: "usd",
		Items: []commerce.LineItem{
			{ID: "item_1", Title: "Tide Tee", Quantity: 2, UnitPrice: 1500},
			{ID: "item_2", Title: "Reef Mug", Quantity: 1, UnitPrice: 900},
		},
		Total: 3900,
	}
}

func TestSetCartPersistsIdentifier(t *testing.T) {
	ids := &fakeIDStorage{}
	store := newTestStore(ids)

	store.SetCart(context.Background(), testCart())

	if ids.stored() != "cart_1" {
		t.Fatalf("persisted id = %q, want %q", ids.stored(), "cart_1")
	}
	if store.ItemCount() != 3 {
		t.Fatalf("item count = %d, want 3", store.ItemCount())
	}
}

func TestSetNilCartKeepsPersistedIdentifier(t *testing.T) {
	ids := &fakeIDStorage{}
	store := newTestStore(ids)
	store.SetCart(context.Background(), testCart())

	store.SetCart(context.Background(), nil)

	if store.Cart() != nil {
		t.Fatal("expected snapshot cleared")
	}
	if ids.stored() != "cart_1" {
		t.Fatalf("persisted id = %q, want it kept", ids.stored())
	}
	if store.ItemCount() != 0 {
		t.Fatalf("item count = %d, want 0", store.ItemCount())
	}
}

func TestClearCartDiscardsIdentifier(t *testing.T) {
	ids := &fakeIDStorage{}
	store := newTestStore(ids)
	store.SetCart(context.Background(), testCart())

	store.ClearCart(context.Background())

	if store.Cart() != nil {
		t.Fatal("expected snapshot cleared")
	}
	if ids.stored() != "" {
		t.Fatalf("persisted id = %q, want discarded", ids.stored())
	}
}

func TestInitializeAdoptsOpenCart(t *testing.T) {
	ids := &fakeIDStorage{cartID: "cart_1"}
	store := newTestStore(ids)

	store.Initialize(context.Background(), func(ctx context.Context, cartID string) (*commerce.Cart, error) {
		if cartID != "cart_1" {
			t.Fatalf("fetch cart id = %q, want cart_1", cartID)
		}
		return testCart(), nil
	})

	if store.Cart() == nil || store.Cart().ID != "cart_1" {
		t.Fatal("expected cart adopted")
	}
}

func TestInitializeDiscardsCompletedCart(t *testing.T) {
	ids := &fakeIDStorage{cartID: "cart_1"}
	store := newTestStore(ids)
	completedAt := time.Now()

	store.Initialize(context.Background(), func(ctx context.Context, cartID string) (*commerce.Cart, error) {
		cart := testCart()
		cart.CompletedAt = &completedAt
		return cart, nil
	})

	if store.Cart() != nil {
		t.Fatal("completed cart must not be adopted")
	}
	if ids.stored() != "" {
		t.Fatalf("persisted id = %q, want discarded", ids.stored())
	}
}

func TestInitializeDiscardsIdentifierOnFetchFailure(t *testing.T) {
	ids := &fakeIDStorage{cartID: "cart_gone"}
	store := newTestStore(ids)

	store.Initialize(context.Background(), func(ctx context.Context, cartID string) (*commerce.Cart, error) {
		return nil, errors.New("cart not found")
	})

	if store.Cart() != nil {
		t.Fatal("expected no cart adopted")
	}
	if ids.stored() != "" {
		t.Fatalf("persisted id = %q, want discarded", ids.stored())
	}
}

func TestInitializeWithoutIdentifierDoesNothing(t *testing.T) {
	ids := &fakeIDStorage{}
	store := newTestStore(ids)
	called := false

	store.Initialize(context.Background(), func(ctx context.Context, cartID string) (*commerce.Cart, error) {
		called = true
		return nil, nil
	})

	if called {
		t.Fatal("fetch must not run without a persisted identifier")
	}
}

func TestOpenCloseCartTracksFocusReturn(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})

	store.OpenCart("cart-button")
	if !store.IsOpen() {
		t.Fatal("expected cart open")
	}

	target := store.CloseCart()
	if store.IsOpen() {
		t.Fatal("expected cart closed")
	}
	if target != "cart-button" {
		t.Fatalf("focus return = %q, want %q", target, "cart-button")
	}
}

func TestAnnounceSelfClears(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})

	store.Announce("Added to cart")
	if store.Announcement() != "Added to cart" {
		t.Fatalf("announcement = %q, want set", store.Announcement())
	}

	deadline := time.After(time.Second)
	for store.Announcement() != "" {
		select {
		case <-deadline:
			t.Fatal("announcement did not clear")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestAnnounceSupersedesPendingTimer(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})

	store.Announce("first")
	store.Announce("second")

	if store.Announcement() != "second" {
		t.Fatalf("announcement = %q, want %q", store.Announcement(), "second")
	}
}

func TestSubscribeNotifiedOnChange(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})
	var mu sync.Mutex
	var got []int

	unsubscribe := store.Subscribe(func(snapshot Snapshot) {
		mu.Lock()
		got = append(got, snapshot.ItemCount)
		mu.Unlock()
	})

	store.SetCart(context.Background(), testCart())

	mu.Lock()
	seen := len(got) > 0 && got[len(got)-1] == 3
	mu.Unlock()
	if !seen {
		t.Fatalf("subscriber saw %v, want final item count 3", got)
	}

	unsubscribe()
	mu.Lock()
	before := len(got)
	mu.Unlock()

	store.SetCart(context.Background(), nil)

	mu.Lock()
	after := len(got)
	mu.Unlock()
	if after != before {
		t.Fatal("unsubscribed callback still invoked")
	}
}

func TestMutateFailureClearsUpdatingOnly(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})
	store.SetCart(context.Background(), testCart())

	err := store.Mutate(context.Background(), "item_1", "Quantity updated", func(ctx context.Context) (*commerce.Cart, error) {
		if !store.ItemUpdating("item_1") {
			t.Fatal("item must be marked updating during mutation")
		}
		return nil, errors.New("backend unavailable")
	})
	if err == nil {
		t.Fatal("expected mutation error")
	}

	if store.ItemUpdating("item_1") {
		t.Fatal("updating flag must clear on failure")
	}
	if store.Cart() == nil || store.Cart().ItemCount() != 3 {
		t.Fatal("failed mutation must not revert the snapshot")
	}
}

func TestMutateSuccessReplacesSnapshotAndAnnounces(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})
	store.SetCart(context.Background(), testCart())

	updated := testCart()
	updated.Items[0].Quantity = 3
	updated.Total = 5400

	err := store.Mutate(context.Background(), "item_1", "Quantity updated", func(ctx context.Context) (*commerce.Cart, error) {
		return updated, nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	if store.ItemCount() != 4 {
		t.Fatalf("item count = %d, want 4", store.ItemCount())
	}
	if store.Announcement() != "Quantity updated" {
		t.Fatalf("announcement = %q, want %q", store.Announcement(), "Quantity updated")
	}
	if store.ItemUpdating("item_1") {
		t.Fatal("updating flag must clear on success")
	}
}

func TestFormattedTotal(t *testing.T) {
	store := newTestStore(&fakeIDStorage{})

	if got := store.FormattedTotal(); got != "" {
		t.Fatalf("formatted total without cart = %q, want empty", got)
	}

	store.SetCart(context.Background(), testCart())
	got := store.FormattedTotal()
	if got == "" {
		t.Fatal("expected formatted total for cart")
	}
}
