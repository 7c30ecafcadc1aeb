package storefront

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidegoods/storefront/internal/commerce"
	"github.com/tidegoods/storefront/internal/storefront/htmx"
	"github.com/tidegoods/storefront/internal/storefront/templates"
)

const cartMutationError = "Could not update your cart. Please try again."

// renderCartPanel writes the cart panel fragment for the session's current
// snapshot.
func (s *Server) renderCartPanel(w http.ResponseWriter, r *http.Request, sess *session) {
	view := s.cartView(sess.store.Snapshot(), sess.takeCartError())
	if err := templates.CartPanel(view).Render(r.Context(), w); err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
	}
}

// handleCartPanel opens the cart dialog and renders it. Re-fetching the panel
// also dismisses any inline cart error. Direct navigation gets the panel
// inside the full layout instead of a bare fragment.
func (s *Server) handleCartPanel(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	sess.clearCartError()
	sess.store.OpenCart(r.Header.Get("HX-Trigger"))
	if !htmx.IsFragmentRequest(r) {
		view := s.cartView(sess.store.Snapshot(), sess.takeCartError())
		s.renderPage(w, r, sess, "Cart", templates.CartPanel(view))
		return
	}
	s.renderCartPanel(w, r, sess)
}

func (s *Server) handleCartClose(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	sess.store.CloseCart()
	w.Header().Set("HX-Trigger", "cart:closed")
	s.renderCartPanel(w, r, sess)
}

// activeCart returns the session's cart, creating one in the sales region
// when the session has none yet.
func (s *Server) activeCart(ctx context.Context, sess *session) (*commerce.Cart, error) {
	if cart := sess.store.Cart(); cart != nil {
		return cart, nil
	}
	region, err := s.resolveRegion(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := s.commerce.CreateCart(ctx, region.ID)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	sess.store.SetCart(ctx, cart)
	return cart, nil
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, sess, http.StatusBadRequest, err)
		return
	}
	variantID := strings.TrimSpace(r.PostFormValue("variant_id"))
	if variantID == "" {
		s.renderError(w, r, sess, http.StatusBadRequest, fmt.Errorf("add to cart without variant"))
		return
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	cart, err := s.activeCart(r.Context(), sess)
	if err != nil {
		sess.setCartError(cartMutationError)
		sess.store.OpenCart(r.Header.Get("HX-Trigger"))
		s.renderCartPanel(w, r, sess)
		return
	}

	mutateErr := sess.store.Mutate(r.Context(), "", "Added to cart", func(ctx context.Context) (*commerce.Cart, error) {
		return s.commerce.AddLineItem(ctx, cart.ID, variantID, quantity)
	})
	if mutateErr != nil {
		sess.setCartError(cartMutationError)
	} else {
		sess.clearCartError()
	}
	sess.store.OpenCart(r.Header.Get("HX-Trigger"))
	s.renderCartPanel(w, r, sess)
}

// handleCartItemUpdate adjusts a line quantity. Decrementing the last unit
// removes the line instead of writing a zero quantity.
func (s *Server) handleCartItemUpdate(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, sess, http.StatusBadRequest, err)
		return
	}
	itemID := r.PathValue("itemID")
	op := strings.TrimSpace(r.PostFormValue("op"))

	cart := sess.store.Cart()
	item := cart.FindItem(itemID)
	if item == nil {
		sess.setCartError(cartMutationError)
		s.renderCartPanel(w, r, sess)
		return
	}

	var mutateErr error
	switch op {
	case "increment":
		quantity := item.Quantity + 1
		mutateErr = sess.store.Mutate(r.Context(), itemID, "Cart updated", func(ctx context.Context) (*commerce.Cart, error) {
			return s.commerce.UpdateLineItem(ctx, cart.ID, itemID, quantity)
		})
	case "decrement":
		if item.Quantity <= 1 {
			mutateErr = sess.store.Mutate(r.Context(), itemID, "Removed from cart", func(ctx context.Context) (*commerce.Cart, error) {
				return s.commerce.DeleteLineItem(ctx, cart.ID, itemID)
			})
		} else {
			quantity := item.Quantity - 1
			mutateErr = sess.store.Mutate(r.Context(), itemID, "Cart updated", func(ctx context.Context) (*commerce.Cart, error) {
				return s.commerce.UpdateLineItem(ctx, cart.ID, itemID, quantity)
			})
		}
	default:
		s.renderError(w, r, sess, http.StatusBadRequest, fmt.Errorf("unknown cart operation %q", op))
		return
	}

	if mutateErr != nil {
		sess.setCartError(cartMutationError)
	} else {
		sess.clearCartError()
	}
	s.renderCartPanel(w, r, sess)
}

func (s *Server) handleCartItemRemove(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	itemID := r.PathValue("itemID")
	cart := sess.store.Cart()
	if cart.FindItem(itemID) == nil {
		sess.setCartError(cartMutationError)
		s.renderCartPanel(w, r, sess)
		return
	}

	mutateErr := sess.store.Mutate(r.Context(), itemID, "Removed from cart", func(ctx context.Context) (*commerce.Cart, error) {
		return s.commerce.DeleteLineItem(ctx, cart.ID, itemID)
	})
	if mutateErr != nil {
		sess.setCartError(cartMutationError)
	} else {
		sess.clearCartError()
	}
	s.renderCartPanel(w, r, sess)
}
