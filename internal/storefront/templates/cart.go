package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// CartItemView is the render model for one cart line.
type CartItemView struct {
	ID                 string
	Title              string
	VariantTitle       string
	ThumbnailURL       string
	Quantity           int
	FormattedUnitPrice string
	FormattedTotal     string
	Updating           bool
}

// CartView is the render model for the cart panel.
type CartView struct {
	Open           bool
	Loading        bool
	Items          []CartItemView
	ItemCount      int
	FormattedTotal string
	Announcement   string
	Error          string
}

// CartPanel renders the slide-over cart dialog.
//
// The dialog is only emitted when the cart is open; a closed cart renders an
// empty mount so a fragment swap removes the panel from the page.
func CartPanel(view CartView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !view.Open {
			return writef(w, "<div id=\"cart-panel-closed\" hidden></div>")
		}
		if err := writef(w, "<section id=\"cart-panel\" class=\"cart-panel\" role=\"dialog\" aria-modal=\"true\" aria-label=\"Shopping cart\" tabindex=\"-1\" data-close-on-escape=\"true\">"); err != nil {
			return err
		}
		if err := writef(w, "<header class=\"cart-panel-header\"><h2>Cart</h2><button type=\"button\" class=\"cart-close\" aria-label=\"Close cart\" hx-post=\"%s/close\" hx-target=\"#cart-root\" hx-swap=\"innerHTML\">&times;</button></header>", routepath.Cart); err != nil {
			return err
		}
		if err := cartAnnouncement(view.Announcement).Render(ctx, w); err != nil {
			return err
		}
		if err := cartError(view.Error).Render(ctx, w); err != nil {
			return err
		}
		if view.Loading {
			if err := writef(w, "<p class=\"cart-loading\" role=\"status\">Loading your cart&hellip;</p></section>"); err != nil {
				return err
			}
			return nil
		}
		if len(view.Items) == 0 {
			if err := writef(w, "<p class=\"cart-empty\">Your cart is empty.</p></section>"); err != nil {
				return err
			}
			return nil
		}
		if err := writef(w, "<ul class=\"cart-items\">"); err != nil {
			return err
		}
		for _, item := range view.Items {
			if err := cartItemRow(item).Render(ctx, w); err != nil {
				return err
			}
		}
		if err := writef(w, "</ul><footer class=\"cart-panel-footer\"><p class=\"cart-total\">Total: <strong>"); err != nil {
			return err
		}
		if err := writeEscaped(w, view.FormattedTotal); err != nil {
			return err
		}
		if err := writef(w, "</strong></p><a class=\"button checkout-link\" href=\"%s\">Checkout</a></footer>", routepath.Checkout); err != nil {
			return err
		}
		return writef(w, "</section>")
	})
}

func cartItemRow(item CartItemView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		disabled := ""
		if item.Updating {
			disabled = " disabled"
		}
		itemPath := routepath.CartItem(item.ID)
		if err := writef(w, "<li class=\"cart-item\" data-item-id=\"%s\">", templ.EscapeString(item.ID)); err != nil {
			return err
		}
		if item.ThumbnailURL != "" {
			if err := writef(w, "<img src=\"%s\" alt=\"\" class=\"cart-item-thumb\">", templ.EscapeString(item.ThumbnailURL)); err != nil {
				return err
			}
		}
		if err := writef(w, "<div class=\"cart-item-body\"><p class=\"cart-item-title\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, item.Title); err != nil {
			return err
		}
		if err := writef(w, "</p>"); err != nil {
			return err
		}
		if item.VariantTitle != "" {
			if err := writef(w, "<p class=\"cart-item-variant\">"); err != nil {
				return err
			}
			if err := writeEscaped(w, item.VariantTitle); err != nil {
				return err
			}
			if err := writef(w, "</p>"); err != nil {
				return err
			}
		}
		if err := writef(w, "<div class=\"cart-item-qty\"><button type=\"button\" aria-label=\"Decrease quantity\" hx-post=\"%s\" hx-vals='{\"op\":\"decrement\"}' hx-target=\"#cart-root\" hx-swap=\"innerHTML\"%s>&minus;</button><span aria-live=\"off\">%s</span><button type=\"button\" aria-label=\"Increase quantity\" hx-post=\"%s\" hx-vals='{\"op\":\"increment\"}' hx-target=\"#cart-root\" hx-swap=\"innerHTML\"%s>+</button></div>", itemPath, disabled, strconv.Itoa(item.Quantity), itemPath, disabled); err != nil {
			return err
		}
		if err := writef(w, "<button type=\"button\" class=\"cart-item-remove\" aria-label=\"Remove item\" hx-delete=\"%s\" hx-target=\"#cart-root\" hx-swap=\"innerHTML\"%s>Remove</button>", itemPath, disabled); err != nil {
			return err
		}
		if err := writef(w, "<p class=\"cart-item-price\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, item.FormattedTotal); err != nil {
			return err
		}
		return writef(w, "</p></div></li>")
	})
}

// cartAnnouncement keeps a polite live region in the panel even when empty so
// assistive tech picks up text swapped into it.
func cartAnnouncement(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<p class=\"cart-announcement\" role=\"status\" aria-live=\"polite\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, text); err != nil {
			return err
		}
		return writef(w, "</p>")
	})
}

func cartError(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		if err := writef(w, "<div class=\"cart-error\" role=\"alert\"><span>"); err != nil {
			return err
		}
		if err := writeEscaped(w, message); err != nil {
			return err
		}
		return writef(w, "</span><button type=\"button\" aria-label=\"Dismiss\" hx-get=\"%s\" hx-target=\"#cart-root\" hx-swap=\"innerHTML\">&times;</button></div>", routepath.Cart)
	})
}
