package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// OrderItemView is the render model for one confirmed order line.
type OrderItemView struct {
	Title          string
	Quantity       int
	FormattedTotal string
}

// OrderView is the render model for the order confirmation page.
type OrderView struct {
	DisplayID      string
	Email          string
	Items          []OrderItemView
	FormattedTotal string
}

// OrderPage renders the post-checkout confirmation.
func OrderPage(view OrderView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<section class=\"order-confirmation\"><h1>Thank you for your order</h1><p>Order <strong>#"); err != nil {
			return err
		}
		if err := writeEscaped(w, view.DisplayID); err != nil {
			return err
		}
		if err := writef(w, "</strong> is confirmed."); err != nil {
			return err
		}
		if view.Email != "" {
			if err := writef(w, " A confirmation was sent to "); err != nil {
				return err
			}
			if err := writeEscaped(w, view.Email); err != nil {
				return err
			}
			if err := writef(w, "."); err != nil {
				return err
			}
		}
		if err := writef(w, "</p><ul class=\"order-items\">"); err != nil {
			return err
		}
		for _, item := range view.Items {
			if err := writef(w, "<li><span>%d &times; ", item.Quantity); err != nil {
				return err
			}
			if err := writeEscaped(w, item.Title); err != nil {
				return err
			}
			if err := writef(w, "</span><span>"); err != nil {
				return err
			}
			if err := writeEscaped(w, item.FormattedTotal); err != nil {
				return err
			}
			if err := writef(w, "</span></li>"); err != nil {
				return err
			}
		}
		if err := writef(w, "</ul><p class=\"order-total\">Total: <strong>"); err != nil {
			return err
		}
		if err := writeEscaped(w, view.FormattedTotal); err != nil {
			return err
		}
		return writef(w, "</strong></p><a class=\"button\" href=\"%s\">Continue shopping</a></section>", routepath.Products)
	})
}
