package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// ProductCardView is the render model for a product grid tile.
type ProductCardView struct {
	Handle         string
	Title          string
	ThumbnailURL   string
	FormattedPrice string
}

// VariantView is the render model for one purchasable variant.
type VariantView struct {
	ID             string
	Title          string
	FormattedPrice string
}

// ProductDetailView is the render model for a product detail page.
type ProductDetailView struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	Variants     []VariantView
}

// ProductListPage renders the product catalog grid.
func ProductListPage(heading string, products []ProductCardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<section class=\"product-list\"><h1>"); err != nil {
			return err
		}
		if err := writeEscaped(w, heading); err != nil {
			return err
		}
		if err := writef(w, "</h1>"); err != nil {
			return err
		}
		if len(products) == 0 {
			if err := writef(w, "<p class=\"product-list-empty\">No products available.</p>"); err != nil {
				return err
			}
			return writef(w, "</section>")
		}
		if err := writef(w, "<ul class=\"product-grid\">"); err != nil {
			return err
		}
		for _, product := range products {
			if err := productCard(product).Render(ctx, w); err != nil {
				return err
			}
		}
		return writef(w, "</ul></section>")
	})
}

func productCard(product ProductCardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<li class=\"product-card\"><a href=\"%s\">", routepath.Product(product.Handle)); err != nil {
			return err
		}
		if product.ThumbnailURL != "" {
			if err := writef(w, "<img src=\"%s\" alt=\"\">", templ.EscapeString(product.ThumbnailURL)); err != nil {
				return err
			}
		}
		if err := writef(w, "<span class=\"product-card-title\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, product.Title); err != nil {
			return err
		}
		if err := writef(w, "</span><span class=\"product-card-price\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, product.FormattedPrice); err != nil {
			return err
		}
		return writef(w, "</span></a></li>")
	})
}

// ProductDetailPage renders the product page with its add-to-cart form.
func ProductDetailPage(product ProductDetailView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<article class=\"product-detail\"><h1>"); err != nil {
			return err
		}
		if err := writeEscaped(w, product.Title); err != nil {
			return err
		}
		if err := writef(w, "</h1>"); err != nil {
			return err
		}
		if product.ThumbnailURL != "" {
			if err := writef(w, "<img src=\"%s\" alt=\"\" class=\"product-detail-image\">", templ.EscapeString(product.ThumbnailURL)); err != nil {
				return err
			}
		}
		if product.Description != "" {
			if err := writef(w, "<p class=\"product-detail-description\">"); err != nil {
				return err
			}
			if err := writeEscaped(w, product.Description); err != nil {
				return err
			}
			if err := writef(w, "</p>"); err != nil {
				return err
			}
		}
		if len(product.Variants) == 0 {
			if err := writef(w, "<p class=\"product-detail-unavailable\">Currently unavailable.</p>"); err != nil {
				return err
			}
			return writef(w, "</article>")
		}
		if err := writef(w, "<form hx-post=\"%s\" hx-target=\"#cart-root\" hx-swap=\"innerHTML\">", routepath.CartItems); err != nil {
			return err
		}
		if len(product.Variants) == 1 {
			variant := product.Variants[0]
			if err := writef(w, "<input type=\"hidden\" name=\"variant_id\" value=\"%s\"><p class=\"product-detail-price\">", templ.EscapeString(variant.ID)); err != nil {
				return err
			}
			if err := writeEscaped(w, variant.FormattedPrice); err != nil {
				return err
			}
			if err := writef(w, "</p>"); err != nil {
				return err
			}
		} else {
			if err := writef(w, "<label for=\"variant\">Option</label><select id=\"variant\" name=\"variant_id\">"); err != nil {
				return err
			}
			for _, variant := range product.Variants {
				if err := writef(w, "<option value=\"%s\">", templ.EscapeString(variant.ID)); err != nil {
					return err
				}
				if err := writeEscaped(w, variant.Title+" - "+variant.FormattedPrice); err != nil {
					return err
				}
				if err := writef(w, "</option>"); err != nil {
					return err
				}
			}
			if err := writef(w, "</select>"); err != nil {
				return err
			}
		}
		if err := writef(w, "<label for=\"quantity\">Quantity</label><input id=\"quantity\" type=\"number\" name=\"quantity\" min=\"1\" value=\"%s\">", strconv.Itoa(1)); err != nil {
			return err
		}
		return writef(w, "<button type=\"submit\" class=\"button\">Add to cart</button></form></article>")
	})
}
