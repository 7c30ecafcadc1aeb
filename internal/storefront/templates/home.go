package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// HomeView is the render model for the storefront landing page.
type HomeView struct {
	AppName     string
	Featured    []ProductCardView
	Collections []CollectionCardView
}

// HomePage renders the landing page with featured products and collections.
func HomePage(view HomeView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<section class=\"hero\"><h1>"); err != nil {
			return err
		}
		if err := writeEscaped(w, view.AppName); err != nil {
			return err
		}
		if err := writef(w, "</h1><a class=\"button\" href=\"%s\">Shop all products</a></section>", routepath.Products); err != nil {
			return err
		}
		if len(view.Featured) > 0 {
			if err := ProductListPage("Featured", view.Featured).Render(ctx, w); err != nil {
				return err
			}
		}
		if len(view.Collections) > 0 {
			if err := CollectionListPage(view.Collections).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
