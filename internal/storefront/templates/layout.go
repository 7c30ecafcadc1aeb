package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/platform/flash"
	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// Layout wraps page content with the storefront chrome.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>"); err != nil {
			return err
		}
		if err := writeEscaped(w, ComposePageTitle(title, page.AppName)); err != nil {
			return err
		}
		if err := writef(w, "</title><link rel=\"stylesheet\" href=\"/static/storefront.css\"><script src=\"https://unpkg.com/htmx.org@1.9.12\" defer></script><script src=\"/static/storefront.js\" defer></script></head><body>"); err != nil {
			return err
		}
		if err := header(page).Render(ctx, w); err != nil {
			return err
		}
		if err := noticeBanner(page.Notice).Render(ctx, w); err != nil {
			return err
		}
		if err := writef(w, "<main id=\"main\">"); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if err := writef(w, "</main>"); err != nil {
			return err
		}
		if err := writef(w, "<div id=\"cart-root\"></div>"); err != nil {
			return err
		}
		return writef(w, "</body></html>")
	})
}

func header(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<header class=\"site-header\"><nav aria-label=\"Primary\"><a class=\"brand\" href=\"%s\">", routepath.Root); err != nil {
			return err
		}
		if err := writeEscaped(w, page.AppName); err != nil {
			return err
		}
		if err := writef(w, "</a><a href=\"%s\">Products</a><a href=\"%s\">Collections</a></nav>", routepath.Products, routepath.Collections); err != nil {
			return err
		}
		if err := searchBox(page.SearchQuery).Render(ctx, w); err != nil {
			return err
		}
		if err := cartButton(page.CartCount).Render(ctx, w); err != nil {
			return err
		}
		return writef(w, "</header>")
	})
}

// searchBox renders the header search island. The input debounces on the
// client and the handler debounces again server-side, so a burst of
// keystrokes settles into one backend query.
func searchBox(query string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<div class=\"search\" role=\"search\"><input type=\"search\" name=\"%s\" placeholder=\"Search products\" autocomplete=\"off\" aria-label=\"Search products\" aria-controls=\"search-results\" hx-get=\"%s\" hx-trigger=\"input changed delay:300ms\" hx-target=\"#search-results\" hx-swap=\"innerHTML\" value=\"", routepath.SearchQueryKey, routepath.Search); err != nil {
			return err
		}
		if err := writeEscaped(w, query); err != nil {
			return err
		}
		return writef(w, "\"><div id=\"search-results\" class=\"search-results\" role=\"listbox\"></div></div>")
	})
}

func cartButton(count int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<button type=\"button\" class=\"cart-toggle\" aria-haspopup=\"dialog\" aria-controls=\"cart-panel\" hx-get=\"%s\" hx-target=\"#cart-root\" hx-swap=\"innerHTML\">Cart", routepath.Cart); err != nil {
			return err
		}
		if count > 0 {
			if err := writef(w, "<span class=\"cart-count\" aria-label=\"%s items in cart\">%s</span>", strconv.Itoa(count), strconv.Itoa(count)); err != nil {
				return err
			}
		}
		return writef(w, "</button>")
	})
}

func noticeBanner(notice *flash.Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if notice == nil {
			return nil
		}
		if err := writef(w, "<div class=\"notice notice-%s\" role=\"status\">", templ.EscapeString(string(notice.Kind))); err != nil {
			return err
		}
		if err := writeEscaped(w, notice.Message); err != nil {
			return err
		}
		return writef(w, "</div>")
	})
}
