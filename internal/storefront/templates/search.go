package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// SearchResultView is the render model for one search suggestion.
type SearchResultView struct {
	Handle         string
	Title          string
	ThumbnailURL   string
	FormattedPrice string
}

// SearchResults renders the search suggestion fragment.
//
// A settled query with no matches renders a single "no results" row rather
// than an empty listbox.
func SearchResults(query string, results []SearchResultView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if query == "" {
			return nil
		}
		if len(results) == 0 {
			if err := writef(w, "<p class=\"search-no-results\" role=\"option\" aria-disabled=\"true\">No results for &ldquo;"); err != nil {
				return err
			}
			if err := writeEscaped(w, query); err != nil {
				return err
			}
			return writef(w, "&rdquo;</p>")
		}
		if err := writef(w, "<ul class=\"search-result-list\">"); err != nil {
			return err
		}
		for _, result := range results {
			if err := searchResultRow(result).Render(ctx, w); err != nil {
				return err
			}
		}
		return writef(w, "</ul>")
	})
}

func searchResultRow(result SearchResultView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<li role=\"option\"><a href=\"%s\">", routepath.Product(result.Handle)); err != nil {
			return err
		}
		if result.ThumbnailURL != "" {
			if err := writef(w, "<img src=\"%s\" alt=\"\">", templ.EscapeString(result.ThumbnailURL)); err != nil {
				return err
			}
		}
		if err := writef(w, "<span class=\"search-result-title\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, result.Title); err != nil {
			return err
		}
		if err := writef(w, "</span><span class=\"search-result-price\">"); err != nil {
			return err
		}
		if err := writeEscaped(w, result.FormattedPrice); err != nil {
			return err
		}
		return writef(w, "</span></a></li>")
	})
}
