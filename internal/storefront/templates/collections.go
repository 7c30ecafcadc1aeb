package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// CollectionCardView is the render model for a collection listing entry.
type CollectionCardView struct {
	Handle string
	Title  string
}

// CollectionListPage renders the collection index.
func CollectionListPage(collections []CollectionCardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<section class=\"collection-list\"><h1>Collections</h1>"); err != nil {
			return err
		}
		if len(collections) == 0 {
			if err := writef(w, "<p class=\"collection-list-empty\">No collections yet.</p>"); err != nil {
				return err
			}
			return writef(w, "</section>")
		}
		if err := writef(w, "<ul>"); err != nil {
			return err
		}
		for _, collection := range collections {
			if err := writef(w, "<li><a href=\"%s\">", routepath.Collection(collection.Handle)); err != nil {
				return err
			}
			if err := writeEscaped(w, collection.Title); err != nil {
				return err
			}
			if err := writef(w, "</a></li>"); err != nil {
				return err
			}
		}
		return writef(w, "</ul></section>")
	})
}
