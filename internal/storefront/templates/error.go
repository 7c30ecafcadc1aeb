package templates

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/routepath"
)

// ErrorPageTitle returns the browser title for storefront error pages.
func ErrorPageTitle(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "Page not found"
	}
	return "Something went wrong"
}

// ErrorPage renders a storefront error page for the given status.
func ErrorPage(statusCode int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "Something went wrong"
		message := "An unexpected error occurred. Please try again."
		if statusCode == http.StatusNotFound {
			heading = "Page not found"
			message = "We could not find what you were looking for."
		}
		if err := writef(w, "<section class=\"error-page\"><h1>"); err != nil {
			return err
		}
		if err := writeEscaped(w, heading); err != nil {
			return err
		}
		if err := writef(w, "</h1><p>"); err != nil {
			return err
		}
		if err := writeEscaped(w, message); err != nil {
			return err
		}
		return writef(w, "</p><a class=\"button\" href=\"%s\">Back to the store</a></section>", routepath.Root)
	})
}
