// Package templates renders storefront pages and HTMX fragments.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/storefront/platform/flash"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	AppName     string
	CurrentPath string
	SearchQuery string
	CartCount   int
	Notice      *flash.Notice
}

// ComposePageTitle appends the storefront name suffix unless already present.
func ComposePageTitle(title string, appName string) string {
	title = strings.TrimSpace(title)
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return title
	}
	if title == "" {
		return appName
	}
	if strings.HasSuffix(title, " | "+appName) {
		return title
	}
	return title + " | " + appName
}

func writeEscaped(w io.Writer, value string) error {
	_, err := io.WriteString(w, templ.EscapeString(value))
	return err
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func renderAll(ctx context.Context, w io.Writer, components ...templ.Component) error {
	for _, component := range components {
		if component == nil {
			continue
		}
		if err := component.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// Raw returns a component that writes the provided HTML verbatim.
//
// Callers must only pass trusted markup.
func Raw(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}
