package storefront

import (
	"net/http"

	"github.com/tidegoods/storefront/internal/storefront/htmx"
	"github.com/tidegoods/storefront/internal/storefront/routepath"
	"github.com/tidegoods/storefront/internal/storefront/templates"
)

// handleSearch serves the search island. Fragment requests are debounced per
// session so a typing burst settles into one backend query; superseded
// requests return 204 and leave the current suggestions untouched. A direct
// page load skips the debounce and renders a full results page.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)
	query := r.URL.Query().Get(routepath.SearchQueryKey)
	currency := s.currencyCode(r, sess)

	if htmx.IsFragmentRequest(r) {
		result, err := sess.search.Search(r.Context(), query)
		if err != nil {
			s.renderError(w, r, sess, http.StatusInternalServerError, err)
			return
		}
		if result.Superseded {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		component := templates.SearchResults(result.Query, s.searchResultViews(result.Products, currency))
		if renderErr := component.Render(r.Context(), w); renderErr != nil {
			s.renderError(w, r, sess, http.StatusInternalServerError, renderErr)
		}
		return
	}

	products, err := s.searchProducts(r.Context(), query, 48)
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}
	heading := "Search"
	if query != "" {
		heading = "Results for \"" + query + "\""
	}
	content := templates.ProductListPage(heading, s.productCards(products, currency))
	s.renderPage(w, r, sess, "Search", content)
}
