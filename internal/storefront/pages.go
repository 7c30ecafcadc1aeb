package storefront

import (
	"log"
	"net/http"

	"github.com/a-h/templ"

	"github.com/tidegoods/storefront/internal/commerce"
	storeerrors "github.com/tidegoods/storefront/internal/platform/errors"
	"github.com/tidegoods/storefront/internal/storefront/htmx"
	"github.com/tidegoods/storefront/internal/storefront/templates"
)

// renderPage renders content inside the layout, or as a bare fragment for
// HTMX requests.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, sess *session, title string, content templ.Component) {
	page := s.pageContext(w, r, sess)
	full := templates.Layout(page, title, content)
	htmx.RenderPage(w, r, content, full, templates.ComposePageTitle(title, s.appName))
}

// renderError renders the storefront error page with the given status.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, sess *session, statusCode int, err error) {
	if err != nil {
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
	}
	page := s.pageContext(w, r, sess)
	w.WriteHeader(statusCode)
	title := templates.ErrorPageTitle(statusCode)
	component := templates.Layout(page, title, templates.ErrorPage(statusCode))
	if renderErr := component.Render(r.Context(), w); renderErr != nil {
		log.Printf("render error page: %v", renderErr)
	}
}

// errorStatus maps backend and domain errors to an HTTP response status.
func errorStatus(err error) int {
	if commerce.IsNotFound(err) {
		return http.StatusNotFound
	}
	return storeerrors.CodeOf(err).HTTPStatus()
}

// currencyCode returns the display currency, preferring the active cart and
// falling back to the sales region.
func (s *Server) currencyCode(r *http.Request, sess *session) string {
	if cart := sess.store.Cart(); cart != nil && cart.CurrencyCode != "" {
		return cart.CurrencyCode
	}
	if region, err := s.resolveRegion(r.Context()); err == nil {
		return region.CurrencyCode
	}
	return "usd"
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	currency := s.currencyCode(r, sess)
	list, err := s.commerce.ListProducts(r.Context(), commerce.ListProductsParams{Limit: 8})
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}
	collections, err := s.commerce.ListCollections(r.Context())
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}

	view := templates.HomeView{
		AppName:     s.appName,
		Featured:    s.productCards(list.Products, currency),
		Collections: collectionCards(collections),
	}
	s.renderPage(w, r, sess, "Home", templates.HomePage(view))
}

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	currency := s.currencyCode(r, sess)
	list, err := s.commerce.ListProducts(r.Context(), commerce.ListProductsParams{Limit: 48})
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}

	content := templates.ProductListPage("All products", s.productCards(list.Products, currency))
	s.renderPage(w, r, sess, "Products", content)
}

func (s *Server) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	product, err := s.commerce.GetProduct(r.Context(), r.PathValue("handle"))
	if err != nil {
		s.renderError(w, r, sess, errorStatus(err), err)
		return
	}

	currency := s.currencyCode(r, sess)
	content := templates.ProductDetailPage(s.productDetailView(product, currency))
	s.renderPage(w, r, sess, product.Title, content)
}

func (s *Server) handleCollectionList(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	collections, err := s.commerce.ListCollections(r.Context())
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}

	content := templates.CollectionListPage(collectionCards(collections))
	s.renderPage(w, r, sess, "Collections", content)
}

func (s *Server) handleCollectionDetail(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	collection, err := s.commerce.GetCollection(r.Context(), r.PathValue("handle"))
	if err != nil {
		s.renderError(w, r, sess, errorStatus(err), err)
		return
	}

	currency := s.currencyCode(r, sess)
	list, err := s.commerce.ListProducts(r.Context(), commerce.ListProductsParams{CollectionID: collection.ID, Limit: 48})
	if err != nil {
		s.renderError(w, r, sess, http.StatusInternalServerError, err)
		return
	}

	content := templates.ProductListPage(collection.Title, s.productCards(list.Products, currency))
	s.renderPage(w, r, sess, collection.Title, content)
}
