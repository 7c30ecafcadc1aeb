package storefront

import (
	"net/http"
	"strconv"

	"github.com/tidegoods/storefront/internal/commerce"
	"github.com/tidegoods/storefront/internal/storefront/cartstore"
	"github.com/tidegoods/storefront/internal/storefront/platform/flash"
	"github.com/tidegoods/storefront/internal/storefront/templates"
)

// pageContext assembles the shared layout context for a page render. Reading
// the flash notice here also clears it.
func (s *Server) pageContext(w http.ResponseWriter, r *http.Request, sess *session) templates.PageContext {
	page := templates.PageContext{
		AppName:     s.appName,
		CurrentPath: r.URL.Path,
		SearchQuery: r.URL.Query().Get("q"),
	}
	if sess != nil {
		page.CartCount = sess.store.ItemCount()
	}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		page.Notice = &notice
	}
	return page
}

func (s *Server) cartView(snapshot cartstore.Snapshot, cartError string) templates.CartView {
	view := templates.CartView{
		Open:           snapshot.Open,
		Loading:        snapshot.Loading,
		ItemCount:      snapshot.ItemCount,
		FormattedTotal: snapshot.FormattedTotal,
		Announcement:   snapshot.Announcement,
		Error:          cartError,
	}
	if snapshot.Cart == nil {
		return view
	}
	for _, item := range snapshot.Cart.Items {
		view.Items = append(view.Items, templates.CartItemView{
			ID:                 item.ID,
			Title:              item.Title,
			ThumbnailURL:       item.Thumbnail,
			Quantity:           item.Quantity,
			FormattedUnitPrice: s.formatter.Format(item.UnitPrice, snapshot.Cart.CurrencyCode),
			FormattedTotal:     s.formatter.Format(item.Total, snapshot.Cart.CurrencyCode),
			Updating:           snapshot.Updating[item.ID],
		})
	}
	return view
}

func (s *Server) productCards(products []commerce.Product, currencyCode string) []templates.ProductCardView {
	cards := make([]templates.ProductCardView, 0, len(products))
	for _, product := range products {
		card := templates.ProductCardView{
			Handle:       product.Handle,
			Title:        product.Title,
			ThumbnailURL: product.Thumbnail,
		}
		if variant := product.CheapestVariant(); variant != nil {
			card.FormattedPrice = s.formatter.Format(variant.Price, currencyCode)
		}
		cards = append(cards, card)
	}
	return cards
}

func (s *Server) productDetailView(product *commerce.Product, currencyCode string) templates.ProductDetailView {
	view := templates.ProductDetailView{
		ID:           product.ID,
		Title:        product.Title,
		Description:  product.Description,
		ThumbnailURL: product.Thumbnail,
	}
	for _, variant := range product.Variants {
		view.Variants = append(view.Variants, templates.VariantView{
			ID:             variant.ID,
			Title:          variant.Title,
			FormattedPrice: s.formatter.Format(variant.Price, currencyCode),
		})
	}
	return view
}

func (s *Server) searchResultViews(products []commerce.Product, currencyCode string) []templates.SearchResultView {
	views := make([]templates.SearchResultView, 0, len(products))
	for _, product := range products {
		view := templates.SearchResultView{
			Handle:       product.Handle,
			Title:        product.Title,
			ThumbnailURL: product.Thumbnail,
		}
		if variant := product.CheapestVariant(); variant != nil {
			view.FormattedPrice = s.formatter.Format(variant.Price, currencyCode)
		}
		views = append(views, view)
	}
	return views
}

func collectionCards(collections []commerce.Collection) []templates.CollectionCardView {
	cards := make([]templates.CollectionCardView, 0, len(collections))
	for _, collection := range collections {
		cards = append(cards, templates.CollectionCardView{
			Handle: collection.Handle,
			Title:  collection.Title,
		})
	}
	return cards
}

func (s *Server) orderView(order *commerce.Order) templates.OrderView {
	view := templates.OrderView{
		DisplayID:      strconv.Itoa(order.DisplayID),
		Email:          order.Email,
		FormattedTotal: s.formatter.Format(order.Total, order.CurrencyCode),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, templates.OrderItemView{
			Title:          item.Title,
			Quantity:       item.Quantity,
			FormattedTotal: s.formatter.Format(item.Total, order.CurrencyCode),
		})
	}
	return view
}
