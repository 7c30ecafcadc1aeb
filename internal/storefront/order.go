package storefront

import (
	"net/http"

	"github.com/tidegoods/storefront/internal/storefront/templates"
)

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	sess := s.ensureSession(w, r)

	order, err := s.commerce.GetOrder(r.Context(), r.PathValue("orderID"))
	if err != nil {
		s.renderError(w, r, sess, errorStatus(err), err)
		return
	}

	content := templates.OrderPage(s.orderView(order))
	s.renderPage(w, r, sess, "Order confirmation", content)
}
