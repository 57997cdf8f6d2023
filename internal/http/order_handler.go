package http

import (
	"context"
	"net/http"
	"time"

	"github.com/prodavnica/storefront/internal/order"
)

// OrderHandler serves the customer-facing profile view.
type OrderHandler struct {
	orders *order.Service
}

func NewOrderHandler(orders *order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListByEmail(ctx, email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}
