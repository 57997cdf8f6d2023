package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prodavnica/storefront/internal/order"
)

// AdminHandler serves the back-office order panel. All routes sit behind
// the admin auth middleware.
type AdminHandler struct {
	orders *order.Service
}

func NewAdminHandler(orders *order.Service) *AdminHandler {
	return &AdminHandler{orders: orders}
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListAll(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// OpenOrder returns the order for review. Viewing a freshly received order
// moves it to "u obradi"; that is the review side effect, not a button.
func (h *AdminHandler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r, true)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type statusRequest struct {
	Status order.Status `json:"status"`
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r, false)
	if !ok {
		return
	}

	var body statusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tr, err := h.orders.ChangeStatus(ctx, o, body.Status)
	if err != nil {
		if errors.Is(err, order.ErrIllegalTransition) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "failed to persist status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orderId": o.ID,
		"status":  o.Status,
		"phase":   tr.Phase,
	})
}

type deliveryRequest struct {
	DeliveryPrice   float64 `json:"deliveryPrice"`
	DeliveryCompany string  `json:"deliveryCompany"`
}

func (h *AdminHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r, false)
	if !ok {
		return
	}

	var body deliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.orders.AnnotateDelivery(ctx, o, body.DeliveryPrice, body.DeliveryCompany); err != nil {
		if errors.Is(err, order.ErrTerminalOrder) {
			writeError(w, http.StatusConflict, "order is closed")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to persist delivery details")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

type suggestedPriceRequest struct {
	Amount float64 `json:"amount"`
}

func (h *AdminHandler) SuggestPrice(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOrder(w, r, false)
	if !ok {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	var body suggestedPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.orders.SuggestPrice(ctx, o, productID, body.Amount); err != nil {
		switch {
		case errors.Is(err, order.ErrTerminalOrder):
			writeError(w, http.StatusConflict, "order is closed")
		case errors.Is(err, order.ErrLineNotFound):
			writeError(w, http.StatusNotFound, "order line not found")
		default:
			writeError(w, http.StatusBadGateway, "failed to persist suggested price")
		}
		return
	}

	writeJSON(w, http.StatusOK, o)
}

// loadOrder fetches the path order, optionally with the open-for-review
// side effect. On any handled failure it writes the response and reports
// false.
func (h *AdminHandler) loadOrder(w http.ResponseWriter, r *http.Request, open bool) (*order.Order, bool) {
	orderID := r.PathValue("orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing orderId")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		o   *order.Order
		err error
	)
	if open {
		o, err = h.orders.Open(ctx, orderID)
	} else {
		o, err = h.orders.Get(ctx, orderID)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return nil, false
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return nil, false
	}
	return o, true
}
