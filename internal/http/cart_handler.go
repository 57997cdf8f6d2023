package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prodavnica/storefront/internal/cart"
	"github.com/prodavnica/storefront/internal/catalog"
	"github.com/prodavnica/storefront/internal/checkout"
	"github.com/prodavnica/storefront/internal/order"
)

type CartHandler struct {
	carts   *cart.Store
	catalog catalog.Repository
	orders  *order.Service
}

func NewCartHandler(carts *cart.Store, cat catalog.Repository, orders *order.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat, orders: orders}
}

type cartView struct {
	SessionID string          `json:"sessionId"`
	Items     []cart.LineItem `json:"items"`
	Total     float64         `json:"total"`
}

func (h *CartHandler) view(sessionID string, c *cart.Cart) cartView {
	return cartView{SessionID: sessionID, Items: c.Items(), Total: c.Total()}
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	id, c := h.carts.Create()
	writeJSON(w, http.StatusCreated, h.view(id, c))
}

// sessionCart resolves the path session or writes the error response and
// returns nil.
func (h *CartHandler) sessionCart(w http.ResponseWriter, r *http.Request) (string, *cart.Cart) {
	sessionID := r.PathValue("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing sessionId")
		return "", nil
	}
	c := h.carts.Get(sessionID)
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return "", nil
	}
	return sessionID, c
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, c := h.sessionCart(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, h.view(sessionID, c))
}

// AddItem adds one unit of a product. The server resolves the charged
// price from the catalog; the client only names the product.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, c := h.sessionCart(w, r)
	if c == nil {
		return
	}

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.catalog.GetByID(ctx, body.ProductID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	c.AddItem(*p)
	writeJSON(w, http.StatusOK, h.view(sessionID, c))
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, c := h.sessionCart(w, r)
	if c == nil {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c.SetQuantity(productID, body.Quantity)
	writeJSON(w, http.StatusOK, h.view(sessionID, c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, c := h.sessionCart(w, r)
	if c == nil {
		return
	}
	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	c.RemoveItem(productID)
	writeJSON(w, http.StatusOK, h.view(sessionID, c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, c := h.sessionCart(w, r)
	if c == nil {
		return
	}
	c.Clear()
	writeJSON(w, http.StatusOK, h.view(sessionID, c))
}

type checkoutRequest struct {
	checkout.Info
	IdempotencyKey string `json:"idempotencyKey"`
}

type checkoutResponse struct {
	OrderID   string       `json:"orderId"`
	Status    order.Status `json:"status"`
	Total     float64      `json:"total"`
	Duplicate bool         `json:"duplicate,omitempty"`
}

// Checkout validates the draft and submits the order. Field errors come
// back as a map so the form can surface them per field; the cart survives
// any persistence failure so the customer can retry.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	_, c := h.sessionCart(w, r)
	if c == nil {
		return
	}

	var body checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if errs := checkout.ValidateAll(body.Info); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.orders.Submit(ctx, body.Info, c, body.IdempotencyKey)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			writeError(w, http.StatusConflict, "cart is empty")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to save order, please retry")
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID:   res.Order.ID,
		Status:    res.Order.Status,
		Total:     res.Order.Total,
		Duplicate: res.Duplicate,
	})
}
