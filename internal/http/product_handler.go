package http

import (
	"context"
	"net/http"
	"time"

	"github.com/prodavnica/storefront/internal/catalog"
	"github.com/prodavnica/storefront/internal/pricing"
)

type ProductHandler struct {
	repo catalog.Repository
}

func NewProductHandler(repo catalog.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// productView is a product plus its derived display pricing. The "was"
// price is computed, never stored, so every surface shows the same one.
type productView struct {
	catalog.Product
	Price           *float64 `json:"price,omitempty"`
	PriceOnRequest  bool     `json:"priceOnRequest,omitempty"`
	OriginalPrice   *float64 `json:"originalPrice,omitempty"`
	DiscountPercent *int     `json:"discountPercent,omitempty"`
}

func toView(p catalog.Product) productView {
	v := productView{Product: p}
	if p.Price.OnRequest() {
		v.PriceOnRequest = true
		return v
	}

	amount := p.Price.Amount
	orig := pricing.OriginalPrice(amount)
	disc := pricing.DiscountPercent(amount)
	v.Price = &amount
	v.OriginalPrice = &orig
	v.DiscountPercent = &disc
	return v
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.repo.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetByID(ctx, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	writeJSON(w, http.StatusOK, toView(*p))
}
