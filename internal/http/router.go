package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/prodavnica/storefront/internal/cart"
	"github.com/prodavnica/storefront/internal/catalog"
	"github.com/prodavnica/storefront/internal/middleware"
	"github.com/prodavnica/storefront/internal/order"
)

// Deps carries everything the router wires into handlers. Verifier may be
// nil (admin routes then answer 503), Logger must not be.
type Deps struct {
	Catalog  catalog.Repository
	Carts    *cart.Store
	Orders   *order.Service
	Verifier middleware.TokenVerifier
	Logger   *log.Logger
}

func NewRouter(d Deps, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthHandler)

	ph := NewProductHandler(d.Catalog)
	mux.HandleFunc("GET /api/products", ph.ListProducts)
	mux.HandleFunc("GET /api/products/{productId}", ph.GetProduct)

	ch := NewCartHandler(d.Carts, d.Catalog, d.Orders)
	mux.HandleFunc("POST /api/cart", ch.CreateCart)
	mux.HandleFunc("GET /api/cart/{sessionId}", ch.GetCart)
	mux.HandleFunc("POST /api/cart/{sessionId}/items", ch.AddItem)
	mux.HandleFunc("PUT /api/cart/{sessionId}/items/{productId}", ch.SetQuantity)
	mux.HandleFunc("DELETE /api/cart/{sessionId}/items/{productId}", ch.RemoveItem)
	mux.HandleFunc("DELETE /api/cart/{sessionId}", ch.ClearCart)
	mux.HandleFunc("POST /api/cart/{sessionId}/checkout", ch.Checkout)

	oh := NewOrderHandler(d.Orders)
	mux.HandleFunc("GET /api/orders", oh.ListByEmail)

	ah := NewAdminHandler(d.Orders)
	adminOnly := middleware.AdminAuth(d.Verifier)
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/orders", ah.ListOrders)
	admin.HandleFunc("GET /api/admin/orders/{orderId}", ah.OpenOrder)
	admin.HandleFunc("PUT /api/admin/orders/{orderId}/status", ah.UpdateStatus)
	admin.HandleFunc("PATCH /api/admin/orders/{orderId}/delivery", ah.UpdateDelivery)
	admin.HandleFunc("PATCH /api/admin/orders/{orderId}/items/{productId}/suggested-price", ah.SuggestPrice)
	mux.Handle("/api/admin/", adminOnly(admin))

	var h http.Handler = mux
	h = middleware.CORS(corsOrigins)(h)
	h = middleware.Recover(d.Logger)(h)
	return h
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "storefront",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
