// Package cart holds the in-memory shopping cart for an active session.
package cart

import (
	"sync"

	"github.com/prodavnica/storefront/internal/catalog"
	"github.com/prodavnica/storefront/internal/pricing"
)

// LineItem is one product entry in a cart. Display fields and the charged
// price are copied from the product at add time.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	ImgURL    string  `json:"imgUrl"`
	UnitPrice float64 `json:"unitPrice"`
	OnRequest bool    `json:"onRequest,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is the authoritative line-item list for one session. A session's
// requests can overlap (double-click, parallel tabs), so every method
// takes the cart lock.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem appends a new line for the product, or increments the quantity
// of the existing line with the same product ID. It never fails.
func (c *Cart) AddItem(p catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}

	li := LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		ImgURL:    p.ImgURL,
		Quantity:  1,
	}
	if p.Price.OnRequest() {
		li.OnRequest = true
	} else {
		li.UnitPrice = p.Price.Amount
	}
	c.items = append(c.items, li)
}

// RemoveItem deletes the line for the product ID. Removing an absent
// product is a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity of the line for the product ID. Quantities
// below 1 remove the line, so an invalid quantity is never stored.
func (c *Cart) SetQuantity(productID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty < 1 {
		c.removeLocked(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Total sums unitPrice x quantity over all lines, rounded to the nearest
// currency unit. An empty cart totals 0.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, li := range c.items {
		total += li.UnitPrice * float64(li.Quantity)
	}
	return pricing.Round(total)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
