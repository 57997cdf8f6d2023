package order

import (
	"time"

	"github.com/prodavnica/storefront/internal/cart"
	"github.com/prodavnica/storefront/internal/checkout"
	"github.com/prodavnica/storefront/internal/pricing"
)

// Line is one order line, snapshotted from the cart at submission time.
// SuggestedPrice is an admin quote for lines that were added with a
// quote-on-request price; it is never set for public-price lines.
type Line struct {
	ProductID      string   `firestore:"productId" json:"productId"`
	Name           string   `firestore:"name" json:"name"`
	Category       string   `firestore:"category" json:"category"`
	ImgURL         string   `firestore:"imgUrl" json:"imgUrl"`
	UnitPrice      float64  `firestore:"unitPrice" json:"unitPrice"`
	OnRequest      bool     `firestore:"onRequest" json:"onRequest,omitempty"`
	Quantity       int      `firestore:"quantity" json:"quantity"`
	SuggestedPrice *float64 `firestore:"suggestedPrice,omitempty" json:"suggestedPrice,omitempty"`
}

// Order is the immutable snapshot persisted at submission. Only Status and
// the administrative annotations change afterwards; the customer fields and
// cart lines never do.
type Order struct {
	ID string `firestore:"-" json:"orderId"`

	CustomerType       string `firestore:"customerType" json:"customerType"`
	FirstName          string `firestore:"firstName" json:"firstName"`
	LastName           string `firestore:"lastName" json:"lastName"`
	Address            string `firestore:"address" json:"address"`
	City               string `firestore:"city" json:"city"`
	Email              string `firestore:"email" json:"email"`
	Phone              string `firestore:"phone" json:"phone"`
	CompanyName        string `firestore:"companyName,omitempty" json:"companyName,omitempty"`
	TaxID              string `firestore:"taxId,omitempty" json:"taxId,omitempty"`
	RegistrationNumber string `firestore:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`

	Cart  []Line  `firestore:"cart" json:"cart"`
	Total float64 `firestore:"total" json:"total"`

	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	Status    Status    `firestore:"status" json:"status"`

	DeliveryPrice   *float64 `firestore:"deliveryPrice,omitempty" json:"deliveryPrice,omitempty"`
	DeliveryCompany string   `firestore:"deliveryCompany,omitempty" json:"deliveryCompany,omitempty"`
}

// newOrder builds the snapshot for a validated checkout draft and cart.
// Business fields of an individual draft are dropped from the snapshot.
func newOrder(id string, info checkout.Info, lines []cart.LineItem) *Order {
	o := &Order{
		ID:           id,
		CustomerType: string(info.CustomerType),
		FirstName:    info.FirstName,
		LastName:     info.LastName,
		Address:      info.Address,
		City:         info.City,
		Email:        info.Email,
		Phone:        info.Phone,
		Status:       StatusReceived,
	}
	if info.CustomerType == checkout.Business {
		o.CompanyName = info.CompanyName
		o.TaxID = info.TaxID
		o.RegistrationNumber = info.RegistrationNumber
	}

	var total float64
	for _, li := range lines {
		o.Cart = append(o.Cart, Line{
			ProductID: li.ProductID,
			Name:      li.Name,
			Category:  li.Category,
			ImgURL:    li.ImgURL,
			UnitPrice: li.UnitPrice,
			OnRequest: li.OnRequest,
			Quantity:  li.Quantity,
		})
		total += li.UnitPrice * float64(li.Quantity)
	}
	o.Total = pricing.Round(total)

	return o
}
