package catalog

// PriceKind says whether a product carries a public price or is sold on
// request only.
type PriceKind int

const (
	PricePublic PriceKind = iota
	PriceOnRequest
)

// Price is the resolved price of a product. Product documents historically
// carry either a "price" or a "hiddenPrice" field; the repository resolves
// that into this variant at the boundary so nothing downstream branches on
// field presence.
type Price struct {
	Kind   PriceKind
	Amount float64
}

func PublicPrice(amount float64) Price {
	return Price{Kind: PricePublic, Amount: amount}
}

// OnRequestPrice marks a product as quote-on-request. amount is the
// internal suggested amount from the document's hiddenPrice field; it is
// never shown to customers and 0 means no suggestion was recorded.
func OnRequestPrice(amount float64) Price {
	return Price{Kind: PriceOnRequest, Amount: amount}
}

// OnRequest reports whether the price is quote-on-request.
func (p Price) OnRequest() bool {
	return p.Kind == PriceOnRequest
}

type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	ImgURL     string   `json:"imgUrl"`
	Images     []string `json:"images,omitempty"`
	Features   []string `json:"features,omitempty"`
	Datasheets []string `json:"datasheets,omitempty"`
	Price      Price    `json:"-"`
}
