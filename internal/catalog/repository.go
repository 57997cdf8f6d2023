package catalog

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const productsCollection = "products"

// Repository reads the products collection. The storefront never writes
// products; the back office owns them.
type Repository interface {
	GetByID(ctx context.Context, productID string) (*Product, error)
	List(ctx context.Context, category string) ([]Product, error)
}

// productDoc mirrors the raw document shape. A document carries either
// price or hiddenPrice; toProduct resolves that into the Price variant.
type productDoc struct {
	Name        string   `firestore:"name"`
	Category    string   `firestore:"category"`
	Price       float64  `firestore:"price"`
	HiddenPrice float64  `firestore:"hiddenPrice"`
	ImgURL      string   `firestore:"imgUrl"`
	Images      []string `firestore:"images"`
	Features    []string `firestore:"features"`
	Datasheets  []string `firestore:"datasheets"`
}

func (d productDoc) toProduct(id string) Product {
	p := Product{
		ID:         id,
		Name:       d.Name,
		Category:   d.Category,
		ImgURL:     d.ImgURL,
		Images:     d.Images,
		Features:   d.Features,
		Datasheets: d.Datasheets,
	}
	if d.HiddenPrice > 0 || d.Price <= 0 {
		p.Price = OnRequestPrice(d.HiddenPrice)
	} else {
		p.Price = PublicPrice(d.Price)
	}
	return p
}

type firestoreRepo struct {
	client *firestore.Client
}

func NewRepository(client *firestore.Client) Repository {
	return &firestoreRepo{client: client}
}

func (r *firestoreRepo) col() *firestore.CollectionRef {
	return r.client.Collection(productsCollection)
}

// GetByID returns (nil, nil) when the product does not exist.
func (r *firestoreRepo) GetByID(ctx context.Context, productID string) (*Product, error) {
	snap, err := r.col().Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}

	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", productID, err)
	}

	p := doc.toProduct(snap.Ref.ID)
	return &p, nil
}

func (r *firestoreRepo) List(ctx context.Context, category string) ([]Product, error) {
	q := r.col().Query
	if category != "" {
		q = q.Where("category", "==", category)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var products []Product
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate products: %w", err)
		}

		var doc productDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", snap.Ref.ID, err)
		}
		products = append(products, doc.toProduct(snap.Ref.ID))
	}

	return products, nil
}
