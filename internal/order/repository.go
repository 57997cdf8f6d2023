package order

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ordersCollection = "orders"

// Repository persists orders in the external document store. Orders are
// never deleted; cancellation is a terminal status, not a delete.
type Repository interface {
	// Create persists a new order under o.ID. It returns false when a
	// document with that ID already exists (an idempotent replay).
	Create(ctx context.Context, o *Order) (bool, error)
	// GetByID returns (nil, nil) when the order does not exist.
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, s Status) error
	UpdateDelivery(ctx context.Context, orderID string, price float64, company string) error
	UpdateSuggestedPrice(ctx context.Context, orderID, productID string, amount float64) error
}

// ErrLineNotFound is returned when a suggested-price update names a product
// that is not a line of the order.
var ErrLineNotFound = errors.New("order line not found")

type firestoreRepo struct {
	client *firestore.Client
}

func NewRepository(client *firestore.Client) Repository {
	return &firestoreRepo{client: client}
}

func (r *firestoreRepo) col() *firestore.CollectionRef {
	return r.client.Collection(ordersCollection)
}

func (r *firestoreRepo) Create(ctx context.Context, o *Order) (bool, error) {
	_, err := r.col().Doc(o.ID).Create(ctx, o)
	if err != nil {
		// The document ID doubles as the idempotency key: a replayed
		// submission hits AlreadyExists and is not an error.
		if status.Code(err) == codes.AlreadyExists {
			return false, nil
		}
		return false, fmt.Errorf("create order %s: %w", o.ID, err)
	}
	return true, nil
}

func (r *firestoreRepo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	snap, err := r.col().Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return orderFromSnapshot(snap)
}

func (r *firestoreRepo) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	q := r.col().Where("email", "==", email).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, q)
}

func (r *firestoreRepo) ListAll(ctx context.Context) ([]Order, error) {
	q := r.col().OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, q)
}

func (r *firestoreRepo) collect(ctx context.Context, q firestore.Query) ([]Order, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var orders []Order
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate orders: %w", err)
		}
		o, err := orderFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *firestoreRepo) UpdateStatus(ctx context.Context, orderID string, s Status) error {
	_, err := r.col().Doc(orderID).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
	})
	if err != nil {
		return fmt.Errorf("update status of %s: %w", orderID, err)
	}
	return nil
}

func (r *firestoreRepo) UpdateDelivery(ctx context.Context, orderID string, price float64, company string) error {
	_, err := r.col().Doc(orderID).Update(ctx, []firestore.Update{
		{Path: "deliveryPrice", Value: price},
		{Path: "deliveryCompany", Value: company},
	})
	if err != nil {
		return fmt.Errorf("update delivery of %s: %w", orderID, err)
	}
	return nil
}

// UpdateSuggestedPrice rewrites the cart array inside a transaction, since
// the store cannot address a single array element by field path.
func (r *firestoreRepo) UpdateSuggestedPrice(ctx context.Context, orderID, productID string, amount float64) error {
	ref := r.col().Doc(orderID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		o, err := orderFromSnapshot(snap)
		if err != nil {
			return err
		}

		found := false
		for i := range o.Cart {
			if o.Cart[i].ProductID == productID {
				o.Cart[i].SuggestedPrice = &amount
				found = true
				break
			}
		}
		if !found {
			return ErrLineNotFound
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "cart", Value: o.Cart},
		})
	})
	if err != nil {
		return fmt.Errorf("update suggested price of %s/%s: %w", orderID, productID, err)
	}
	return nil
}

func orderFromSnapshot(snap *firestore.DocumentSnapshot) (*Order, error) {
	var o Order
	if err := snap.DataTo(&o); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", snap.Ref.ID, err)
	}
	o.ID = snap.Ref.ID
	return &o, nil
}
