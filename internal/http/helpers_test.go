package http

import (
	"context"
	"errors"
	"io"
	"log"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/prodavnica/storefront/internal/catalog"
	"github.com/prodavnica/storefront/internal/order"
)

type fakeCatalog struct {
	products map[string]catalog.Product
	err      error
}

func (f *fakeCatalog) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeCatalog) List(ctx context.Context, category string) ([]catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []catalog.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeOrderRepo backs an order.Service with an in-memory map.
type fakeOrderRepo struct {
	orders    map[string]*order.Order
	createErr error
	updateErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*order.Order{}}
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	if _, ok := f.orders[o.ID]; ok {
		return false, nil
	}
	cp := *o
	f.orders[o.ID] = &cp
	return true, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	return f.orders[orderID], nil
}

func (f *fakeOrderRepo) ListByEmail(ctx context.Context, email string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if o.Email == email {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, s order.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if o, ok := f.orders[orderID]; ok {
		o.Status = s
	}
	return nil
}

func (f *fakeOrderRepo) UpdateDelivery(ctx context.Context, orderID string, price float64, company string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if o, ok := f.orders[orderID]; ok {
		o.DeliveryPrice = &price
		o.DeliveryCompany = company
	}
	return nil
}

func (f *fakeOrderRepo) UpdateSuggestedPrice(ctx context.Context, orderID, productID string, amount float64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil
	}
	for i := range o.Cart {
		if o.Cart[i].ProductID == productID {
			o.Cart[i].SuggestedPrice = &amount
			return nil
		}
	}
	return order.ErrLineNotFound
}

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("unknown token")
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testOrderService(repo order.Repository) *order.Service {
	return order.NewService(repo, nil, testLogger())
}
