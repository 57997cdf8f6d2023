package order

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/prodavnica/storefront/internal/cart"
	"github.com/prodavnica/storefront/internal/checkout"
)

var (
	// ErrEmptyCart rejects a submission with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrIllegalTransition rejects a status change the lifecycle does not
	// permit, including any change out of a terminal status.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrTerminalOrder rejects administrative annotations on a closed order.
	ErrTerminalOrder = errors.New("order is in a terminal status")
)

// EventPublisher emits order lifecycle events. Publishing is best effort:
// the order store is the source of truth and a publish failure never fails
// the operation that triggered it.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
	PublishStatusChanged(ctx context.Context, tr *Transition) error
}

// Service owns order submission and the administrative lifecycle.
type Service struct {
	repo   Repository
	events EventPublisher
	logger *log.Logger
}

// NewService builds the service. events may be nil when no broker is
// configured.
func NewService(repo Repository, events EventPublisher, logger *log.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

// SubmissionResult reports what Submit did. Duplicate is true when the
// idempotency key had already been used; Order is then the previously
// stored order, and the cart is still cleared.
type SubmissionResult struct {
	Order     *Order
	Duplicate bool
}

// Submit snapshots the validated checkout draft and the cart into a new
// order with status "primljeno" and persists it. The cart is cleared only
// after the store accepts the order; on a persistence error the cart is
// left intact so the customer can retry.
//
// The caller gates on checkout.ValidateAll; Submit only requires a
// well-formed payload. idempotencyKey becomes the order document ID, so a
// double-click cannot create a second order. An empty key gets a fresh one.
func (s *Service) Submit(ctx context.Context, info checkout.Info, c *cart.Cart, idempotencyKey string) (*SubmissionResult, error) {
	lines := c.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}
	o := newOrder(idempotencyKey, info, lines)

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	if !created {
		// The key was already used: the stored order stands, and the
		// caller gets that one, not a snapshot of the current cart.
		stored, err := s.repo.GetByID(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("load order %s for replayed submission: %w", o.ID, err)
		}
		if stored != nil {
			o = stored
		}
		c.Clear()
		return &SubmissionResult{Order: o, Duplicate: true}, nil
	}

	c.Clear()
	s.publishCreated(ctx, o)

	return &SubmissionResult{Order: o, Duplicate: false}, nil
}

// Open loads an order for administrative review. Opening a freshly
// received order moves it to "u obradi" as a side effect; a failed persist
// of that side effect is logged and the next refresh reconciles.
func (s *Service) Open(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil || o == nil {
		return o, err
	}

	if o.Status == StatusReceived {
		if _, err := s.ChangeStatus(ctx, o, StatusProcessing); err != nil {
			s.logger.Printf("open %s: auto transition failed: %v", orderID, err)
		}
	}

	return o, nil
}

// ChangeStatus moves the order to next. The in-memory order is updated
// optimistically; the returned Transition records whether the change was
// confirmed by the store or rolled back.
func (s *Service) ChangeStatus(ctx context.Context, o *Order, next Status) (*Transition, error) {
	if !next.Valid() || !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, next)
	}

	tr := begin(o, next)

	if err := s.repo.UpdateStatus(ctx, o.ID, next); err != nil {
		tr.rollback(o, err)
		return tr, fmt.Errorf("persist status of %s: %w", o.ID, err)
	}
	tr.confirm()

	s.publishStatusChanged(ctx, tr)

	return tr, nil
}

// AnnotateDelivery attaches the delivery price and company to an open
// order. Annotations are not status transitions and do not re-run checkout
// validation, but a closed order cannot be annotated.
func (s *Service) AnnotateDelivery(ctx context.Context, o *Order, price float64, company string) error {
	if o.Status.Terminal() {
		return ErrTerminalOrder
	}
	if err := s.repo.UpdateDelivery(ctx, o.ID, price, company); err != nil {
		return err
	}
	o.DeliveryPrice = &price
	o.DeliveryCompany = company
	return nil
}

// SuggestPrice records an admin quote for a quote-on-request line.
func (s *Service) SuggestPrice(ctx context.Context, o *Order, productID string, amount float64) error {
	if o.Status.Terminal() {
		return ErrTerminalOrder
	}
	if err := s.repo.UpdateSuggestedPrice(ctx, o.ID, productID, amount); err != nil {
		return err
	}
	for i := range o.Cart {
		if o.Cart[i].ProductID == productID {
			o.Cart[i].SuggestedPrice = &amount
		}
	}
	return nil
}

// Get returns the order without the open-for-review side effect.
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) publishCreated(ctx context.Context, o *Order) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderCreated(ctx, o); err != nil {
		s.logger.Printf("publish order.created for %s: %v", o.ID, err)
	}
}

func (s *Service) publishStatusChanged(ctx context.Context, tr *Transition) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatusChanged(ctx, tr); err != nil {
		s.logger.Printf("publish order.status_changed for %s: %v", tr.OrderID, err)
	}
}
