package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the session registry: one cart per session ID. It replaces the
// ambient global cart context of the old storefront with an explicit
// container handed to handlers.
//
// The lock guards the map; the carts themselves carry their own lock.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Create registers a new empty cart and returns its session ID.
func (s *Store) Create() (string, *Cart) {
	id := uuid.NewString()
	c := New()

	s.mu.Lock()
	s.carts[id] = c
	s.mu.Unlock()

	return id, c
}

// Get returns the cart for the session, or nil when the session is unknown.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts[sessionID]
}

// Drop forgets the session entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
}
