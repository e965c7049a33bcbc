package store

import (
	"fmt"
	"sync"

	"lavka/internal/models"
)

// CartFilter controls CartStore.List. Quantity bounds compare against the
// sum of quantities across all lines in a cart.
type CartFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	MinQuantity *int64
	MaxQuantity *int64
}

// CartStore owns the carts. Same identifier discipline as ItemStore; carts
// are never deleted at all.
type CartStore struct {
	mu     sync.RWMutex
	carts  []*models.Cart
	byID   map[int64]*models.Cart
	nextID int64
}

func NewCartStore() *CartStore {
	return &CartStore{byID: make(map[int64]*models.Cart)}
}

func (s *CartStore) Create() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := &models.Cart{ID: s.nextID, Items: []models.CartLine{}}
	s.nextID++
	s.carts = append(s.carts, cart)
	s.byID[cart.ID] = cart

	return cart.Clone()
}

func (s *CartStore) Get(id int64) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrCartNotFound, id)
	}
	return cart.Clone(), nil
}

// List uses the same slice-then-filter pipeline as ItemStore.List.
func (s *CartStore) List(f CartFilter) []models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := paginate(s.carts, f.Offset, f.Limit)
	window = filterSeq(window, func(c *models.Cart) bool {
		if f.MinPrice != nil && c.Price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && c.Price > *f.MaxPrice {
			return false
		}
		if f.MinQuantity != nil && c.TotalQuantity() < *f.MinQuantity {
			return false
		}
		if f.MaxQuantity != nil && c.TotalQuantity() > *f.MaxQuantity {
			return false
		}
		return true
	})

	out := make([]models.Cart, len(window))
	for i, c := range window {
		out[i] = *c.Clone()
	}
	return out
}

// AddLine puts one unit of an item into the cart: an existing line is
// incremented, otherwise a new line with quantity 1 is appended in add
// order. The cart price grows by one unit's worth either way; it is
// accumulated at add time, never recomputed from current item prices.
func (s *CartStore) AddLine(cartID, itemID int64, unitPrice float64) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.byID[cartID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrCartNotFound, cartID)
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			cart.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartLine{ItemID: itemID, Quantity: 1})
	}
	cart.Price += unitPrice

	return cart.Clone(), nil
}
