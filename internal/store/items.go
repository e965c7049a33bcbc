package store

import (
	"fmt"
	"sync"

	"lavka/internal/models"
)

// ItemFilter controls ItemStore.List. Nil bounds mean no bound.
type ItemFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	ShowDeleted bool
}

// ItemStore owns the catalog. Identifiers are assigned once at creation,
// start at 0 and are never reused; items are never physically removed, a
// delete only flips the flag.
type ItemStore struct {
	mu     sync.RWMutex
	items  []*models.Item // insertion order, drives listing
	byID   map[int64]*models.Item
	nextID int64
}

func NewItemStore() *ItemStore {
	return &ItemStore{byID: make(map[int64]*models.Item)}
}

func (s *ItemStore) Create(name string, price float64) *models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &models.Item{ID: s.nextID, Name: name, Price: price}
	s.nextID++
	s.items = append(s.items, item)
	s.byID[item.ID] = item

	cp := *item
	return &cp
}

// Get resolves an item by identifier, deleted ones included. Hiding deleted
// items from external reads is the boundary's job; internal callers (patch,
// delete, cart linking) need the record regardless.
func (s *ItemStore) Get(id int64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	cp := *item
	return &cp, nil
}

// List windows the store by offset/limit first, then filters the window by
// price bounds and the deleted flag.
func (s *ItemStore) List(f ItemFilter) []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := paginate(s.items, f.Offset, f.Limit)
	window = filterSeq(window, func(it *models.Item) bool {
		if f.MinPrice != nil && it.Price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && it.Price > *f.MaxPrice {
			return false
		}
		if it.Deleted && !f.ShowDeleted {
			return false
		}
		return true
	})

	out := make([]models.Item, len(window))
	for i, it := range window {
		out[i] = *it
	}
	return out
}

// Replace overwrites every field except the identifier, which is preserved
// from the lookup, never taken from the payload.
func (s *ItemStore) Replace(id int64, name string, price float64, deleted bool) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	item.Name = name
	item.Price = price
	item.Deleted = deleted

	cp := *item
	return &cp, nil
}

// Patch applies a partial field map against a closed allow-list. A deleted
// item is rejected with ErrItemDeleted before any field is inspected. All
// keys are validated before any mutation so a bad key leaves the item
// untouched.
func (s *ItemStore) Patch(id int64, updates map[string]any) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	if item.Deleted {
		return nil, fmt.Errorf("%w: id %d", ErrItemDeleted, id)
	}

	for key, value := range updates {
		if err := validatePatchField(key, value); err != nil {
			return nil, err
		}
	}
	for key, value := range updates {
		applyPatchField(item, key, value)
	}

	cp := *item
	return &cp, nil
}

// SoftDelete flips the flag and keeps the record. Deleting an already
// deleted item succeeds silently.
func (s *ItemStore) SoftDelete(id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	item.Deleted = true

	cp := *item
	return &cp, nil
}

func validatePatchField(key string, value any) error {
	switch key {
	case "name":
		if _, ok := value.(string); !ok {
			return &ValidationError{Field: "name", Reason: "must be a string"}
		}
	case "price":
		if _, ok := toFloat(value); !ok {
			return &ValidationError{Field: "price", Reason: "must be a number"}
		}
	case "deleted":
		// Clients cannot soft-delete through patch; a falsy value is a no-op
		// because a deleted item never reaches field processing.
		if isTruthy(value) {
			return &ValidationError{Field: "deleted", Reason: "cannot be modified"}
		}
	default:
		return &ValidationError{Field: key, Reason: "is not found"}
	}
	return nil
}

func applyPatchField(item *models.Item, key string, value any) {
	switch key {
	case "name":
		item.Name = value.(string)
	case "price":
		v, _ := toFloat(value)
		item.Price = v
	case "deleted":
		// validated falsy, nothing to change
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != ""
	}
	return true
}
