package models

// CartLine is one position inside a cart. The wire field is "id" to match
// the public API contract, but it is the referenced item's identifier.
type CartLine struct {
	ItemID   int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}

type Cart struct {
	ID    int64      `json:"id"`
	Items []CartLine `json:"items"`
	Price float64    `json:"price"`
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, line := range c.Items {
		total += line.Quantity
	}
	return total
}

// Clone returns a deep copy so callers cannot mutate stored state through
// the returned lines slice.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = append([]CartLine(nil), c.Items...)
	return &cp
}
