package store

import "lavka/internal/models"

// CartItemLinker joins the two stores for the add-to-cart operation.
type CartItemLinker struct {
	items *ItemStore
	carts *CartStore
}

func NewCartItemLinker(items *ItemStore, carts *CartStore) *CartItemLinker {
	return &CartItemLinker{items: items, carts: carts}
}

// Add links one unit of the item to the cart. The cart is resolved first so
// a missing cart wins over a missing item. The item lookup does not exclude
// deleted items: a soft-deleted item can still be added to a cart.
func (l *CartItemLinker) Add(cartID, itemID int64) (*models.Cart, error) {
	if _, err := l.carts.Get(cartID); err != nil {
		return nil, err
	}
	item, err := l.items.Get(itemID)
	if err != nil {
		return nil, err
	}
	return l.carts.AddLine(cartID, item.ID, item.Price)
}
