package api

import (
	"fmt"
	"net/http"

	"lavka/internal/events"
	"lavka/internal/metrics"
	"lavka/internal/store"
)

func (s *HTTPServer) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	cart := s.carts.Create()
	metrics.IncCartsCreated()
	s.publish(events.EventCartCreated, events.CartEventPayload{CartID: cart.ID})

	w.Header().Set("Location", fmt.Sprintf("/cart/%d", cart.ID))
	writeJSON(w, http.StatusCreated, map[string]int64{"id": cart.ID})
}

func (s *HTTPServer) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := s.carts.Get(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (s *HTTPServer) handleListCarts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePageParams(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	minPrice, err := parseOptionalPrice(q, "min_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxPrice, err := parseOptionalPrice(q, "max_price")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	minQuantity, err := parseOptionalQuantity(q, "min_quantity")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxQuantity, err := parseOptionalQuantity(q, "max_quantity")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	carts := s.carts.List(store.CartFilter{
		Offset:      page.offset,
		Limit:       page.limit,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		MinQuantity: minQuantity,
		MaxQuantity: maxQuantity,
	})
	writeJSON(w, http.StatusOK, carts)
}

func (s *HTTPServer) handleAddItemToCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := parsePathID(r, "cart_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := parsePathID(r, "item_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := s.linker.Add(cartID, itemID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	metrics.IncCartItemsAdded()
	s.publish(events.EventCartItemAdded, events.CartEventPayload{
		CartID:   cart.ID,
		ItemID:   itemID,
		Quantity: cart.TotalQuantity(),
		Price:    cart.Price,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "Item added"})
}
