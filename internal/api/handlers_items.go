package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"lavka/internal/events"
	"lavka/internal/metrics"
	"lavka/internal/store"
)

type itemPayload struct {
	Name    string   `json:"name"`
	Price   *float64 `json:"price"`
	Deleted bool     `json:"deleted"`
}

func decodeItemPayload(r *http.Request) (*itemPayload, error) {
	var body itemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	if body.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if body.Price == nil || *body.Price < 0 {
		return nil, fmt.Errorf("price must be a non-negative number")
	}
	return &body, nil
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	body, err := decodeItemPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := s.items.Create(body.Name, *body.Price)
	metrics.IncItemsCreated()
	s.publish(events.EventItemCreated, events.ItemEventPayload{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
	})

	w.Header().Set("Location", fmt.Sprintf("/item/%d", item.ID))
	writeJSON(w, http.StatusCreated, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Get(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	// Deleted items stay addressable internally but are hidden from direct
	// external reads.
	if item.Deleted {
		writeError(w, http.StatusNotFound, "item deleted")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
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
	showDeleted, err := parseBoolParam(q, "show_deleted")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := s.items.List(store.ItemFilter{
		Offset:      page.offset,
		Limit:       page.limit,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		ShowDeleted: showDeleted,
	})
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleReplaceItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := decodeItemPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.Replace(id, body.Name, *body.Price, body.Deleted)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.items.Patch(id, updates)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := s.items.SoftDelete(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	metrics.IncItemsDeleted()
	s.publish(events.EventItemDeleted, events.ItemEventPayload{
		ItemID: item.ID,
		Name:   item.Name,
		Price:  item.Price,
	})

	writeJSON(w, http.StatusOK, item)
}

// writeStoreError maps the core error taxonomy onto wire responses:
// not-found lookups turn into 404, patching a deleted item into 304,
// rejected fields into 422.
func (s *HTTPServer) writeStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrItemNotFound), errors.Is(err, store.ErrCartNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrItemDeleted):
		w.WriteHeader(http.StatusNotModified)
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *HTTPServer) publish(eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("publish event")
	}
}
