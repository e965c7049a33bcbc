package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lavka",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	itemsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lavka",
			Name:      "items_created_total",
			Help:      "Catalog items created.",
		},
	)

	itemsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lavka",
			Name:      "items_deleted_total",
			Help:      "Catalog items soft-deleted.",
		},
	)

	cartsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lavka",
			Name:      "carts_created_total",
			Help:      "Carts created.",
		},
	)

	cartItemsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lavka",
			Name:      "cart_items_added_total",
			Help:      "Units added to carts.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, itemsCreated, itemsDeleted, cartsCreated, cartItemsAdded)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncItemsCreated() { itemsCreated.Inc() }

func IncItemsDeleted() { itemsDeleted.Inc() }

func IncCartsCreated() { cartsCreated.Inc() }

func IncCartItemsAdded() { cartItemsAdded.Inc() }
