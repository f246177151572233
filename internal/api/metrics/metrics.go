// Package metrics defines and registers all custom Prometheus metrics for
// the books API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "books"

// BooksCreatedTotal counts books successfully created.
// Label:
//   - genre: the genre of the created book
var BooksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of books created, by genre.",
	},
	[]string{"genre"},
)

// BooksDeletedTotal counts books successfully deleted.
var BooksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of books deleted.",
	},
)

// AveragePriceQueriesTotal counts average-price-by-year queries.
// Label:
//   - outcome: "ok", "no_books", "bad_request" or "error"
var AveragePriceQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "average_price_queries_total",
		Help:      "Total number of average-price-by-year queries, by outcome.",
	},
	[]string{"outcome"},
)
