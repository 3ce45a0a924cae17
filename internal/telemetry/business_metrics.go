// Package telemetry holds the business-level Prometheus metrics for the
// point of sale: the checkout funnel, sale values, and store health.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Checkout funnel
	SalesSubmitted *prometheus.CounterVec
	SalesRejected  *prometheus.CounterVec

	// Sale shape
	SaleValue     *prometheus.HistogramVec
	SaleItemCount *prometheus.HistogramVec

	// Store health
	StoreUnavailable prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "kassa"
	}

	subsystem := "business"

	return &BusinessMetrics{
		SalesSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sales_submitted_total",
				Help:      "Total sale submissions by outcome",
			},
			[]string{"outcome", "payment_method"}, // outcome: committed, local_fallback
		),
		SalesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sales_rejected_total",
				Help:      "Total sale submissions rejected before reaching the store",
			},
			[]string{"reason"}, // reason: empty_cart, no_payment_method, internal
		),
		SaleValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sale_value",
				Help:      "Sale total distribution in currency units",
				Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"outcome"},
		),
		SaleItemCount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sale_item_count",
				Help:      "Number of line items per sale",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
			[]string{"outcome"},
		),
		StoreUnavailable: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "store_unavailable_total",
				Help:      "Total sale store failures that triggered the local fallback",
			},
		),
	}
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
