package internal

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	transactCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipay_transactions_total",
			Help: "Gateway submissions by result",
		},
		[]string{"result"}, // ok|validation|transport|gateway
	)

	notifyCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ipay_notifications_total",
			Help: "Gateway callbacks received",
		},
	)
)

// RegisterMetrics adds the cashier collectors to the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(transactCounter)
	prometheus.MustRegister(notifyCounter)
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func resultLabel(err error) string {
	var transport *TransportError
	var gateway *GatewayError
	switch {
	case errors.As(err, &gateway):
		return "gateway"
	case errors.As(err, &transport):
		return "transport"
	default:
		return "validation"
	}
}
