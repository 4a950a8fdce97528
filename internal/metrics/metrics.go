package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced         *prometheus.CounterVec
	OrderAmount          *prometheus.CounterVec
	PaymentVerifications *prometheus.CounterVec
	IntentLatencySec     prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "greencart_orders_placed_total"}, []string{"payment_type"})
	amount := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "greencart_order_amount_total"}, []string{"payment_type"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "greencart_payment_verifications_total"}, []string{"result"})
	intentLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "greencart_payment_intent_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(placed, amount, verifications, intentLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:                  r,
		OrdersPlaced:         placed,
		OrderAmount:          amount,
		PaymentVerifications: verifications,
		IntentLatencySec:     intentLatency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
