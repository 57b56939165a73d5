package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxyshop_orders_created_total",
		Help: "Orders persisted from completed drafts",
	})

	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proxyshop_orders_submitted_total",
		Help: "Orders routed to the manager channel",
	})

	ManagerDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proxyshop_manager_decisions_total",
		Help: "Manager confirm/cancel decisions applied to orders",
	}, []string{"decision"})
)
