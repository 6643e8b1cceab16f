package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_registrations_total",
		Help: "Total number of registrations that produced an activation email.",
	})

	activationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_activations_total",
		Help: "Total number of successfully activated accounts.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	sessionVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_session_verifications_total",
			Help: "Total number of session cookie verifications by status.",
		},
		[]string{"status"},
	)

	ordersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "store_orders_placed_total",
		Help: "Total number of successfully placed orders.",
	})
)
