// Package metrics defines the Prometheus metrics for the intake client. It
// is the single source of truth for metric names, labels, and help strings;
// the series are exposed on the local debug listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "intake"

// RequestsTotal counts calls made to the consultation service.
// Label:
//   - op: the gateway operation (e.g. "assigned_cases", "add_solution")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of requests sent to the consultation service.",
	},
	[]string{"op"},
)

// RequestFailuresTotal counts failed calls to the consultation service.
// Labels:
//   - op: the gateway operation
//   - reason: "unauthorized", "expired", "not_found", or "transport"
var RequestFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_failures_total",
		Help:      "Total number of consultation service requests that failed, by reason.",
	},
	[]string{"op", "reason"},
)

// NotificationsTotal counts user-facing notifications emitted.
// Label:
//   - kind: "success" or "failure"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of user-facing notifications, by kind.",
	},
	[]string{"kind"},
)
