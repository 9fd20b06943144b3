// Package metrics defines and registers the custom Prometheus metrics
// for the user-management API. It is the single source of truth for
// metric names, labels, and help strings; registration happens on
// import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usersvc"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful self-service registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations.",
	},
)

// TokensIssuedTotal counts tokens handed out on register, login and refresh.
// Label:
//   - source: "register", "login" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of JWTs issued, by source endpoint.",
	},
	[]string{"source"},
)

// UserOperationsTotal counts directory mutations performed through the
// admin/self CRUD endpoints.
// Label:
//   - op: "create", "update" or "delete"
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of user directory mutations, by operation.",
	},
	[]string{"op"},
)
