// Package metrics defines and registers the custom Prometheus metrics for
// the rental administration API. It is the single source of truth for
// metric names, labels, and help strings; promauto registers everything
// with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success", "failure", "reset_required", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts admin-issued account registrations.
// Label:
//   - role: "admin", "landlord", or "tenant"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts provisioned, by role.",
	},
	[]string{"role"},
)

// PasswordChangesTotal counts completed password changes.
// Label:
//   - kind: "self_service" or "forced_reset"
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of successful password changes, by kind.",
	},
	[]string{"kind"},
)

// NotificationsTotal counts outbound account notifications.
// Label:
//   - status: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of outbound account notifications, by delivery status.",
	},
	[]string{"status"},
)
