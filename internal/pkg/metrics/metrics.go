// Package metrics defines and registers the custom Prometheus metrics of the
// journal API. It is the single source of truth for metric names, labels and
// help strings.
//
// All collectors register with the default registry at package init through
// promauto; HTTP request metrics are added separately by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "journal"

// ── Identity metrics ──────────────────────────────────────────────────────────

// LoginsTotal counts completed login attempts.
// Labels:
//   - method: "demo" or "oauth"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// FederationFailuresTotal counts OAuth logins that ended without a token.
// Label:
//   - reason: the error code sent to the front end ("no_email", "federation_failed")
var FederationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "federation_failures_total",
		Help:      "Total number of federated logins that failed, by reason.",
	},
	[]string{"reason"},
)

// TokenVerificationsTotal counts bearer token checks.
// Label:
//   - result: "valid" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Journal metrics ───────────────────────────────────────────────────────────

// EntriesCreatedTotal counts journal entries written.
// Label:
//   - mood: "low" (1-3), "mid" (4-7) or "high" (8-10)
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of journal entries created, by mood band.",
	},
	[]string{"mood"},
)

// SettingsUpdatesTotal counts settings replacements.
var SettingsUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settings_updates_total",
		Help:      "Total number of settings replacements.",
	},
)
