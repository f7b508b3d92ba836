// Package metrics defines the custom Prometheus metrics for the BeatBridge
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "beatbridge"

// RegistrationsTotal counts sign-up attempts.
// Label:
//   - result: "created", "conflict", "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts password-login attempts.
// Label:
//   - result: "success", "invalid_credentials", "unverified", "google_only"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// FederatedLoginsTotal counts Google callback reconciliations.
// Label:
//   - outcome: "reused", "linked", "created", "failed"
var FederatedLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "federated_logins_total",
		Help:      "Total number of Google login callbacks, by reconciliation outcome.",
	},
	[]string{"outcome"},
)

// VerificationEmailsTotal counts outbound verification and OTP emails.
// Labels:
//   - purpose: "signup" or "reset"
//   - result:  "sent" or "error"
var VerificationEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_emails_total",
		Help:      "Total number of verification/OTP emails attempted, by purpose and result.",
	},
	[]string{"purpose", "result"},
)

// PasswordResetsTotal counts completed password resets.
var PasswordResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of successful password resets.",
	},
)
