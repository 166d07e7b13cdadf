// Package metrics defines and registers all custom Prometheus metrics for
// the vault API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Every metric is created with promauto, so it is registered with the
// default Prometheus registry when this package is initialised.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vault"

// ── Credential metrics ──────────────────────────────────────────────────────

// CredentialsMintedTotal counts bearer credentials minted.
// Label:
//   - kind: "access" or "refresh"
var CredentialsMintedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_minted_total",
		Help:      "Total number of bearer credentials minted, by kind.",
	},
	[]string{"kind"},
)

// CredentialsVerifiedTotal counts verification attempts against the token core.
// Label:
//   - result: "ok", "expired", "bad_signature", or "malformed"
var CredentialsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_verified_total",
		Help:      "Total number of credential verification attempts, by result.",
	},
	[]string{"result"},
)

// RevocationRegistrySize tracks the current number of entries held by the
// in-memory revocation registry.
var RevocationRegistrySize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "revocation_registry_size",
		Help:      "Current number of token ids held in the revocation registry.",
	},
)

// ReaperSweepsTotal counts completed reaper sweep cycles.
var ReaperSweepsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reaper_sweeps_total",
		Help:      "Total number of revocation registry sweep cycles run by the reaper.",
	},
)

// ReaperEvictionsTotal counts entries evicted by the reaper across all sweeps.
var ReaperEvictionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reaper_evictions_total",
		Help:      "Total number of expired revocation entries evicted by the reaper.",
	},
)

// ── Process metrics ──────────────────────────────────────────────────────────

// ProcessesCreatedTotal counts newly created confidential processes.
var ProcessesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "processes_created_total",
		Help:      "Total number of confidential processes created.",
	},
)

// SharesAnchoredTotal counts share grants successfully anchored on the ledger.
var SharesAnchoredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shares_anchored_total",
		Help:      "Total number of share grants anchored on the ledger.",
	},
)

// AccessesTotal counts access attempts against shared processes.
// Label:
//   - result: "granted", "forbidden", "not_shared", or "integrity_failure"
var AccessesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accesses_total",
		Help:      "Total number of process access attempts, by result.",
	},
	[]string{"result"},
)

// LedgerCallDuration measures ledger transport round-trip latency.
// Label:
//   - operation: "anchor_share"
var LedgerCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_call_duration_seconds",
		Help:      "Duration of ledger transport calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ProcessCacheTotal counts read-through cache outcomes.
// Label:
//   - result: "hit" or "miss"
var ProcessCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "process_cache_total",
		Help:      "Total number of process cache lookups, by result.",
	},
	[]string{"result"},
)
