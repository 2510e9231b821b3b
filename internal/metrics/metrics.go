package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuditWriteFailures counts audit rows that could not be persisted. The
// business flow never fails on audit errors, so this counter is the only
// durable signal that the trail is losing entries.
var AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gestor",
	Subsystem: "audit",
	Name:      "write_failures_total",
	Help:      "Audit rows dropped because the insert failed.",
})

// AuthDecisions counts gate outcomes by result.
var AuthDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gestor",
	Subsystem: "authz",
	Name:      "decisions_total",
	Help:      "Authorization gate decisions by outcome.",
}, []string{"outcome"})

// Gate outcome label values.
const (
	OutcomeAllowed      = "allowed"
	OutcomeMissingToken = "missing_token"
	OutcomeInvalid      = "invalid_session"
	OutcomeDenied       = "permission_denied"
	OutcomeError        = "error"
)
