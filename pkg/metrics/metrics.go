package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// InfluencerUpdateOutcomes counts terminal states of the influencer
	// update workflow: succeeded, failed, compensating_then_failed.
	InfluencerUpdateOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "influencer_update_total",
			Help: "Terminal outcomes of influencer update requests",
		},
		[]string{"outcome"},
	)

	// AuthCompensationAttempts counts individual auth rollback calls by
	// result (restored, failed). Failed attempts mean the identity service
	// and the profile store are diverged until reconciled manually.
	AuthCompensationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_compensation_attempts_total",
			Help: "Best-effort auth rollback attempts by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(InfluencerUpdateOutcomes, AuthCompensationAttempts)
}

// Handler returns the /metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
