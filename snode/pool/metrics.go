package pool

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swarmsend/go-swarmsend/metrics"
)

const subsystem = "pool"

var (
	poolSize = metrics.NewGauge(
		"size",
		subsystem,
		"number of nodes in the local pool",
		[]string{},
	).WithLabelValues()

	refreshes = metrics.NewCounter(
		"refreshes",
		subsystem,
		"pool refreshes by source and outcome",
		[]string{"source", "outcome"},
	)
	seedOK           = refreshes.With(prometheus.Labels{"source": "seed", "outcome": "ok"})
	seedFailed       = refreshes.With(prometheus.Labels{"source": "seed", "outcome": "failed"})
	swarmOK          = refreshes.With(prometheus.Labels{"source": "swarm", "outcome": "ok"})
	swarmFailed      = refreshes.With(prometheus.Labels{"source": "swarm", "outcome": "failed"})
	swarmNoAgreement = refreshes.With(prometheus.Labels{"source": "swarm", "outcome": "no_consensus"})

	swarmLookups = metrics.NewCounter(
		"swarm_lookups",
		subsystem,
		"swarm lookups by cache outcome",
		[]string{"outcome"},
	)
	swarmHit  = swarmLookups.WithLabelValues("hit")
	swarmMiss = swarmLookups.WithLabelValues("miss")
)
