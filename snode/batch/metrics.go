package batch

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swarmsend/go-swarmsend/metrics"
)

const subsystem = "batch"

var (
	calls = metrics.NewCounter(
		"calls",
		subsystem,
		"number of calls to storage nodes",
		[]string{"mode", "outcome"},
	)
	callsOK     = calls.MustCurryWith(prometheus.Labels{"outcome": "ok"})
	callsFailed = calls.MustCurryWith(prometheus.Labels{"outcome": "failed"})

	callDuration = metrics.NewHistogramWithBuckets(
		"call_duration_seconds",
		subsystem,
		"duration of calls to storage nodes",
		[]string{"mode"},
		prometheus.ExponentialBuckets(0.05, 2, 10),
	)

	subRequests = metrics.NewHistogramWithBuckets(
		"subrequests",
		subsystem,
		"number of sub-requests per call",
		[]string{},
		prometheus.LinearBuckets(1, 2, 10),
	).WithLabelValues()
)
