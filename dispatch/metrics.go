package dispatch

import "github.com/swarmsend/go-swarmsend/metrics"

const subsystem = "dispatch"

var (
	sends = metrics.NewCounter(
		"sends",
		subsystem,
		"number of messages delivered or failed",
		[]string{"outcome"},
	)
	sendsOK     = sends.WithLabelValues("ok")
	sendsFailed = sends.WithLabelValues("failed")

	openGroupSends = metrics.NewCounter(
		"open_group_sends",
		subsystem,
		"number of open group messages sent or failed",
		[]string{"outcome"},
	)
	openGroupOK     = openGroupSends.WithLabelValues("ok")
	openGroupFailed = openGroupSends.WithLabelValues("failed")

	queueDepth = metrics.NewGauge(
		"queue_depth",
		subsystem,
		"number of queued or in flight messages",
		[]string{},
	).WithLabelValues()

	sendDuration = metrics.NewHistogramWithBuckets(
		"send_duration",
		subsystem,
		"duration of a message delivery in seconds",
		[]string{},
		[]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	).WithLabelValues()
)
