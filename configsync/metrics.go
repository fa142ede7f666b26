package configsync

import "github.com/swarmsend/go-swarmsend/metrics"

const subsystem = "configsync"

var (
	pushes = metrics.NewCounter(
		"pushes",
		subsystem,
		"number of config pushes by outcome",
		[]string{"outcome"},
	)
	pushesOK     = pushes.WithLabelValues("ok")
	pushesFailed = pushes.WithLabelValues("failed")

	dumpsWritten = metrics.NewCounter(
		"dumps_written",
		subsystem,
		"number of wrapper dumps written to the database",
		[]string{},
	).WithLabelValues()
)
