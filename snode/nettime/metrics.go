package nettime

import "github.com/swarmsend/go-swarmsend/metrics"

var offsetSeconds = metrics.NewGauge(
	"offset_seconds",
	"nettime",
	"difference between the network clock and the local clock",
	[]string{},
).WithLabelValues()
