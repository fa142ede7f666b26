package outbox

import "github.com/swarmsend/go-swarmsend/metrics"

var pendingMessages = metrics.NewGauge(
	"pending_messages",
	"outbox",
	"number of messages waiting for delivery",
	[]string{},
).WithLabelValues()
