package node

import "github.com/swarmsend/go-swarmsend/metrics"

const subsystem = "app"

var appVersion = metrics.NewGauge("version", subsystem, "Version of the running node", []string{"version"})
