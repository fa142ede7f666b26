package presets

import (
	"time"

	"github.com/swarmsend/go-swarmsend/config"
)

func init() {
	register("fastnet", fastnet())
}

// fastnet keeps the production seeds with short intervals and small caches, for load tests.
func fastnet() config.Config {
	conf := config.DefaultConfig()
	conf.Pool.SwarmCacheSize = 64
	conf.Pool.SwarmCacheTTL = 5 * time.Minute
	conf.Batch.RateLimit = 50
	conf.Batch.RateBurst = 10
	conf.Dispatch.DefaultTTL = 24 * time.Hour
	conf.ConfigSync.Interval = 10 * time.Second
	conf.PoolRefreshInterval = 10 * time.Minute
	return conf
}
