package presets

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/swarmsend/go-swarmsend/config"
)

func init() {
	register("standalone", standalone())
}

// standalone talks to a local development network with a handful of nodes.
func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.DataDirParent = filepath.Join(os.TempDir(), "swarmsend")
	conf.FileLock = filepath.Join(conf.DataDirParent, "LOCK")

	conf.Seed.URLs = []string{"http://127.0.0.1:22023/json_rpc"}
	conf.Seed.RequestTimeout = 5 * time.Second

	conf.Pool.MinPoolSize = 1
	conf.Pool.ConsensusNodes = 1
	conf.Pool.RequiredAgreement = 1
	conf.Pool.SwarmCacheTTL = time.Minute

	conf.Batch.RequestTimeout = 5 * time.Second
	conf.Transport.MaxRequestRetries = 1
	conf.ConfigSync.Interval = 5 * time.Second
	conf.NetworkTimeInterval = time.Minute
	conf.PoolRefreshInterval = 5 * time.Minute

	conf.LOGGING.AppLoggerLevel = zapcore.DebugLevel.String()
	conf.LOGGING.PoolLoggerLevel = zapcore.DebugLevel.String()
	conf.LOGGING.DispatchLoggerLevel = zapcore.DebugLevel.String()
	return conf
}
