package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/swarmsend/go-swarmsend/config"
	"github.com/swarmsend/go-swarmsend/config/presets"
)

// AddFlags adds the node flags to flagSet, bound to cfg. It returns the path of the
// config file set with --config.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	configPath = flagSet.StringP("config", "c", "", "load configuration from file")
	flagSet.StringVarP(&cfg.Preset, "preset", "p", cfg.Preset,
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "specify data directory for swarmsend")
	flagSet.StringVar(&cfg.FileLock, "filelock",
		cfg.FileLock, "filesystem lock to prevent running more than one instance")
	flagSet.StringVar(&cfg.IdentityFile, "identity-file",
		cfg.IdentityFile, "identity key file, relative to the data directory")
	flagSet.BoolVar(&cfg.DatabaseVacuum, "db-vacuum",
		cfg.DatabaseVacuum, "rebuild the state database on startup")
	flagSet.BoolVar(&cfg.CollectMetrics, "metrics",
		cfg.CollectMetrics, "serve node metrics")
	flagSet.StringVar(&cfg.MetricsAddr, "metrics-addr",
		cfg.MetricsAddr, "address of the metrics server")
	flagSet.StringVar(&cfg.MetricsPush.URL, "metrics-push",
		cfg.MetricsPush.URL, "push metrics to url")
	flagSet.DurationVar(&cfg.MetricsPush.Period, "metrics-push-period",
		cfg.MetricsPush.Period, "push period")
	flagSet.DurationVar(&cfg.NetworkTimeInterval, "nettime-interval",
		cfg.NetworkTimeInterval, "interval between network time syncs")
	flagSet.DurationVar(&cfg.PoolRefreshInterval, "pool-refresh-interval",
		cfg.PoolRefreshInterval, "interval between node pool refreshes")

	/** ======================== Seed Flags ========================== **/
	flagSet.StringSliceVar(&cfg.Seed.URLs, "seed-urls",
		cfg.Seed.URLs, "json rpc endpoints of the seed nodes")
	flagSet.DurationVar(&cfg.Seed.RequestTimeout, "seed-request-timeout",
		cfg.Seed.RequestTimeout, "timeout of a seed request")

	/** ======================== Pool Flags ========================== **/
	flagSet.IntVar(&cfg.Pool.MinPoolSize, "min-pool-size",
		cfg.Pool.MinPoolSize, "pool size at or below which the pool is refreshed from the seeds")
	flagSet.IntVar(&cfg.Pool.RequiredAgreement, "required-agreement",
		cfg.Pool.RequiredAgreement, "number of nodes every queried node must agree on")

	/** ======================== Batch Flags ========================== **/
	flagSet.DurationVar(&cfg.Batch.RequestTimeout, "request-timeout",
		cfg.Batch.RequestTimeout, "timeout of a batch call")
	flagSet.IntVar(&cfg.Transport.MaxRequestRetries, "max-request-retries",
		cfg.Transport.MaxRequestRetries, "retries of a failed call to a node")

	/** ======================== Logging Flags ========================== **/
	flagSet.StringVar(&cfg.LOGGING.Encoder, "log-encoder",
		cfg.LOGGING.Encoder, "log as json or console")
	flagSet.StringVar(&cfg.LOGGING.AppLoggerLevel, "log-level",
		cfg.LOGGING.AppLoggerLevel, "level of the app logger")

	return configPath
}
