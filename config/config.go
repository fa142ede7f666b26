// Package config contains the swarmsend node configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/swarmsend/go-swarmsend/bootstrap"
	"github.com/swarmsend/go-swarmsend/configsync"
	"github.com/swarmsend/go-swarmsend/dispatch"
	"github.com/swarmsend/go-swarmsend/filesystem"
	"github.com/swarmsend/go-swarmsend/metrics"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/pool"
)

const (
	defaultDataDirName = "swarmsend"
	// EnvPrefix prefixes the environment variables overriding config values.
	EnvPrefix = "SWARMSEND"
)

var defaultDataDir = filepath.Join(filesystem.GetUserHomeDirectory(), defaultDataDirName)

// Config defines the top level configuration of a swarmsend node.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Preset     string                `mapstructure:"preset"`
	Seed       bootstrap.Config      `mapstructure:"seed"`
	Pool       pool.Config           `mapstructure:"pool"`
	Batch      batch.Config          `mapstructure:"batch"`
	Transport  batch.TransportConfig `mapstructure:"transport"`
	Dispatch   dispatch.Config       `mapstructure:"dispatch"`
	ConfigSync configsync.Config     `mapstructure:"configsync"`
	LOGGING    LoggerConfig          `mapstructure:"logging"`
}

// BaseConfig defines the options shared by every component.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`
	FileLock      string `mapstructure:"filelock"`
	// IdentityFile is the hex encoded ed25519 key of the account. Relative to DataDir.
	IdentityFile string `mapstructure:"identity-file"`

	DatabaseConnections int `mapstructure:"db-connections"`
	// DatabaseVacuum rebuilds the state database on startup.
	DatabaseVacuum bool `mapstructure:"db-vacuum"`

	CollectMetrics bool               `mapstructure:"metrics"`
	MetricsAddr    string             `mapstructure:"metrics-addr"`
	MetricsPush    metrics.PushConfig `mapstructure:"metrics-push"`

	// NetworkTimeInterval is how often the clock offset to the network is refreshed.
	NetworkTimeInterval time.Duration `mapstructure:"nettime-interval"`
	// PoolRefreshInterval is how often the node pool is refreshed from the network.
	PoolRefreshInterval time.Duration `mapstructure:"pool-refresh-interval"`
}

// DataDir returns the absolute path of the node's data.
func (cfg *Config) DataDir() string {
	return filesystem.GetCanonicalPath(cfg.DataDirParent)
}

// IdentityPath returns the path of the identity key file.
func (cfg *Config) IdentityPath() string {
	if filepath.IsAbs(cfg.IdentityFile) {
		return cfg.IdentityFile
	}
	return filepath.Join(cfg.DataDir(), cfg.IdentityFile)
}

// DefaultConfig returns the default configuration of a swarmsend node.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		Seed:       bootstrap.DefaultConfig(),
		Pool:       pool.DefaultConfig(),
		Batch:      batch.DefaultConfig(),
		Transport:  batch.DefaultTransportConfig(),
		Dispatch:   dispatch.DefaultConfig(),
		ConfigSync: configsync.DefaultConfig(),
		LOGGING:    DefaultLoggingConfig(),
	}
}

func defaultBaseConfig() BaseConfig {
	return BaseConfig{
		DataDirParent:       defaultDataDir,
		FileLock:            filepath.Join(defaultDataDir, "LOCK"),
		IdentityFile:        "identity.key",
		DatabaseConnections: 4,
		CollectMetrics:      false,
		MetricsAddr:         "127.0.0.1:9090",
		MetricsPush: metrics.PushConfig{
			Period: time.Minute,
		},
		NetworkTimeInterval: 10 * time.Minute,
		PoolRefreshInterval: time.Hour,
	}
}

// LoadConfig reads the config file at path into vip. An empty path reads nothing.
func LoadConfig(path string, vip *viper.Viper) error {
	if path == "" {
		return nil
	}
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

// Load overrides cfg with the values of the file at path and of SWARMSEND_ prefixed
// environment variables. Variables are named after the key path, for example
// SWARMSEND_POOL_MIN_POOL_SIZE.
func Load(cfg *Config, path string) error {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if err := bindEnv(vip, reflect.TypeOf(*cfg), ""); err != nil {
		return err
	}
	if err := LoadConfig(path, vip); err != nil {
		return err
	}
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		withZeroFields(),
		withIgnoreUntagged(),
		withErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// bindEnv registers every leaf key of t so that viper resolves it from the environment
// even when it is absent from the config file.
func bindEnv(vip *viper.Viper, t reflect.Type, prefix string) error {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := bindEnv(vip, field.Type, key); err != nil {
				return err
			}
			continue
		}
		if err := vip.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// withZeroFields replaces lists instead of decoding them element by element over the
// defaults.
func withZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func withIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func withErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
