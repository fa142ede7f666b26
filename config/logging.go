package config

import "go.uber.org/zap/zapcore"

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = "console"
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = "json"
)

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder             LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel      string     `mapstructure:"app"`
	SeedLoggerLevel     string     `mapstructure:"seed"`
	PoolLoggerLevel     string     `mapstructure:"pool"`
	BatchLoggerLevel    string     `mapstructure:"batch"`
	NetTimeLoggerLevel  string     `mapstructure:"nettime"`
	OutboxLoggerLevel   string     `mapstructure:"outbox"`
	DispatchLoggerLevel string     `mapstructure:"dispatch"`
	ConfigSyncLogLevel  string     `mapstructure:"configsync"`
	DatabaseLoggerLevel string     `mapstructure:"database"`
	MetricsLoggerLevel  string     `mapstructure:"metrics"`
}

// DefaultLoggingConfig logs at info level with the console encoder.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:             ConsoleLogEncoder,
		AppLoggerLevel:      defaultLoggingLevel.String(),
		SeedLoggerLevel:     defaultLoggingLevel.String(),
		PoolLoggerLevel:     defaultLoggingLevel.String(),
		BatchLoggerLevel:    zapcore.WarnLevel.String(),
		NetTimeLoggerLevel:  defaultLoggingLevel.String(),
		OutboxLoggerLevel:   defaultLoggingLevel.String(),
		DispatchLoggerLevel: defaultLoggingLevel.String(),
		ConfigSyncLogLevel:  defaultLoggingLevel.String(),
		DatabaseLoggerLevel: zapcore.WarnLevel.String(),
		MetricsLoggerLevel:  defaultLoggingLevel.String(),
	}
}
