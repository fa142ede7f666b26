package log

import "go.uber.org/zap"

// RetryableHTTPLogger is a wrapper around zap.Logger to make it compatible with
// the retryablehttp.LeveledLogger interface.
type RetryableHTTPLogger struct {
	inner *zap.SugaredLogger
}

func NewRetryableHTTPLogger(logger *zap.Logger) RetryableHTTPLogger {
	return RetryableHTTPLogger{inner: logger.Sugar()}
}

func (r RetryableHTTPLogger) Error(format string, args ...any) {
	r.inner.Errorw(format, args...)
}

func (r RetryableHTTPLogger) Info(format string, args ...any) {
	r.inner.Infow(format, args...)
}

func (r RetryableHTTPLogger) Warn(format string, args ...any) {
	r.inner.Warnw(format, args...)
}

func (r RetryableHTTPLogger) Debug(format string, args ...any) {
	r.inner.Debugw(format, args...)
}
