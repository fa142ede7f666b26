package batch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
)

var (
	ErrUnauthorized     = errors.New("batch: unauthorized")
	ErrClockOutOfSync   = errors.New("batch: clock out of sync")
	ErrWrongSwarm       = errors.New("batch: wrong swarm")
	ErrNodeStatus       = errors.New("batch: unexpected node status")
	ErrRetriesExhausted = errors.New("batch: retries exhausted")
)

// StatusError is a non-2xx answer of a node.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("node status %d: %s", e.Code, types.Shorten(string(e.Body), 64))
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotAcceptable:
		return ErrClockOutOfSync
	case http.StatusMisdirectedRequest:
		return ErrWrongSwarm
	}
	return ErrNodeStatus
}

// RPCPath is the storage endpoint of every node.
const RPCPath = "/storage_rpc/v1"

type TransportConfig struct {
	MaxRequestRetries int           `mapstructure:"max-request-retries"`
	RequestRetryDelay time.Duration `mapstructure:"request-retry-delay"`
	AttemptTimeout    time.Duration `mapstructure:"attempt-timeout"`
}

func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxRequestRetries: 3,
		RequestRetryDelay: 250 * time.Millisecond,
		AttemptTimeout:    5 * time.Second,
	}
}

type allow401Key struct{}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			allow, _ := ctx.Value(allow401Key{}).(bool)
			return allow && ctx.Err() == nil, nil
		case http.StatusNotAcceptable, http.StatusMisdirectedRequest:
			return false, nil
		}
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// HTTPTransport posts calls directly to the https endpoint of a node.
type HTTPTransport struct {
	cfg    TransportConfig
	client *retryablehttp.Client
	logger *zap.Logger
	scheme string
}

type TransportOpt func(*HTTPTransport)

func WithTransportConfig(cfg TransportConfig) TransportOpt {
	return func(t *HTTPTransport) {
		t.cfg = cfg
	}
}

func WithTransportLogger(logger *zap.Logger) TransportOpt {
	return func(t *HTTPTransport) {
		t.logger = logger
	}
}

func NewHTTPTransport(opts ...TransportOpt) *HTTPTransport {
	t := &HTTPTransport{
		cfg:    DefaultTransportConfig(),
		logger: zap.NewNop(),
		scheme: "https",
		client: &retryablehttp.Client{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.client.RetryMax = t.cfg.MaxRequestRetries
	t.client.RetryWaitMin = t.cfg.RequestRetryDelay
	t.client.RetryWaitMax = 2 * t.cfg.RequestRetryDelay
	t.client.Backoff = retryablehttp.DefaultBackoff
	t.client.CheckRetry = checkRetry
	t.client.ErrorHandler = t.handleError
	t.client.Logger = log.NewRetryableHTTPLogger(t.logger)
	t.client.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		t.logger.Debug("response received",
			zap.Stringer("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode),
		)
	}
	if t.client.HTTPClient == nil {
		t.client.HTTPClient = &http.Client{
			Timeout: t.cfg.AttemptTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				// nodes serve self-signed certificates
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return t
}

// handleError runs once the client gives up.
func (t *HTTPTransport) handleError(resp *http.Response, err error, attempts int) (*http.Response, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	if resp != nil {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts,
			&StatusError{Code: resp.StatusCode, Body: body})
	}
	if attempts > t.cfg.MaxRequestRetries {
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempts, err)
	}
	return nil, err
}

// Post implements Transport.
func (t *HTTPTransport) Post(ctx context.Context, node types.SwarmNode, body []byte, allow401 bool) ([]byte, error) {
	if allow401 {
		ctx = context.WithValue(ctx, allow401Key{}, true)
	}
	uri := t.scheme + "://" + node.Addr() + RPCPath
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, uri, body)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post to %s: %w", node, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response of %s: %w", node, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("post to %s: %w", node, &StatusError{Code: resp.StatusCode, Body: data})
	}
	return data, nil
}
