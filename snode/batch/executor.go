// Package batch sends groups of sub-requests to a single storage node in one call.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

var (
	ErrEmptyBatch         = errors.New("batch: no sub-requests")
	ErrTooManySubRequests = errors.New("batch: too many sub-requests")
	ErrMalformedResponse  = errors.New("batch: malformed response")
)

// Mode is the wire method of a call.
type Mode string

const (
	// ModeBatch runs every sub-request independently.
	ModeBatch Mode = "batch"
	// ModeSequence runs sub-requests in order and stops at the first failure.
	ModeSequence Mode = "sequence"
)

// Result is the outcome of a single sub-request.
type Result struct {
	Code int             `json:"code"`
	Body json.RawMessage `json:"body"`
	// Skipped is set for sub-requests a sequence call never reached.
	Skipped bool `json:"-"`
}

// OK returns true for a 2xx code.
func (r Result) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

type Config struct {
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	// RateLimit caps outgoing calls per second, 0 disables the limiter.
	RateLimit float64 `mapstructure:"rate-limit"`
	RateBurst int     `mapstructure:"rate-burst"`
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout: 10 * time.Second,
		RateLimit:      0,
		RateBurst:      10,
	}
}

// Executor builds, signs and sends sub-requests.
type Executor struct {
	cfg       Config
	logger    *zap.Logger
	transport Transport
	time      TimeSource
	limiter   *rate.Limiter
}

type Opt func(*Executor)

func WithConfig(cfg Config) Opt {
	return func(e *Executor) {
		e.cfg = cfg
	}
}

func WithLogger(logger *zap.Logger) Opt {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithTimeSource sets the source of signed timestamps, usually the network time tracker.
func WithTimeSource(ts TimeSource) Opt {
	return func(e *Executor) {
		e.time = ts
	}
}

func New(transport Transport, opts ...Opt) *Executor {
	e := &Executor{
		cfg:       DefaultConfig(),
		logger:    zap.NewNop(),
		transport: transport,
		time:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.RateLimit > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(e.cfg.RateLimit), max(e.cfg.RateBurst, 1))
	}
	return e
}

type callOpts struct {
	mode     Mode
	timeout  time.Duration
	allow401 bool
}

// CallOpt configures a single Execute call.
type CallOpt func(*callOpts)

func WithMode(mode Mode) CallOpt {
	return func(o *callOpts) {
		o.mode = mode
	}
}

// WithTimeout overrides the configured deadline of the call.
func WithTimeout(timeout time.Duration) CallOpt {
	return func(o *callOpts) {
		o.timeout = timeout
	}
}

// WithAllow401 lets the transport retry a 401 answer.
func WithAllow401() CallOpt {
	return func(o *callOpts) {
		o.allow401 = true
	}
}

type wireRequest struct {
	Method Mode `json:"method"`
	Params struct {
		Requests []request.Built `json:"requests"`
	} `json:"params"`
}

type wireResponse struct {
	Results []Result `json:"results"`
}

// Execute sends reqs to node in one call. Sub-requests are sorted by their order before
// they are built. Results are returned in the sorted order.
func (e *Executor) Execute(
	ctx context.Context,
	node types.SwarmNode,
	reqs []request.SubRequest,
	opts ...CallOpt,
) ([]Result, error) {
	o := callOpts{mode: ModeBatch, timeout: e.cfg.RequestTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case len(reqs) == 0:
		return nil, ErrEmptyBatch
	case len(reqs) > request.MaxSubRequests:
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySubRequests, len(reqs), request.MaxSubRequests)
	}
	sorted := append([]request.SubRequest(nil), reqs...)
	request.SortByOrder(sorted)

	var wire wireRequest
	wire.Method = o.mode
	now := e.time.Now()
	for _, sr := range sorted {
		built, err := request.Build(sr, now)
		if err != nil {
			return nil, err
		}
		wire.Params.Requests = append(wire.Params.Requests, built)
	}
	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", o.mode, err)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	subRequests.Observe(float64(len(sorted)))
	raw, err := e.transport.Post(ctx, node, body, o.allow401)
	callDuration.WithLabelValues(string(o.mode)).Observe(time.Since(start).Seconds())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		callsFailed.WithLabelValues(string(o.mode)).Inc()
		e.logger.Debug("call failed",
			zap.Stringer("node", node),
			zap.String("mode", string(o.mode)),
			zap.Int("subrequests", len(sorted)),
			zap.Error(err),
		)
		return nil, err
	}

	results, err := decodeResults(raw, len(sorted), o.mode)
	if err != nil {
		callsFailed.WithLabelValues(string(o.mode)).Inc()
		return nil, fmt.Errorf("%s to %s: %w", o.mode, node, err)
	}
	callsOK.WithLabelValues(string(o.mode)).Inc()
	e.logger.Debug("call completed",
		zap.Stringer("node", node),
		zap.String("mode", string(o.mode)),
		zap.Int("subrequests", len(sorted)),
	)
	return results, nil
}

func decodeResults(raw []byte, expected int, mode Mode) ([]Result, error) {
	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	n := len(resp.Results)
	switch {
	case n == expected:
		return resp.Results, nil
	case mode == ModeSequence && n < expected:
		for range expected - n {
			resp.Results = append(resp.Results, Result{Skipped: true})
		}
		return resp.Results, nil
	}
	return nil, fmt.Errorf("%w: %d results for %d sub-requests", ErrMalformedResponse, n, expected)
}
