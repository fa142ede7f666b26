// Package bootstrap fetches the initial list of storage nodes from the seed nodes.
package bootstrap

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

const (
	DirName  = "seed"
	FileName = "nodes.json"
)

var (
	// ErrEmptySeed is returned when no seed returned a usable node.
	ErrEmptySeed = errors.New("seed: empty node list")
	// ErrNoSeeds is returned when no seed url is configured.
	ErrNoSeeds = errors.New("seed: no seed urls configured")
	// ErrInvalidResponse is returned for a response not matching the schema.
	ErrInvalidResponse = errors.New("seed: invalid response")
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("seed.schema.json", schemaJSON)

type Config struct {
	URLs              []string      `mapstructure:"seed-urls"`
	DataDir           string        `mapstructure:"data-dir"`
	RequestTimeout    time.Duration `mapstructure:"seed-request-timeout"`
	MaxRequestRetries int           `mapstructure:"seed-max-retries"`
	RequestRetryDelay time.Duration `mapstructure:"seed-retry-delay"`
}

func DefaultConfig() Config {
	return Config{
		URLs: []string{
			"https://seed1.getsession.org/json_rpc",
			"https://seed2.getsession.org/json_rpc",
			"https://seed3.getsession.org/json_rpc",
		},
		DataDir:           os.TempDir(),
		RequestTimeout:    10 * time.Second,
		MaxRequestRetries: 2,
		RequestRetryDelay: 500 * time.Millisecond,
	}
}

type retryClient struct {
	client *retryablehttp.Client
}

func (c *retryClient) Query(ctx context.Context, uri string, body []byte) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, uri, body)
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query seed %s: %w", uri, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read seed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed %s: unexpected status %s", uri, resp.Status)
	}
	return data, nil
}

// Seeder queries seed nodes for the list of active storage nodes.
type Seeder struct {
	cfg    Config
	logger *zap.Logger
	fs     afero.Fs
	client httpclient
}

type Opt func(*Seeder)

func WithConfig(cfg Config) Opt {
	return func(s *Seeder) {
		s.cfg = cfg
	}
}

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Seeder) {
		s.logger = logger
	}
}

func WithFilesystem(fs afero.Fs) Opt {
	return func(s *Seeder) {
		s.fs = fs
	}
}

func withHTTPClient(c httpclient) Opt {
	return func(s *Seeder) {
		s.client = c
	}
}

func New(opts ...Opt) *Seeder {
	s := &Seeder{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
		fs:     afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &retryClient{client: &retryablehttp.Client{
			HTTPClient:   &http.Client{Timeout: s.cfg.RequestTimeout},
			RetryMax:     s.cfg.MaxRequestRetries,
			RetryWaitMin: s.cfg.RequestRetryDelay,
			RetryWaitMax: 2 * s.cfg.RequestRetryDelay,
			Backoff:      retryablehttp.LinearJitterBackoff,
			CheckRetry:   retryablehttp.DefaultRetryPolicy,
			Logger:       log.NewRetryableHTTPLogger(s.logger),
		}}
	}
	return s
}

func rpcBody() ([]byte, error) {
	return json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      "0",
		"method":  "get_service_nodes",
		"params":  request.ServiceNodesParams(),
	})
}

// Fetch tries every configured seed in random order and returns the first non-empty list.
// The list is persisted so that it can be reloaded with Load.
func (s *Seeder) Fetch(ctx context.Context) ([]types.SwarmNode, error) {
	if len(s.cfg.URLs) == 0 {
		return nil, ErrNoSeeds
	}
	body, err := rpcBody()
	if err != nil {
		return nil, fmt.Errorf("encode seed request: %w", err)
	}
	urls := append([]string(nil), s.cfg.URLs...)
	rand.Shuffle(len(urls), func(i, j int) { urls[i], urls[j] = urls[j], urls[i] })

	var errs []error
	for _, uri := range urls {
		nodes, err := s.fetchOne(ctx, uri, body)
		if err == nil {
			if err := s.persist(nodes); err != nil {
				s.logger.Warn("failed to persist seed list", zap.Error(err))
			}
			s.logger.Info("fetched node list from seed",
				zap.String("seed", uri),
				zap.Int("nodes", len(nodes)),
			)
			return nodes, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Debug("seed request failed", zap.String("seed", uri), zap.Error(err))
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func (s *Seeder) fetchOne(ctx context.Context, uri string, body []byte) ([]types.SwarmNode, error) {
	data, err := s.client.Query(ctx, uri, body)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	nodes, err := request.ParseServiceNodes(data)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeed, uri)
	}
	return nodes, nil
}

func validateSchema(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// Load returns the last list persisted by Fetch.
func (s *Seeder) Load() ([]types.SwarmNode, error) {
	data, err := afero.ReadFile(s.fs, PersistFilename(s.cfg.DataDir))
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var nodes []types.SwarmNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	nodes = types.FilterUsable(nodes)
	if len(nodes) == 0 {
		return nil, ErrEmptySeed
	}
	return nodes, nil
}

func (s *Seeder) persist(nodes []types.SwarmNode) error {
	if len(s.cfg.DataDir) == 0 {
		return nil
	}
	dir := filepath.Join(s.cfg.DataDir, DirName)
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create seed dir: %w", err)
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("encode seed file: %w", err)
	}
	if err := afero.WriteFile(s.fs, PersistFilename(s.cfg.DataDir), data, 0o600); err != nil {
		return fmt.Errorf("persist seed: %w", err)
	}
	return nil
}

// PersistFilename is the location of the last fetched seed list.
func PersistFilename(dataDir string) string {
	return filepath.Join(dataDir, DirName, FileName)
}
