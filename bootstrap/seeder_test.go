package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log/logtest"
)

const seedResponse = `{
  "result": {
    "service_node_states": [
      {"public_ip": "1.1.1.1", "storage_port": 22021, "pubkey_x25519": "aa", "pubkey_ed25519": "bb", "storage_server_version": [2, 8, 0]},
      {"public_ip": "0.0.0.0", "storage_port": 22021, "pubkey_x25519": "cc", "pubkey_ed25519": "dd", "storage_server_version": [2, 8, 0]},
      {"public_ip": "2.2.2.2", "storage_port": 22022, "pubkey_x25519": "ee", "pubkey_ed25519": "ff", "storage_server_version": [2, 7, 1]}
    ]
  }
}`

var expectedNodes = []types.SwarmNode{
	{IP: "1.1.1.1", Port: 22021, PubkeyX25519: "aa", PubkeyEd25519: "bb", Version: "2.8.0"},
	{IP: "2.2.2.2", Port: 22022, PubkeyX25519: "ee", PubkeyEd25519: "ff", Version: "2.7.1"},
}

func testConfig(urls ...string) Config {
	cfg := DefaultConfig()
	cfg.URLs = urls
	cfg.DataDir = "/data"
	cfg.RequestRetryDelay = time.Millisecond
	return cfg
}

func TestFetch(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.Equal(t, "get_service_nodes", req.Method)
		require.Equal(t, true, req.Params["active_only"])
		require.NotContains(t, req.Params, "limit")
		w.Write([]byte(seedResponse))
	}))
	t.Cleanup(srv.Close)

	fs := afero.NewMemMapFs()
	seeder := New(
		WithConfig(testConfig(srv.URL)),
		WithFilesystem(fs),
		WithLogger(logtest.New(t)),
	)
	nodes, err := seeder.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, expectedNodes, nodes)
	require.EqualValues(t, 1, requests.Load())

	exists, err := afero.Exists(fs, PersistFilename("/data"))
	require.NoError(t, err)
	require.True(t, exists)

	loaded, err := seeder.Load()
	require.NoError(t, err)
	require.Equal(t, expectedNodes, loaded)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(seedResponse))
	}))
	t.Cleanup(srv.Close)

	seeder := New(WithConfig(testConfig(srv.URL)), WithFilesystem(afero.NewMemMapFs()))
	nodes, err := seeder.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.EqualValues(t, 2, requests.Load())
}

func TestFetchFallsBackToNextSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockhttpclient(ctrl)
	client.EXPECT().Query(gomock.Any(), "https://bad", gomock.Any()).Return(nil, errors.New("refused")).MaxTimes(1)
	client.EXPECT().Query(gomock.Any(), "https://good", gomock.Any()).Return([]byte(seedResponse), nil)

	seeder := New(
		WithConfig(testConfig("https://bad", "https://good")),
		WithFilesystem(afero.NewMemMapFs()),
		withHTTPClient(client),
	)
	nodes, err := seeder.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, expectedNodes, nodes)
}

func TestFetchRejectsInvalid(t *testing.T) {
	for _, tc := range []struct {
		desc string
		body string
		err  error
	}{
		{"not json", "<html>", ErrInvalidResponse},
		{"no result", `{"error": "busy"}`, ErrInvalidResponse},
		{"port is string", `{"result": {"service_node_states": [
			{"public_ip": "1.1.1.1", "storage_port": "22021", "pubkey_ed25519": "bb"}]}}`, ErrInvalidResponse},
		{"port out of range", `{"result": {"service_node_states": [
			{"public_ip": "1.1.1.1", "storage_port": 70000, "pubkey_ed25519": "bb"}]}}`, ErrInvalidResponse},
		{"empty", `{"result": {"service_node_states": []}}`, ErrEmptySeed},
		{"only null ips", `{"result": {"service_node_states": [
			{"public_ip": "0.0.0.0", "storage_port": 1, "pubkey_ed25519": "bb"}]}}`, ErrEmptySeed},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := NewMockhttpclient(ctrl)
			client.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte(tc.body), nil)

			fs := afero.NewMemMapFs()
			seeder := New(
				WithConfig(testConfig("https://seed")),
				WithFilesystem(fs),
				withHTTPClient(client),
			)
			_, err := seeder.Fetch(context.Background())
			require.ErrorIs(t, err, tc.err)

			exists, err := afero.Exists(fs, PersistFilename("/data"))
			require.NoError(t, err)
			require.False(t, exists)
		})
	}
}

func TestFetchNoSeeds(t *testing.T) {
	seeder := New(WithConfig(testConfig()), WithFilesystem(afero.NewMemMapFs()))
	_, err := seeder.Fetch(context.Background())
	require.ErrorIs(t, err, ErrNoSeeds)
}

func TestLoadMissing(t *testing.T) {
	seeder := New(WithConfig(testConfig("https://seed")), WithFilesystem(afero.NewMemMapFs()))
	_, err := seeder.Load()
	require.Error(t, err)
}
