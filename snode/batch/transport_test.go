package batch

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log/logtest"
)

func nodeOf(tb testing.TB, srv *httptest.Server) types.SwarmNode {
	tb.Helper()
	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(tb, err)
	p, err := strconv.Atoi(port)
	require.NoError(tb, err)
	return types.SwarmNode{IP: host, Port: p}
}

func testTransport(tb testing.TB) *HTTPTransport {
	cfg := DefaultTransportConfig()
	cfg.MaxRequestRetries = 2
	cfg.RequestRetryDelay = time.Millisecond
	return NewHTTPTransport(WithTransportConfig(cfg), WithTransportLogger(logtest.New(tb)))
}

type statusServer struct {
	requests atomic.Int32
	statuses []int
}

func (s *statusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := int(s.requests.Add(1)) - 1
	status := s.statuses[min(n, len(s.statuses)-1)]
	if r.URL.Path != RPCPath {
		status = http.StatusNotFound
	}
	body, _ := io.ReadAll(r.Body)
	w.WriteHeader(status)
	w.Write(body)
}

func TestHTTPTransport(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		statuses []int
		allow401 bool
		requests int32
		err      error
	}{
		{desc: "ok", statuses: []int{200}, requests: 1},
		{desc: "retry server error", statuses: []int{503, 200}, requests: 2},
		{desc: "server error exhausted", statuses: []int{503}, requests: 3, err: ErrRetriesExhausted},
		{desc: "401 is terminal", statuses: []int{401, 200}, requests: 1, err: ErrUnauthorized},
		{desc: "401 retried when allowed", statuses: []int{401, 200}, allow401: true, requests: 2},
		{desc: "401 exhausted", statuses: []int{401}, allow401: true, requests: 3, err: ErrUnauthorized},
		{desc: "clock out of sync", statuses: []int{406}, requests: 1, err: ErrClockOutOfSync},
		{desc: "wrong swarm", statuses: []int{421}, requests: 1, err: ErrWrongSwarm},
		{desc: "bad request", statuses: []int{400}, requests: 1, err: ErrNodeStatus},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			handler := &statusServer{statuses: tc.statuses}
			srv := httptest.NewTLSServer(handler)
			t.Cleanup(srv.Close)

			body, err := testTransport(t).Post(context.Background(), nodeOf(t, srv), []byte(`{"x":1}`), tc.allow401)
			require.Equal(t, tc.requests, handler.requests.Load())
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, `{"x":1}`, string(body))
		})
	}
}

func TestHTTPTransportWrongSwarmBody(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMisdirectedRequest)
		w.Write([]byte(`{"snodes":[]}`))
	}))
	t.Cleanup(srv.Close)

	_, err := testTransport(t).Post(context.Background(), nodeOf(t, srv), []byte(`{}`), false)
	var status *StatusError
	require.ErrorAs(t, err, &status)
	require.Equal(t, http.StatusMisdirectedRequest, status.Code)
	require.Equal(t, `{"snodes":[]}`, string(status.Body))
}

func TestHTTPTransportCancelled(t *testing.T) {
	handler := &statusServer{statuses: []int{503}}
	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testTransport(t).Post(ctx, nodeOf(t, srv), []byte(`{}`), false)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrRetriesExhausted)
}

func TestHTTPTransportUnreachable(t *testing.T) {
	srv := httptest.NewTLSServer(http.NotFoundHandler())
	node := nodeOf(t, srv)
	srv.Close()

	_, err := testTransport(t).Post(context.Background(), node, []byte(`{}`), false)
	require.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestHTTPTransportBackoffDoubles(t *testing.T) {
	tr := testTransport(t)
	wait := func(attempt int) time.Duration {
		return tr.client.Backoff(10*time.Millisecond, time.Second, attempt, nil)
	}
	require.Equal(t, 10*time.Millisecond, wait(0))
	require.Equal(t, 40*time.Millisecond, wait(2))
	require.Equal(t, 80*time.Millisecond, wait(3))
	require.Equal(t, time.Second, wait(10))
}
