package batch

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log/logtest"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/signing"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

var testNode = types.SwarmNode{IP: "10.0.0.1", Port: 22021, PubkeyEd25519: "ed"}

type decodedCall struct {
	Method string `json:"method"`
	Params struct {
		Requests []struct {
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
		} `json:"requests"`
	} `json:"params"`
}

func decodeCall(tb testing.TB, body []byte) decodedCall {
	tb.Helper()
	var call decodedCall
	require.NoError(tb, json.Unmarshal(body, &call))
	return call
}

func results(codes ...int) []byte {
	var resp wireResponse
	for _, c := range codes {
		resp.Results = append(resp.Results, Result{Code: c, Body: json.RawMessage(`{}`)})
	}
	data, _ := json.Marshal(resp)
	return data
}

func storeMessage(tb testing.TB) request.SubRequest {
	tb.Helper()
	dest := types.PublicKey(types.UserPrefix + strings.Repeat("ab", 32))
	r, err := request.NewStoreUserMessage(dest, []byte("hi"), time.Hour, nil)
	require.NoError(tb, err)
	return r
}

func newTestExecutor(tb testing.TB, opts ...Opt) (*Executor, *MockTransport, clockwork.FakeClock) {
	tb.Helper()
	transport := NewMockTransport(gomock.NewController(tb))
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000))
	opts = append([]Opt{WithTimeSource(clock), WithLogger(logtest.New(tb))}, opts...)
	return New(transport, opts...), transport, clock
}

func TestExecuteLimits(t *testing.T) {
	exec, _, _ := newTestExecutor(t)
	_, err := exec.Execute(context.Background(), testNode, nil)
	require.ErrorIs(t, err, ErrEmptyBatch)

	reqs := make([]request.SubRequest, request.MaxSubRequests+1)
	for i := range reqs {
		reqs[i] = request.NewNetworkTime()
	}
	_, err = exec.Execute(context.Background(), testNode, reqs)
	require.ErrorIs(t, err, ErrTooManySubRequests)
}

func TestExecuteBatch(t *testing.T) {
	exec, transport, clock := newTestExecutor(t)
	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), false).DoAndReturn(
		func(_ context.Context, _ types.SwarmNode, body []byte, _ bool) ([]byte, error) {
			call := decodeCall(t, body)
			require.Equal(t, "batch", call.Method)
			require.Len(t, call.Params.Requests, 2)
			require.Equal(t, "store", call.Params.Requests[0].Method)
			require.EqualValues(t, clock.Now().UnixMilli(), call.Params.Requests[0].Params["timestamp"])
			require.Equal(t, "info", call.Params.Requests[1].Method)
			return results(200, 200), nil
		})
	rst, err := exec.Execute(context.Background(), testNode,
		[]request.SubRequest{storeMessage(t), request.NewNetworkTime()})
	require.NoError(t, err)
	require.Len(t, rst, 2)
	for _, r := range rst {
		require.True(t, r.OK())
		require.False(t, r.Skipped)
	}
}

func TestExecuteSortsByOrder(t *testing.T) {
	exec, transport, _ := newTestExecutor(t)
	group, err := signing.NewEdSigner()
	require.NoError(t, err)
	admin, err := signing.NewGroupSigner(
		types.BytesToPublicKey(types.GroupPrefix, group.PublicKey().Bytes()),
		signing.WithAdminKey(group.PrivateKey()),
	)
	require.NoError(t, err)
	info, err := request.NewStoreGroupConfig(admin, namespace.GroupInfo, []byte("info"), time.Hour)
	require.NoError(t, err)
	keys, err := request.NewStoreGroupConfig(admin, namespace.GroupKeys, []byte("keys"), time.Hour)
	require.NoError(t, err)
	del, err := request.NewDeleteHashesGroup(admin, []string{"h1"})
	require.NoError(t, err)

	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), false).DoAndReturn(
		func(_ context.Context, _ types.SwarmNode, body []byte, _ bool) ([]byte, error) {
			call := decodeCall(t, body)
			require.Equal(t, "sequence", call.Method)
			require.EqualValues(t, namespace.GroupKeys, call.Params.Requests[0].Params["namespace"])
			require.EqualValues(t, namespace.GroupInfo, call.Params.Requests[1].Params["namespace"])
			require.Equal(t, "delete", call.Params.Requests[2].Method)
			return results(200, 200, 200), nil
		})
	_, err = exec.Execute(context.Background(), testNode,
		[]request.SubRequest{info, keys, del}, WithMode(ModeSequence))
	require.NoError(t, err)
}

func TestExecuteSequencePadding(t *testing.T) {
	exec, transport, _ := newTestExecutor(t)
	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), false).Return(results(500), nil)
	rst, err := exec.Execute(context.Background(), testNode,
		[]request.SubRequest{storeMessage(t), storeMessage(t), storeMessage(t)}, WithMode(ModeSequence))
	require.NoError(t, err)
	require.Len(t, rst, 3)
	require.Equal(t, 500, rst[0].Code)
	require.False(t, rst[0].Skipped)
	require.Equal(t, Result{Skipped: true}, rst[1])
	require.Equal(t, Result{Skipped: true}, rst[2])
}

func TestExecuteMalformed(t *testing.T) {
	for _, tc := range []struct {
		desc string
		mode Mode
		resp []byte
	}{
		{"batch with fewer results", ModeBatch, results(200)},
		{"sequence with more results", ModeSequence, results(200, 200, 200)},
		{"not json", ModeBatch, []byte("oops")},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			exec, transport, _ := newTestExecutor(t)
			transport.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.resp, nil)
			_, err := exec.Execute(context.Background(), testNode,
				[]request.SubRequest{storeMessage(t), storeMessage(t)}, WithMode(tc.mode))
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestExecuteTransportError(t *testing.T) {
	exec, transport, _ := newTestExecutor(t)
	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), true).
		Return(nil, &StatusError{Code: 401})
	_, err := exec.Execute(context.Background(), testNode,
		[]request.SubRequest{storeMessage(t)}, WithAllow401())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestExecuteCancelled(t *testing.T) {
	exec, transport, _ := newTestExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), false).DoAndReturn(
		func(context.Context, types.SwarmNode, []byte, bool) ([]byte, error) {
			cancel()
			return results(200), nil
		})
	rst, err := exec.Execute(ctx, testNode, []request.SubRequest{storeMessage(t)})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, rst)
}

func TestExecuteTimeout(t *testing.T) {
	exec, transport, _ := newTestExecutor(t)
	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), false).DoAndReturn(
		func(ctx context.Context, _ types.SwarmNode, _ []byte, _ bool) ([]byte, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			require.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
			<-ctx.Done()
			return nil, ctx.Err()
		})
	_, err := exec.Execute(context.Background(), testNode,
		[]request.SubRequest{storeMessage(t)}, WithTimeout(time.Second))
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExecuteRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	exec, transport, _ := newTestExecutor(t, WithConfig(cfg))
	transport.EXPECT().Post(gomock.Any(), testNode, gomock.Any(), false).Return(results(200), nil)
	_, err := exec.Execute(context.Background(), testNode, []request.SubRequest{storeMessage(t)})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = exec.Execute(ctx, testNode, []request.SubRequest{storeMessage(t)})
	require.Error(t, err)
}
