package nettime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log/logtest"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

func TestSync(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_000_000))
	tracker := New(WithClock(clock), WithLogger(logtest.New(t)))
	require.Equal(t, clock.Now(), tracker.Now())

	exec := NewMockexecutor(gomock.NewController(t))
	node := types.SwarmNode{IP: "1.1.1.1", Port: 1}
	exec.EXPECT().Execute(gomock.Any(), node, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ types.SwarmNode, reqs []request.SubRequest, _ ...batch.CallOpt) ([]batch.Result, error) {
			require.Len(t, reqs, 1)
			require.Equal(t, request.KindNetworkTime, reqs[0].Kind())
			return []batch.Result{{Code: 200, Body: json.RawMessage(`{"timestamp": 1005000}`)}}, nil
		})
	require.NoError(t, tracker.Sync(context.Background(), exec, node))
	require.Equal(t, 5*time.Second, tracker.Offset())
	require.Equal(t, time.UnixMilli(1_005_000), tracker.Now())

	clock.Advance(time.Second)
	require.Equal(t, time.UnixMilli(1_006_000), tracker.Now())
}

func TestSyncFailureKeepsOffset(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_000_000))
	tracker := New(WithClock(clock))
	exec := NewMockexecutor(gomock.NewController(t))
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]batch.Result{{Code: 200, Body: json.RawMessage(`{}`)}}, nil)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]batch.Result{{Code: 502}}, nil)

	require.ErrorIs(t, tracker.Sync(context.Background(), exec, types.SwarmNode{}), request.ErrMalformedBody)
	require.Error(t, tracker.Sync(context.Background(), exec, types.SwarmNode{}))
	require.Zero(t, tracker.Offset())
}
