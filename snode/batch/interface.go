package batch

import (
	"context"
	"time"

	"github.com/swarmsend/go-swarmsend/common/types"
)

//go:generate mockgen -typed -package=batch -destination=./mocks.go -source=./interface.go

// Transport delivers an encoded call to a node and returns the raw response body.
type Transport interface {
	Post(ctx context.Context, node types.SwarmNode, body []byte, allow401 bool) ([]byte, error)
}

// TimeSource provides the timestamps signed into sub-requests.
type TimeSource interface {
	Now() time.Time
}
