package dispatch

import (
	"context"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/signing"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

//go:generate mockgen -typed -package=dispatch -destination=./mocks.go -source=./interface.go

// Sender stores a single message in the swarm of its destination.
type Sender interface {
	// Send returns the hash assigned by the swarm.
	Send(ctx context.Context, msg *types.OutgoingRawMessage) (string, error)
}

// OpenGroupSender posts messages to an open group server.
type OpenGroupSender interface {
	Send(ctx context.Context, msg *OpenGroupMessage) (serverID, serverTimestamp int64, err error)
}

// GroupSigners looks up the signing material of groups we are a member of.
type GroupSigners interface {
	GroupSigner(group types.PublicKey) (*signing.GroupSigner, error)
}

type swarmResolver interface {
	SwarmFor(ctx context.Context, pk types.PublicKey) ([]types.SwarmNode, error)
	SetSwarm(pk types.PublicKey, nodes []types.SwarmNode)
	DropFromSwarm(pk types.PublicKey, node types.SwarmNode)
}

type executor interface {
	Execute(
		ctx context.Context,
		node types.SwarmNode,
		reqs []request.SubRequest,
		opts ...batch.CallOpt,
	) ([]batch.Result, error)
}
