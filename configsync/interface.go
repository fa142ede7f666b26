package configsync

import (
	"context"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/signing"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

//go:generate mockgen -typed -package=configsync -destination=./mocks.go -source=./interface.go

type executor interface {
	Execute(
		ctx context.Context,
		node types.SwarmNode,
		reqs []request.SubRequest,
		opts ...batch.CallOpt,
	) ([]batch.Result, error)
}

type swarmResolver interface {
	SwarmFor(ctx context.Context, pk types.PublicKey) ([]types.SwarmNode, error)
}

type groupSigners interface {
	GroupSigner(group types.PublicKey) (*signing.GroupSigner, error)
}
