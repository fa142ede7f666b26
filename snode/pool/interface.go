package pool

import (
	"context"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

//go:generate mockgen -typed -package=pool -destination=./mocks.go -source=./interface.go

type executor interface {
	Execute(ctx context.Context, node types.SwarmNode, reqs []request.SubRequest, opts ...batch.CallOpt) ([]batch.Result, error)
}

type seeder interface {
	Fetch(ctx context.Context) ([]types.SwarmNode, error)
}
