package bootstrap

import (
	"context"
)

//go:generate mockgen -typed -package=bootstrap -destination=./mocks.go -source=./interface.go

type httpclient interface {
	Query(ctx context.Context, uri string, body []byte) ([]byte, error)
}
