package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"

	"go.uber.org/zap"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/log"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/snode/batch"
	"github.com/swarmsend/go-swarmsend/snode/request"
)

var (
	// ErrDeliveryFailed is returned when every attempt to store a message failed.
	ErrDeliveryFailed = errors.New("dispatch: delivery failed")
	// ErrNoGroupSigners is returned for a group message when no group signers are configured.
	ErrNoGroupSigners = errors.New("dispatch: no group signers")
)

// SwarmSender stores messages by picking a random node of the destination swarm
// for every attempt.
type SwarmSender struct {
	logger   *zap.Logger
	attempts int

	user   request.UserSigner
	groups GroupSigners
	swarms swarmResolver
	exec   executor
}

type SenderOpt func(*SwarmSender)

func WithSenderLogger(logger *zap.Logger) SenderOpt {
	return func(s *SwarmSender) {
		s.logger = logger
	}
}

// WithAttempts sets how many nodes are tried before a message fails.
func WithAttempts(n int) SenderOpt {
	return func(s *SwarmSender) {
		s.attempts = max(n, 1)
	}
}

// WithGroupSigners enables sending to group swarms.
func WithGroupSigners(groups GroupSigners) SenderOpt {
	return func(s *SwarmSender) {
		s.groups = groups
	}
}

func NewSwarmSender(user request.UserSigner, swarms swarmResolver, exec executor, opts ...SenderOpt) *SwarmSender {
	s := &SwarmSender{
		logger:   zap.NewNop(),
		attempts: DefaultConfig().Attempts,
		user:     user,
		swarms:   swarms,
		exec:     exec,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send builds the store sub-request for msg and executes it. Construction and
// authorization errors are returned immediately, everything else is retried on another
// node of the swarm.
func (s *SwarmSender) Send(ctx context.Context, msg *types.OutgoingRawMessage) (string, error) {
	sr, err := s.subRequest(msg)
	if err != nil {
		return "", err
	}
	var lastErr error
	for attempt := range s.attempts {
		hash, err := s.attempt(ctx, msg.Destination, sr)
		if err == nil {
			return hash, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if request.IsConstructionError(err) || errors.Is(err, batch.ErrUnauthorized) {
			return "", err
		}
		s.logger.Debug("store attempt failed",
			log.ZContext(ctx),
			zap.String("request", sr.LoggingID()),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		lastErr = err
	}
	return "", fmt.Errorf("%w: %s: %w", ErrDeliveryFailed, sr.LoggingID(), lastErr)
}

func (s *SwarmSender) attempt(ctx context.Context, dest types.PublicKey, sr request.SubRequest) (string, error) {
	swarm, err := s.swarms.SwarmFor(ctx, dest)
	if err != nil {
		return "", err
	}
	if len(swarm) == 0 {
		return "", fmt.Errorf("empty swarm for %s", dest.ShortString())
	}
	node := swarm[rand.IntN(len(swarm))]
	rst, err := s.exec.Execute(ctx, node, []request.SubRequest{sr})
	if err != nil {
		var status *batch.StatusError
		if errors.As(err, &status) && status.Code == http.StatusMisdirectedRequest {
			s.redirect(dest, status.Body)
		} else if !request.IsConstructionError(err) && !errors.Is(err, batch.ErrUnauthorized) {
			s.swarms.DropFromSwarm(dest, node)
		}
		return "", err
	}
	r := rst[0]
	switch {
	case r.OK():
		return request.ParseStore(r.Body)
	case r.Code == http.StatusMisdirectedRequest:
		s.redirect(dest, r.Body)
		return "", fmt.Errorf("%w: %s", batch.ErrWrongSwarm, node)
	case r.Code == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: %s", batch.ErrUnauthorized, node)
	case r.Code == http.StatusNotAcceptable:
		return "", fmt.Errorf("%w: %s", batch.ErrClockOutOfSync, node)
	default:
		s.swarms.DropFromSwarm(dest, node)
		return "", fmt.Errorf("%w: %d from %s", batch.ErrNodeStatus, r.Code, node)
	}
}

// redirect replaces the cached swarm with the one a misdirected node reported.
func (s *SwarmSender) redirect(dest types.PublicKey, body []byte) {
	nodes, err := request.ParseSwarm(body)
	if err != nil || len(nodes) == 0 {
		s.swarms.SetSwarm(dest, nil)
		return
	}
	s.logger.Debug("swarm changed", zap.Stringer("destination", dest), zap.Int("nodes", len(nodes)))
	s.swarms.SetSwarm(dest, nodes)
}

func (s *SwarmSender) subRequest(msg *types.OutgoingRawMessage) (request.SubRequest, error) {
	switch {
	case msg.Destination.IsGroup():
		if s.groups == nil {
			return nil, ErrNoGroupSigners
		}
		signer, err := s.groups.GroupSigner(msg.Destination)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", request.ErrMissingSigningMaterial, err)
		}
		if msg.Namespace == namespace.GroupMessages {
			return request.NewStoreGroupMessage(signer, msg.Data, msg.TTL)
		}
		return request.NewStoreGroupConfig(signer, msg.Namespace, msg.Data, msg.TTL)
	case s.user != nil && msg.Destination == s.user.SessionID() && namespace.IsUserConfig(msg.Namespace):
		return request.NewStoreUserConfig(s.user, msg.Namespace, msg.Data, msg.TTL)
	case msg.Namespace != namespace.Default:
		return nil, fmt.Errorf("%w: %s for %s", request.ErrInvalidNamespace, msg.Namespace, msg.Destination.ShortString())
	default:
		return request.NewStoreUserMessage(msg.Destination, msg.Data, msg.TTL, msg.PlaintextMirror)
	}
}
