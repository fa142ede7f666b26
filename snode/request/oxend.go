package request

import (
	"fmt"

	"github.com/swarmsend/go-swarmsend/common/types"
)

// ServiceNodeFields is the allow-list of fields requested for every node.
var ServiceNodeFields = []string{
	"public_ip",
	"storage_port",
	"pubkey_x25519",
	"pubkey_ed25519",
	"storage_server_version",
}

// ServiceNodesParams are the oxend parameters of a service node list query.
// No limit is ever sent: a truncated list would evict nodes missing from a small sample
// when results of several nodes are intersected.
func ServiceNodesParams() Params {
	fields := make(map[string]bool, len(ServiceNodeFields))
	for _, f := range ServiceNodeFields {
		fields[f] = true
	}
	return Params{
		"active_only": true,
		"fields":      fields,
	}
}

// GetServiceNodes queries a node for the list of active service nodes.
type GetServiceNodes struct {
	base
}

// NewGetServiceNodes creates a service node list query.
func NewGetServiceNodes() *GetServiceNodes {
	return &GetServiceNodes{}
}

func (r *GetServiceNodes) Kind() Kind                   { return KindGetServiceNodes }
func (r *GetServiceNodes) Destination() types.PublicKey { return "" }
func (r *GetServiceNodes) LoggingID() string            { return r.Kind().String() }

func (r *GetServiceNodes) build() (Params, error) {
	return Params{
		"endpoint": "get_service_nodes",
		"params":   ServiceNodesParams(),
	}, nil
}

// OnsResolve resolves a hashed name to an encrypted session id.
type OnsResolve struct {
	base
	nameHash string
}

// NewOnsResolve creates a name resolution query. nameHash is the base64 hash of the lowercase name.
func NewOnsResolve(nameHash string) (*OnsResolve, error) {
	if nameHash == "" {
		return nil, fmt.Errorf("%w: name hash", ErrEmptyData)
	}
	return &OnsResolve{nameHash: nameHash}, nil
}

func (r *OnsResolve) Kind() Kind                   { return KindOnsResolve }
func (r *OnsResolve) Destination() types.PublicKey { return "" }
func (r *OnsResolve) LoggingID() string            { return r.Kind().String() }

func (r *OnsResolve) build() (Params, error) {
	return Params{
		"endpoint": "ons_resolve",
		"params": Params{
			"type":      0,
			"name_hash": r.nameHash,
		},
	}, nil
}

// GetSwarm queries the swarm responsible for a public key.
type GetSwarm struct {
	base
	dest types.PublicKey
}

// NewGetSwarm creates a swarm query for dest.
func NewGetSwarm(dest types.PublicKey) (*GetSwarm, error) {
	if err := dest.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDestination, err)
	}
	return &GetSwarm{dest: dest}, nil
}

func (r *GetSwarm) Kind() Kind                   { return KindGetSwarm }
func (r *GetSwarm) Destination() types.PublicKey { return r.dest }

func (r *GetSwarm) LoggingID() string {
	return fmt.Sprintf("%s-%s", r.Kind(), r.dest.ShortString())
}

func (r *GetSwarm) build() (Params, error) {
	return Params{"pubkey": r.dest.String()}, nil
}

// NetworkTime queries the node clock.
type NetworkTime struct {
	base
}

// NewNetworkTime creates a node info query.
func NewNetworkTime() *NetworkTime {
	return &NetworkTime{}
}

func (r *NetworkTime) Kind() Kind                   { return KindNetworkTime }
func (r *NetworkTime) Destination() types.PublicKey { return "" }
func (r *NetworkTime) LoggingID() string            { return r.Kind().String() }

func (r *NetworkTime) build() (Params, error) {
	return Params{}, nil
}
