package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/swarmsend/go-swarmsend/common/types"
)

// ErrMalformedBody is returned when a sub-request body can't be decoded.
var ErrMalformedBody = errors.New("request: malformed body")

type version []int

func (v version) String() string {
	parts := make([]string, 0, len(v))
	for _, p := range v {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, ".")
}

type serviceNode struct {
	PublicIP      string  `json:"public_ip"`
	StoragePort   int     `json:"storage_port"`
	PubkeyX25519  string  `json:"pubkey_x25519"`
	PubkeyEd25519 string  `json:"pubkey_ed25519"`
	Version       version `json:"storage_server_version"`
}

// ServiceNodeStates is the result of a get_service_nodes call.
type ServiceNodeStates struct {
	States []serviceNode `json:"service_node_states"`
}

// Nodes returns the usable nodes of the result. Records with an empty or null address
// belong to nodes without a valid uptime proof and are dropped.
func (s ServiceNodeStates) Nodes() []types.SwarmNode {
	nodes := make([]types.SwarmNode, 0, len(s.States))
	for _, st := range s.States {
		nodes = append(nodes, types.SwarmNode{
			IP:            st.PublicIP,
			Port:          st.StoragePort,
			PubkeyX25519:  st.PubkeyX25519,
			PubkeyEd25519: st.PubkeyEd25519,
			Version:       st.Version.String(),
		})
	}
	return types.FilterUsable(nodes)
}

// ParseServiceNodes decodes the body of a get_service_nodes sub-request.
func ParseServiceNodes(body []byte) ([]types.SwarmNode, error) {
	var rst struct {
		Result *ServiceNodeStates `json:"result"`
	}
	if err := json.Unmarshal(body, &rst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if rst.Result == nil {
		return nil, fmt.Errorf("%w: missing result", ErrMalformedBody)
	}
	return rst.Result.Nodes(), nil
}

// ParseSwarm decodes the body of a get_swarm sub-request.
func ParseSwarm(body []byte) ([]types.SwarmNode, error) {
	var rst struct {
		Snodes []struct {
			IP            string `json:"ip"`
			Port          string `json:"port_https"`
			PubkeyX25519  string `json:"pubkey_x25519"`
			PubkeyEd25519 string `json:"pubkey_ed25519"`
		} `json:"snodes"`
	}
	if err := json.Unmarshal(body, &rst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	nodes := make([]types.SwarmNode, 0, len(rst.Snodes))
	for _, sn := range rst.Snodes {
		port, err := strconv.Atoi(sn.Port)
		if err != nil {
			return nil, fmt.Errorf("%w: port %q", ErrMalformedBody, sn.Port)
		}
		nodes = append(nodes, types.SwarmNode{
			IP:            sn.IP,
			Port:          port,
			PubkeyX25519:  sn.PubkeyX25519,
			PubkeyEd25519: sn.PubkeyEd25519,
		})
	}
	return types.FilterUsable(nodes), nil
}

// ParseNetworkTime decodes the node clock from the body of an info sub-request.
func ParseNetworkTime(body []byte) (time.Time, error) {
	var rst struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &rst); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if rst.Timestamp <= 0 {
		return time.Time{}, fmt.Errorf("%w: missing timestamp", ErrMalformedBody)
	}
	return time.UnixMilli(rst.Timestamp), nil
}

// ParseStore decodes the message hash from the body of a store sub-request.
func ParseStore(body []byte) (string, error) {
	var rst struct {
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal(body, &rst); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if rst.Hash == "" {
		return "", fmt.Errorf("%w: missing hash", ErrMalformedBody)
	}
	return rst.Hash, nil
}
