package types

import (
	"net"
	"strconv"
)

// NullIP is reported by nodes that have not published a valid uptime proof yet.
const NullIP = "0.0.0.0"

// SwarmNode is a storage node of the network.
type SwarmNode struct {
	IP            string `json:"public_ip"`
	Port          int    `json:"storage_port"`
	PubkeyX25519  string `json:"pubkey_x25519"`
	PubkeyEd25519 string `json:"pubkey_ed25519"`
	Version       string `json:"storage_server_version"`
}

// Addr returns the ip:port pair identifying the node.
func (n SwarmNode) Addr() string {
	return net.JoinHostPort(n.IP, strconv.Itoa(n.Port))
}

// Usable returns false if the node reports an empty or null address.
func (n SwarmNode) Usable() bool {
	return n.IP != "" && n.IP != NullIP
}

func (n SwarmNode) String() string {
	return n.Addr()
}

// ShortString returns the address and a short prefix of the ed25519 key, for logging purposes.
func (n SwarmNode) ShortString() string {
	return n.Addr() + "/" + Shorten(n.PubkeyEd25519, 8)
}

// FilterUsable drops nodes that report an empty or null address.
func FilterUsable(nodes []SwarmNode) []SwarmNode {
	rst := make([]SwarmNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Usable() {
			rst = append(rst, n)
		}
	}
	return rst
}
