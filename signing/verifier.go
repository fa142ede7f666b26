package signing

import (
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// Verify verifies that a signature matches public key and message.
func Verify(pub []byte, m, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), m, sig)
}
