package signing

import (
	"crypto/sha512"
	"encoding/hex"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"golang.org/x/crypto/curve25519"

	"github.com/swarmsend/go-swarmsend/common/types"
)

// PrivateKey is an alias to ed25519.PrivateKey.
type PrivateKey = ed25519.PrivateKey

// PrivateKeySize size of the private key in bytes.
const PrivateKeySize = ed25519.PrivateKeySize

// PublicKey is the ed25519 public key of a signer.
type PublicKey struct {
	ed25519.PublicKey
}

// Public returns the ed25519 public key of priv.
func Public(priv PrivateKey) ed25519.PublicKey {
	return priv.Public().(ed25519.PublicKey)
}

// NewPublicKey constructs a new public key instance from a byte array.
func NewPublicKey(pub []byte) *PublicKey {
	return &PublicKey{pub}
}

// Bytes returns the public key as byte array.
func (p *PublicKey) Bytes() []byte {
	// Prevent segfault if unset
	if p != nil {
		return p.PublicKey
	}
	return nil
}

// String returns the public key as a hex representation string.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// ShortString returns a representative sub string.
func (p *PublicKey) ShortString() string {
	return types.Shorten(p.String(), 8)
}

// X25519 converts an ed25519 private key into the matching x25519 public key.
// The scalar is the clamped first half of the SHA-512 digest of the seed, the same one
// ed25519 signs with, so the result is the Montgomery form of the ed25519 public key.
func X25519(priv PrivateKey) ([]byte, error) {
	digest := sha512.Sum512(priv.Seed())
	return curve25519.X25519(digest[:32], curve25519.Basepoint)
}
