package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPublicKey is returned when a public key does not have the expected shape.
var ErrInvalidPublicKey = errors.New("invalid public key")

const (
	// UserPrefix marks the session id of a user.
	UserPrefix = "05"
	// GroupPrefix marks the public key of a group.
	GroupPrefix = "03"

	// PublicKeySize is the size of the prefixed public key in bytes.
	PublicKeySize = 33
	// PublicKeyHexLen is the length of the hex encoded, prefixed public key.
	PublicKeyHexLen = 2 * PublicKeySize
)

// PublicKey is a hex encoded, prefixed public key identifying a swarm destination.
type PublicKey string

// ParsePublicKey validates and normalizes s.
func ParsePublicKey(s string) (PublicKey, error) {
	pk := PublicKey(strings.ToLower(s))
	if err := pk.Validate(); err != nil {
		return "", err
	}
	return pk, nil
}

// BytesToPublicKey prefixes a raw 32 bytes key.
func BytesToPublicKey(prefix string, key []byte) PublicKey {
	return PublicKey(prefix + hex.EncodeToString(key))
}

// Validate checks the length, the encoding and the prefix of the key.
func (pk PublicKey) Validate() error {
	if len(pk) != PublicKeyHexLen {
		return fmt.Errorf("%w: length %d", ErrInvalidPublicKey, len(pk))
	}
	if _, err := hex.DecodeString(string(pk)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	if !pk.IsUser() && !pk.IsGroup() {
		return fmt.Errorf("%w: prefix %s", ErrInvalidPublicKey, pk[:2])
	}
	return nil
}

// IsUser returns true for a 05 prefixed key.
func (pk PublicKey) IsUser() bool {
	return strings.HasPrefix(string(pk), UserPrefix)
}

// IsGroup returns true for a 03 prefixed key.
func (pk PublicKey) IsGroup() bool {
	return strings.HasPrefix(string(pk), GroupPrefix)
}

// Empty returns true if the key is not set.
func (pk PublicKey) Empty() bool {
	return pk == ""
}

// Key returns the raw key without the prefix. Returns nil if the key is malformed.
func (pk PublicKey) Key() []byte {
	if len(pk) != PublicKeyHexLen {
		return nil
	}
	b, err := hex.DecodeString(string(pk[2:]))
	if err != nil {
		return nil
	}
	return b
}

// String returns the hex representation of the key.
func (pk PublicKey) String() string {
	return string(pk)
}

// ShortString returns the prefix and the first 8 characters of the key, for logging purposes.
func (pk PublicKey) ShortString() string {
	return Shorten(string(pk), 10)
}
