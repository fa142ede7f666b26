package types

import (
	"time"

	"github.com/swarmsend/go-swarmsend/namespace"
)

// MessageID uniquely identifies an outgoing message.
type MessageID string

// OutgoingRawMessage is an encrypted payload waiting to be stored in a destination swarm.
type OutgoingRawMessage struct {
	ID          MessageID
	Destination PublicKey
	Namespace   namespace.Namespace
	Data        []byte
	TTL         time.Duration
	// PlaintextMirror is the unencrypted copy sent to our other devices when syncing.
	// It is either nil or non-empty.
	PlaintextMirror []byte
	// Sync is set when the message is addressed to our own swarm on purpose.
	Sync      bool
	CreatedAt time.Time
}
