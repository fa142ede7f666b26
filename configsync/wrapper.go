package configsync

import (
	"errors"
	"fmt"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/namespace"
)

//go:generate mockgen -typed -package=configsync -destination=./wrapper_mocks.go -source=./wrapper.go

// ErrUnknownKind is returned for a wrapper kind that is not registered.
var ErrUnknownKind = errors.New("configsync: unknown wrapper kind")

// Kind identifies one of the user config wrappers.
type Kind string

const (
	KindUser              Kind = "UserConfig"
	KindContacts          Kind = "ContactsConfig"
	KindUserGroups        Kind = "UserGroupsConfig"
	KindConvoInfoVolatile Kind = "ConvoInfoVolatileConfig"
)

// UserKinds lists the user wrappers in the order they are queried for changes.
var UserKinds = []Kind{KindUser, KindContacts, KindUserGroups, KindConvoInfoVolatile}

// Namespace returns the namespace storing the wrapper's config.
//
//exhaustive:enforce
func (k Kind) Namespace() (namespace.Namespace, error) {
	switch k {
	case KindUser:
		return namespace.UserProfile, nil
	case KindContacts:
		return namespace.UserContacts, nil
	case KindUserGroups:
		return namespace.UserGroups, nil
	case KindConvoInfoVolatile:
		return namespace.ConvoInfoVolatile, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// GroupDumpVariant is the dump variant of the meta group wrapper of pk.
func GroupDumpVariant(pk types.PublicKey) string {
	return "MetaGroupConfig-" + pk.String()
}

// PushResult is the unpushed state of one config.
type PushResult struct {
	Seqno int64
	// Data holds the ciphertext chunks, each stored as one message.
	Data [][]byte
	// Hashes lists the messages superseded by this push.
	Hashes []string
}

// Wrapper is a local user config object synchronized across devices.
//
// Implementations are not required to be safe for concurrent use.
type Wrapper interface {
	Kind() Kind
	NeedsPush() bool
	Push() (PushResult, error)
	NeedsDump() bool
	Dump() ([]byte, error)
	// ConfirmPushed marks seqno as stored under hashes.
	ConfirmPushed(seqno int64, hashes []string)
}

// GroupPush is the unpushed state of a group. A nil part has no pending changes.
type GroupPush struct {
	// Keys is a key rotation. It carries no seqno.
	Keys    [][]byte
	Info    *PushResult
	Members *PushResult
	// Hashes lists the superseded messages of every part.
	Hashes []string
}

// MetaGroup bundles the keys, info and members configs of one group.
type MetaGroup interface {
	NeedsPush() bool
	Push() (GroupPush, error)
	NeedsDump() bool
	Dump() ([]byte, error)
	// ConfirmPushed marks seqno of the config stored in ns as stored under hashes.
	ConfirmPushed(ns namespace.Namespace, seqno int64, hashes []string)
}
