package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/namespace"
)

// RetrieveUser fetches messages from a namespace of our own swarm.
type RetrieveUser struct {
	base
	signer   UserSigner
	ns       namespace.Namespace
	lastHash string
	maxSize  int
}

// NewRetrieveUser creates a retrieve signed with our identity key.
// maxSize of 0 leaves the allocation to the node.
func NewRetrieveUser(signer UserSigner, ns namespace.Namespace, lastHash string, maxSize int) (*RetrieveUser, error) {
	if err := checkUserSigner(signer); err != nil {
		return nil, err
	}
	if !namespace.IsUserNamespace(ns) {
		return nil, fmt.Errorf("%w: %s for user retrieve", ErrInvalidNamespace, ns)
	}
	return &RetrieveUser{signer: signer, ns: ns, lastHash: lastHash, maxSize: maxSize}, nil
}

func (r *RetrieveUser) Kind() Kind                   { return KindRetrieveUser }
func (r *RetrieveUser) Destination() types.PublicKey { return r.signer.SessionID() }
func (r *RetrieveUser) Namespace() namespace.Namespace {
	return r.ns
}

func (r *RetrieveUser) LoggingID() string {
	return fmt.Sprintf("%s-%s", r.Kind(), r.ns)
}

func (r *RetrieveUser) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params := userSignature(r.signer, verification(string(MethodRetrieve), nsString(r.ns), ts))
	params["namespace"] = int(r.ns)
	params["timestamp"] = ms(now)
	params["last_hash"] = r.lastHash
	if r.maxSize != 0 {
		params["max_size"] = r.maxSize
	}
	return params, nil
}

// StoreUserMessage stores a message in the default namespace of another user's swarm.
// It is not signed: anyone can deposit into a user's default namespace.
type StoreUserMessage struct {
	base
	dest   types.PublicKey
	data   []byte
	ttl    time.Duration
	mirror []byte
}

// NewStoreUserMessage creates a store of an encrypted message to dest.
// mirror is the optional plaintext copy for our other devices, it is either nil or non-empty.
func NewStoreUserMessage(dest types.PublicKey, data []byte, ttl time.Duration, mirror []byte) (*StoreUserMessage, error) {
	if !dest.IsUser() || dest.Validate() != nil {
		return nil, fmt.Errorf("%w: %s is not a user", ErrInvalidDestination, dest.ShortString())
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if mirror != nil && len(mirror) == 0 {
		return nil, ErrEmptyPlaintextMirror
	}
	if err := checkTTL(ttl); err != nil {
		return nil, err
	}
	return &StoreUserMessage{dest: dest, data: data, ttl: ttl, mirror: mirror}, nil
}

func (r *StoreUserMessage) Kind() Kind                   { return KindStoreUserMessage }
func (r *StoreUserMessage) Destination() types.PublicKey { return r.dest }

// PlaintextMirror returns the plaintext copy for our other devices, if any.
func (r *StoreUserMessage) PlaintextMirror() []byte { return r.mirror }

func (r *StoreUserMessage) LoggingID() string {
	return fmt.Sprintf("%s-%s", r.Kind(), r.dest.ShortString())
}

func (r *StoreUserMessage) build(now time.Time) (Params, error) {
	return Params{
		"pubkey":    r.dest.String(),
		"timestamp": ms(now),
		"namespace": int(namespace.Default),
		"ttl":       r.ttl.Milliseconds(),
		"data":      b64(r.data),
	}, nil
}

// StoreUserConfig stores a config chunk in our own swarm.
type StoreUserConfig struct {
	base
	signer UserSigner
	ns     namespace.Namespace
	data   []byte
	ttl    time.Duration
}

// NewStoreUserConfig creates a config store signed with our identity key.
func NewStoreUserConfig(signer UserSigner, ns namespace.Namespace, data []byte, ttl time.Duration) (*StoreUserConfig, error) {
	if err := checkUserSigner(signer); err != nil {
		return nil, err
	}
	if !namespace.IsUserConfig(ns) {
		return nil, fmt.Errorf("%w: %s for user config store", ErrInvalidNamespace, ns)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if err := checkTTL(ttl); err != nil {
		return nil, err
	}
	return &StoreUserConfig{signer: signer, ns: ns, data: data, ttl: ttl}, nil
}

func (r *StoreUserConfig) Kind() Kind                   { return KindStoreUserConfig }
func (r *StoreUserConfig) Destination() types.PublicKey { return r.signer.SessionID() }
func (r *StoreUserConfig) Namespace() namespace.Namespace {
	return r.ns
}

func (r *StoreUserConfig) LoggingID() string {
	return fmt.Sprintf("%s-%s", r.Kind(), r.ns)
}

func (r *StoreUserConfig) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params := userSignature(r.signer, verification(string(MethodStore), nsString(r.ns), ts))
	params["namespace"] = int(r.ns)
	params["timestamp"] = ms(now)
	params["ttl"] = r.ttl.Milliseconds()
	params["data"] = b64(r.data)
	return params, nil
}

// DeleteHashesUser deletes messages by hash from our own swarm.
type DeleteHashesUser struct {
	base
	signer UserSigner
	hashes []string
}

// NewDeleteHashesUser creates a hash based delete. The list must not be empty.
func NewDeleteHashesUser(signer UserSigner, hashes []string) (*DeleteHashesUser, error) {
	if err := checkUserSigner(signer); err != nil {
		return nil, err
	}
	if err := checkHashes(hashes); err != nil {
		return nil, err
	}
	return &DeleteHashesUser{signer: signer, hashes: hashes}, nil
}

func (r *DeleteHashesUser) Kind() Kind                   { return KindDeleteHashesUser }
func (r *DeleteHashesUser) Destination() types.PublicKey { return r.signer.SessionID() }
func (r *DeleteHashesUser) Hashes() []string             { return r.hashes }

func (r *DeleteHashesUser) LoggingID() string {
	return fmt.Sprintf("%s-%d", r.Kind(), len(r.hashes))
}

// hashes can only be deleted once, no timestamp is needed.
func (r *DeleteHashesUser) build() (Params, error) {
	params := userSignature(r.signer, verification(string(MethodDelete), strings.Join(r.hashes, "")))
	params["messages"] = r.hashes
	return params, nil
}

// DeleteAllUser deletes every message from all namespaces of our own swarm.
type DeleteAllUser struct {
	base
	signer UserSigner
}

// NewDeleteAllUser creates a delete of all namespaces.
func NewDeleteAllUser(signer UserSigner) (*DeleteAllUser, error) {
	if err := checkUserSigner(signer); err != nil {
		return nil, err
	}
	return &DeleteAllUser{signer: signer}, nil
}

func (r *DeleteAllUser) Kind() Kind                   { return KindDeleteAllUser }
func (r *DeleteAllUser) Destination() types.PublicKey { return r.signer.SessionID() }
func (r *DeleteAllUser) LoggingID() string            { return r.Kind().String() }

func (r *DeleteAllUser) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params := userSignature(r.signer, verification(string(MethodDeleteAll), "all", ts))
	params["namespace"] = "all"
	params["timestamp"] = ms(now)
	return params, nil
}

// ExpiryMode selects whether an expire may only shorten or only extend the expiry.
type ExpiryMode string

const (
	ExpiryAny     ExpiryMode = ""
	ExpiryShorten ExpiryMode = "shorten"
	ExpiryExtend  ExpiryMode = "extend"
)

func (m ExpiryMode) apply(params Params) {
	switch m {
	case ExpiryShorten:
		params["shorten"] = true
	case ExpiryExtend:
		params["extend"] = true
	case ExpiryAny:
	}
}

func checkExpiryMode(m ExpiryMode) error {
	switch m {
	case ExpiryAny, ExpiryShorten, ExpiryExtend:
		return nil
	}
	return fmt.Errorf("request: invalid expiry mode %q", string(m))
}

// ExpireUser updates the expiry of messages in our own swarm.
type ExpireUser struct {
	base
	signer UserSigner
	hashes []string
	expiry time.Time
	mode   ExpiryMode
}

// NewExpireUser creates an expiry update for the given hashes.
func NewExpireUser(signer UserSigner, hashes []string, expiry time.Time, mode ExpiryMode) (*ExpireUser, error) {
	if err := checkUserSigner(signer); err != nil {
		return nil, err
	}
	if err := checkHashes(hashes); err != nil {
		return nil, err
	}
	if err := checkExpiryMode(mode); err != nil {
		return nil, err
	}
	return &ExpireUser{signer: signer, hashes: hashes, expiry: expiry, mode: mode}, nil
}

func (r *ExpireUser) Kind() Kind                   { return KindExpireUser }
func (r *ExpireUser) Destination() types.PublicKey { return r.signer.SessionID() }

func (r *ExpireUser) LoggingID() string {
	return fmt.Sprintf("%s-%s-%d", r.Kind(), r.mode, len(r.hashes))
}

func (r *ExpireUser) build() (Params, error) {
	expiry := strconv.FormatInt(ms(r.expiry), 10)
	params := userSignature(r.signer, verification(
		string(MethodExpire), string(r.mode), expiry, strings.Join(r.hashes, ""),
	))
	params["messages"] = r.hashes
	params["expiry"] = ms(r.expiry)
	r.mode.apply(params)
	return params, nil
}

// GetExpiries fetches the expiries of messages in our own swarm.
type GetExpiries struct {
	base
	signer UserSigner
	hashes []string
}

// NewGetExpiries creates an expiry query for the given hashes.
func NewGetExpiries(signer UserSigner, hashes []string) (*GetExpiries, error) {
	if err := checkUserSigner(signer); err != nil {
		return nil, err
	}
	if err := checkHashes(hashes); err != nil {
		return nil, err
	}
	return &GetExpiries{signer: signer, hashes: hashes}, nil
}

func (r *GetExpiries) Kind() Kind                   { return KindGetExpiries }
func (r *GetExpiries) Destination() types.PublicKey { return r.signer.SessionID() }

func (r *GetExpiries) LoggingID() string {
	return fmt.Sprintf("%s-%d", r.Kind(), len(r.hashes))
}

func (r *GetExpiries) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params := userSignature(r.signer, verification(
		string(MethodGetExpiries), ts, strings.Join(r.hashes, ""),
	))
	params["messages"] = r.hashes
	params["timestamp"] = ms(now)
	return params, nil
}
