package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/namespace"
)

// RetrieveGroup fetches messages from a namespace of a group swarm.
// It is signed with the admin key when held, otherwise with the sub-account credential.
type RetrieveGroup struct {
	base
	signer   GroupSigner
	ns       namespace.Namespace
	lastHash string
	maxSize  int
}

// NewRetrieveGroup creates a retrieve from a group swarm.
func NewRetrieveGroup(signer GroupSigner, ns namespace.Namespace, lastHash string, maxSize int) (*RetrieveGroup, error) {
	if err := checkGroupSigner(signer); err != nil {
		return nil, err
	}
	if !namespace.IsGroupNamespace(ns) {
		return nil, fmt.Errorf("%w: %s for group retrieve", ErrInvalidNamespace, ns)
	}
	return &RetrieveGroup{signer: signer, ns: ns, lastHash: lastHash, maxSize: maxSize}, nil
}

func (r *RetrieveGroup) Kind() Kind                     { return KindRetrieveGroup }
func (r *RetrieveGroup) Destination() types.PublicKey   { return r.signer.Group() }
func (r *RetrieveGroup) Namespace() namespace.Namespace { return r.ns }

// Order sorts the key-rotation retrieve last, so it reflects every other config
// fetched in the same batch.
func (r *RetrieveGroup) Order() int {
	if r.ns == namespace.GroupKeys {
		return GroupKeysRetrieveOrder
	}
	return 0
}

func (r *RetrieveGroup) LoggingID() string {
	return fmt.Sprintf("%s-%s-%s", r.Kind(), r.signer.Group().ShortString(), r.ns)
}

func (r *RetrieveGroup) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params, err := groupSignature(r.signer, verification(string(MethodRetrieve), nsString(r.ns), ts))
	if err != nil {
		return nil, err
	}
	params["namespace"] = int(r.ns)
	params["timestamp"] = ms(now)
	params["last_hash"] = r.lastHash
	if r.maxSize != 0 {
		params["max_size"] = r.maxSize
	}
	return params, nil
}

// StoreGroupMessage stores a message in the messages namespace of a group swarm.
type StoreGroupMessage struct {
	base
	signer GroupSigner
	data   []byte
	ttl    time.Duration
}

// NewStoreGroupMessage creates a group message store.
func NewStoreGroupMessage(signer GroupSigner, data []byte, ttl time.Duration) (*StoreGroupMessage, error) {
	if err := checkGroupSigner(signer); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if err := checkTTL(ttl); err != nil {
		return nil, err
	}
	return &StoreGroupMessage{signer: signer, data: data, ttl: ttl}, nil
}

func (r *StoreGroupMessage) Kind() Kind                   { return KindStoreGroupMessage }
func (r *StoreGroupMessage) Destination() types.PublicKey { return r.signer.Group() }

func (r *StoreGroupMessage) LoggingID() string {
	return fmt.Sprintf("%s-%s", r.Kind(), r.signer.Group().ShortString())
}

func (r *StoreGroupMessage) build(now time.Time) (Params, error) {
	ns := namespace.GroupMessages
	ts := strconv.FormatInt(ms(now), 10)
	params, err := groupSignature(r.signer, verification(string(MethodStore), nsString(ns), ts))
	if err != nil {
		return nil, err
	}
	params["namespace"] = int(ns)
	params["timestamp"] = ms(now)
	params["ttl"] = r.ttl.Milliseconds()
	params["data"] = b64(r.data)
	return params, nil
}

// StoreGroupConfig stores a config chunk in a group swarm. Only admins can push config.
type StoreGroupConfig struct {
	base
	signer GroupSigner
	ns     namespace.Namespace
	data   []byte
	ttl    time.Duration
}

// NewStoreGroupConfig creates a group config store. ns is one of the group config
// namespaces or the revoked-retrievable namespace.
func NewStoreGroupConfig(signer GroupSigner, ns namespace.Namespace, data []byte, ttl time.Duration) (*StoreGroupConfig, error) {
	if err := checkAdminSigner(signer); err != nil {
		return nil, err
	}
	if !namespace.IsGroupConfig(ns) && ns != namespace.GroupRevokedRetrievable {
		return nil, fmt.Errorf("%w: %s for group config store", ErrInvalidNamespace, ns)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if err := checkTTL(ttl); err != nil {
		return nil, err
	}
	return &StoreGroupConfig{signer: signer, ns: ns, data: data, ttl: ttl}, nil
}

func (r *StoreGroupConfig) Kind() Kind                     { return KindStoreGroupConfig }
func (r *StoreGroupConfig) Destination() types.PublicKey   { return r.signer.Group() }
func (r *StoreGroupConfig) Namespace() namespace.Namespace { return r.ns }

// Order sorts the key-rotation store first, other config objects reference the keys.
func (r *StoreGroupConfig) Order() int {
	if r.ns == namespace.GroupKeys {
		return GroupKeysStoreOrder
	}
	return 0
}

func (r *StoreGroupConfig) LoggingID() string {
	return fmt.Sprintf("%s-%s-%s", r.Kind(), r.signer.Group().ShortString(), r.ns)
}

func (r *StoreGroupConfig) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params, err := adminSignature(r.signer, verification(string(MethodStore), nsString(r.ns), ts))
	if err != nil {
		return nil, err
	}
	params["namespace"] = int(r.ns)
	params["timestamp"] = ms(now)
	params["ttl"] = r.ttl.Milliseconds()
	params["data"] = b64(r.data)
	return params, nil
}

// DeleteHashesGroup deletes messages by hash from a group swarm.
type DeleteHashesGroup struct {
	base
	signer GroupSigner
	hashes []string
}

// NewDeleteHashesGroup creates a hash based delete against a group swarm.
func NewDeleteHashesGroup(signer GroupSigner, hashes []string) (*DeleteHashesGroup, error) {
	if err := checkAdminSigner(signer); err != nil {
		return nil, err
	}
	if err := checkHashes(hashes); err != nil {
		return nil, err
	}
	return &DeleteHashesGroup{signer: signer, hashes: hashes}, nil
}

func (r *DeleteHashesGroup) Kind() Kind                   { return KindDeleteHashesGroup }
func (r *DeleteHashesGroup) Destination() types.PublicKey { return r.signer.Group() }
func (r *DeleteHashesGroup) Hashes() []string             { return r.hashes }

func (r *DeleteHashesGroup) LoggingID() string {
	return fmt.Sprintf("%s-%s-%d", r.Kind(), r.signer.Group().ShortString(), len(r.hashes))
}

func (r *DeleteHashesGroup) build() (Params, error) {
	params, err := adminSignature(r.signer, verification(string(MethodDelete), strings.Join(r.hashes, "")))
	if err != nil {
		return nil, err
	}
	params["messages"] = r.hashes
	return params, nil
}

// DeleteAllGroup deletes every message of one namespace of a group swarm.
type DeleteAllGroup struct {
	base
	signer GroupSigner
	ns     namespace.Namespace
}

// NewDeleteAllGroup creates a delete of a whole group namespace. Requires the admin key.
func NewDeleteAllGroup(signer GroupSigner, ns namespace.Namespace) (*DeleteAllGroup, error) {
	if err := checkAdminSigner(signer); err != nil {
		return nil, err
	}
	if !namespace.IsGroupNamespace(ns) {
		return nil, fmt.Errorf("%w: %s for group delete all", ErrInvalidNamespace, ns)
	}
	return &DeleteAllGroup{signer: signer, ns: ns}, nil
}

func (r *DeleteAllGroup) Kind() Kind                   { return KindDeleteAllGroup }
func (r *DeleteAllGroup) Destination() types.PublicKey { return r.signer.Group() }

func (r *DeleteAllGroup) LoggingID() string {
	return fmt.Sprintf("%s-%s-%s", r.Kind(), r.signer.Group().ShortString(), r.ns)
}

func (r *DeleteAllGroup) build(now time.Time) (Params, error) {
	ts := strconv.FormatInt(ms(now), 10)
	params, err := adminSignature(r.signer, verification(
		string(MethodDeleteAll), strconv.Itoa(int(r.ns)), ts,
	))
	if err != nil {
		return nil, err
	}
	params["namespace"] = int(r.ns)
	params["timestamp"] = ms(now)
	return params, nil
}

// ExpireGroup updates the expiry of messages in a group swarm.
type ExpireGroup struct {
	base
	signer GroupSigner
	hashes []string
	expiry time.Time
	mode   ExpiryMode
}

// NewExpireGroup creates an expiry update for messages in a group swarm.
func NewExpireGroup(signer GroupSigner, hashes []string, expiry time.Time, mode ExpiryMode) (*ExpireGroup, error) {
	if err := checkGroupSigner(signer); err != nil {
		return nil, err
	}
	if err := checkHashes(hashes); err != nil {
		return nil, err
	}
	if err := checkExpiryMode(mode); err != nil {
		return nil, err
	}
	return &ExpireGroup{signer: signer, hashes: hashes, expiry: expiry, mode: mode}, nil
}

func (r *ExpireGroup) Kind() Kind                   { return KindExpireGroup }
func (r *ExpireGroup) Destination() types.PublicKey { return r.signer.Group() }

func (r *ExpireGroup) LoggingID() string {
	return fmt.Sprintf("%s-%s-%s-%d", r.Kind(), r.signer.Group().ShortString(), r.mode, len(r.hashes))
}

func (r *ExpireGroup) build() (Params, error) {
	expiry := strconv.FormatInt(ms(r.expiry), 10)
	params, err := groupSignature(r.signer, verification(
		string(MethodExpire), string(r.mode), expiry, strings.Join(r.hashes, ""),
	))
	if err != nil {
		return nil, err
	}
	params["messages"] = r.hashes
	params["expiry"] = ms(r.expiry)
	r.mode.apply(params)
	return params, nil
}

// RevokeSubaccount revokes or restores delegated sub-account tokens of a group.
// Sub-account credentials can never revoke other sub-accounts, the admin key is required.
type RevokeSubaccount struct {
	base
	signer GroupSigner
	tokens [][]byte
	revoke bool
}

// NewRevokeSubaccount creates a revocation of the given tokens.
func NewRevokeSubaccount(signer GroupSigner, tokens [][]byte) (*RevokeSubaccount, error) {
	return newRevoke(signer, tokens, true)
}

// NewUnrevokeSubaccount creates a restoration of the given tokens.
func NewUnrevokeSubaccount(signer GroupSigner, tokens [][]byte) (*RevokeSubaccount, error) {
	return newRevoke(signer, tokens, false)
}

func newRevoke(signer GroupSigner, tokens [][]byte, revoke bool) (*RevokeSubaccount, error) {
	if err := checkAdminSigner(signer); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyTokens
	}
	for _, t := range tokens {
		if len(t) == 0 {
			return nil, fmt.Errorf("%w: empty token", ErrEmptyTokens)
		}
	}
	return &RevokeSubaccount{signer: signer, tokens: tokens, revoke: revoke}, nil
}

func (r *RevokeSubaccount) Kind() Kind {
	if r.revoke {
		return KindRevokeSubaccount
	}
	return KindUnrevokeSubaccount
}

func (r *RevokeSubaccount) Destination() types.PublicKey { return r.signer.Group() }

func (r *RevokeSubaccount) LoggingID() string {
	return fmt.Sprintf("%s-%s-%d", r.Kind(), r.signer.Group().ShortString(), len(r.tokens))
}

func (r *RevokeSubaccount) build(now time.Time) (Params, error) {
	method := r.Kind().Method()
	msg := verification(string(method), strconv.FormatInt(ms(now), 10))
	for _, t := range r.tokens {
		msg = append(msg, t...)
	}
	params, err := adminSignature(r.signer, msg)
	if err != nil {
		return nil, err
	}
	if r.revoke {
		params["revoke"] = hexTokens(r.tokens)
	} else {
		params["unrevoke"] = hexTokens(r.tokens)
	}
	params["timestamp"] = ms(now)
	return params, nil
}
