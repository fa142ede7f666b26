// Package request builds the typed, signed sub-requests sent to swarm nodes.
//
// The set of sub-requests is closed: every variant is defined in this package and
// Build dispatches over all of them.
package request

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/swarmsend/go-swarmsend/common/types"
	"github.com/swarmsend/go-swarmsend/namespace"
	"github.com/swarmsend/go-swarmsend/signing"
)

var (
	ErrMissingSigningMaterial = errors.New("request: missing signing material")
	ErrMissingAdminKey        = errors.New("request: group admin key required")
	ErrEmptyHashes            = errors.New("request: empty hash list")
	ErrEmptyTokens            = errors.New("request: empty token list")
	ErrEmptyData              = errors.New("request: empty data")
	ErrEmptyPlaintextMirror   = errors.New("request: plaintext mirror is set but empty")
	ErrInvalidDestination     = errors.New("request: invalid destination")
	ErrInvalidNamespace       = errors.New("request: invalid namespace")
	ErrInvalidTTL             = errors.New("request: invalid ttl")
	ErrUnknownKind            = errors.New("request: unknown kind")
)

var constructionErrors = []error{
	ErrMissingSigningMaterial,
	ErrMissingAdminKey,
	ErrEmptyHashes,
	ErrEmptyTokens,
	ErrEmptyData,
	ErrEmptyPlaintextMirror,
	ErrInvalidDestination,
	ErrInvalidNamespace,
	ErrInvalidTTL,
	ErrUnknownKind,
}

// IsConstructionError returns true if err was raised while constructing or signing a
// sub-request. Such errors never go away on retry.
func IsConstructionError(err error) bool {
	for _, target := range constructionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MaxSubRequests is the maximum number of sub-requests a node accepts in a single call.
const MaxSubRequests = 20

const (
	// GroupKeysRetrieveOrder sorts a key-rotation retrieve after other retrieves.
	GroupKeysRetrieveOrder = 10
	// GroupKeysStoreOrder sorts a key-rotation store before other config stores.
	GroupKeysStoreOrder = -10
)

// UserSigner signs requests against our own swarm.
type UserSigner interface {
	Sign([]byte) []byte
	SessionID() types.PublicKey
	PublicKey() *signing.PublicKey
}

// GroupSigner signs requests against a group swarm.
type GroupSigner interface {
	Group() types.PublicKey
	IsAdmin() bool
	HasSubaccount() bool
	Sign([]byte) (signing.GroupSignature, error)
	SignAsAdmin([]byte) ([]byte, error)
}

// SubRequest is a single operation destined for a swarm node.
type SubRequest interface {
	Kind() Kind
	// Destination is the swarm owner, empty for topology queries.
	Destination() types.PublicKey
	// LoggingID is a stable diagnostic string without secret material.
	LoggingID() string
	// Order is used to sort sub-requests within one batch.
	Order() int

	isSubRequest()
}

// Params are the parameters of a built sub-request.
type Params = map[string]any

// Built is the signed, wire-ready sub-request.
type Built struct {
	Method Method `json:"method"`
	Params Params `json:"params"`
}

// Build signs sr and produces its wire form. Timestamps are derived from now.
func Build(sr SubRequest, now time.Time) (Built, error) {
	var (
		params Params
		err    error
	)
	switch r := sr.(type) {
	case *RetrieveUser:
		params, err = r.build(now)
	case *RetrieveGroup:
		params, err = r.build(now)
	case *StoreUserMessage:
		params, err = r.build(now)
	case *StoreUserConfig:
		params, err = r.build(now)
	case *StoreGroupMessage:
		params, err = r.build(now)
	case *StoreGroupConfig:
		params, err = r.build(now)
	case *DeleteHashesUser:
		params, err = r.build()
	case *DeleteHashesGroup:
		params, err = r.build()
	case *DeleteAllUser:
		params, err = r.build(now)
	case *DeleteAllGroup:
		params, err = r.build(now)
	case *ExpireUser:
		params, err = r.build()
	case *ExpireGroup:
		params, err = r.build()
	case *GetExpiries:
		params, err = r.build(now)
	case *RevokeSubaccount:
		params, err = r.build(now)
	case *GetServiceNodes:
		params, err = r.build()
	case *OnsResolve:
		params, err = r.build()
	case *GetSwarm:
		params, err = r.build()
	case *NetworkTime:
		params, err = r.build()
	default:
		return Built{}, fmt.Errorf("%w: %T", ErrUnknownKind, sr)
	}
	if err != nil {
		return Built{}, fmt.Errorf("build %s: %w", sr.LoggingID(), err)
	}
	return Built{Method: sr.Kind().Method(), Params: params}, nil
}

// SortByOrder sorts sub-requests by their order, keeping the submission order of equal ones.
func SortByOrder(reqs []SubRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].Order() < reqs[j].Order()
	})
}

type base struct{}

func (base) isSubRequest() {}

func (base) Order() int { return 0 }

func ms(t time.Time) int64 {
	return t.UnixMilli()
}

func b64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func nsString(ns namespace.Namespace) string {
	if ns == namespace.Default {
		return ""
	}
	return strconv.Itoa(int(ns))
}

// verification concatenates the parts of a signed message.
func verification(parts ...string) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return buf
}

func userSignature(signer UserSigner, msg []byte) Params {
	return Params{
		"pubkey":         signer.SessionID().String(),
		"pubkey_ed25519": signer.PublicKey().String(),
		"signature":      b64(signer.Sign(msg)),
	}
}

func groupSignature(signer GroupSigner, msg []byte) (Params, error) {
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, err
	}
	params := Params{
		"pubkey":    signer.Group().String(),
		"signature": b64(sig.Signature),
	}
	if len(sig.Subaccount) > 0 {
		params["subaccount"] = b64(sig.Subaccount)
		params["subaccount_sig"] = b64(sig.SubaccountSig)
	}
	return params, nil
}

func adminSignature(signer GroupSigner, msg []byte) (Params, error) {
	sig, err := signer.SignAsAdmin(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAdminKey, err)
	}
	return Params{
		"pubkey":    signer.Group().String(),
		"signature": b64(sig),
	}, nil
}

func checkUserSigner(signer UserSigner) error {
	if signer == nil {
		return ErrMissingSigningMaterial
	}
	if !signer.SessionID().IsUser() {
		return fmt.Errorf("%w: %s", ErrInvalidDestination, signer.SessionID().ShortString())
	}
	return nil
}

func checkGroupSigner(signer GroupSigner) error {
	if signer == nil {
		return ErrMissingSigningMaterial
	}
	if !signer.Group().IsGroup() {
		return fmt.Errorf("%w: %s", ErrInvalidDestination, signer.Group().ShortString())
	}
	if !signer.IsAdmin() && !signer.HasSubaccount() {
		return ErrMissingSigningMaterial
	}
	return nil
}

func checkAdminSigner(signer GroupSigner) error {
	if err := checkGroupSigner(signer); err != nil {
		return err
	}
	if !signer.IsAdmin() {
		return ErrMissingAdminKey
	}
	return nil
}

func checkHashes(hashes []string) error {
	if len(hashes) == 0 {
		return ErrEmptyHashes
	}
	for _, h := range hashes {
		if h == "" {
			return fmt.Errorf("%w: empty hash", ErrEmptyHashes)
		}
	}
	return nil
}

func checkTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTTL, ttl)
	}
	return nil
}

func hexTokens(tokens [][]byte) []string {
	rst := make([]string, 0, len(tokens))
	for _, t := range tokens {
		rst = append(rst, hex.EncodeToString(t))
	}
	return rst
}
