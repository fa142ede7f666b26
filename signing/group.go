package signing

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/swarmsend/go-swarmsend/common/types"
)

var (
	// ErrNoAdminKey is returned when an operation needs the group admin secret key.
	ErrNoAdminKey = errors.New("group admin secret key is not available")
	// ErrNoSigningMaterial is returned when neither the admin key nor a sub-account
	// credential is available for the group.
	ErrNoSigningMaterial = errors.New("no signing material for group")
)

const (
	// SubaccountTokenSize is the size of the sub-account token prefix of the auth data.
	SubaccountTokenSize = 36
	// AuthDataSize is the size of the auth data delegated by a group admin.
	AuthDataSize = SubaccountTokenSize + ed25519.SignatureSize
)

// Subaccount is the delegated credential of a non-admin group member.
type Subaccount struct {
	// AuthData is the token followed by the admin signature over it.
	AuthData []byte
	// Member signs requests on behalf of the group.
	Member *EdSigner
}

// Token returns the sub-account token the admin signed.
func (s *Subaccount) Token() []byte {
	return s.AuthData[:SubaccountTokenSize]
}

// TokenSignature returns the admin signature over the token.
func (s *Subaccount) TokenSignature() []byte {
	return s.AuthData[SubaccountTokenSize:]
}

// GroupSignature is the result of signing a request against a group swarm.
type GroupSignature struct {
	Signature []byte
	// Subaccount and SubaccountSig are set when signed with a sub-account credential.
	Subaccount    []byte
	SubaccountSig []byte
}

// GroupSigner signs requests against a group swarm.
type GroupSigner struct {
	group      types.PublicKey
	admin      PrivateKey
	subaccount *Subaccount
}

// GroupSignerOpt configures GroupSigner.
type GroupSignerOpt func(*GroupSigner) error

// WithAdminKey sets the group admin secret key. The key must match the group public key.
func WithAdminKey(priv PrivateKey) GroupSignerOpt {
	return func(g *GroupSigner) error {
		if len(priv) != ed25519.PrivateKeySize {
			return errors.New("invalid admin key length")
		}
		if err := checkKeyPair(priv); err != nil {
			return err
		}
		pub := Public(priv)
		if types.BytesToPublicKey(types.GroupPrefix, pub) != g.group {
			return fmt.Errorf("admin key does not match group %s", g.group.ShortString())
		}
		g.admin = priv
		return nil
	}
}

// WithSubaccount sets the delegated credential used when the admin key is not held.
func WithSubaccount(sub *Subaccount) GroupSignerOpt {
	return func(g *GroupSigner) error {
		if sub == nil || sub.Member == nil {
			return errors.New("sub-account requires a member signer")
		}
		if len(sub.AuthData) != AuthDataSize {
			return fmt.Errorf("invalid auth data size %d/%d", len(sub.AuthData), AuthDataSize)
		}
		g.subaccount = sub
		return nil
	}
}

// NewGroupSigner creates a signer for the group with the given 03 prefixed public key.
func NewGroupSigner(group types.PublicKey, opts ...GroupSignerOpt) (*GroupSigner, error) {
	if !group.IsGroup() {
		return nil, fmt.Errorf("%w: not a group key %s", types.ErrInvalidPublicKey, group.ShortString())
	}
	g := &GroupSigner{group: group}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Group returns the public key of the group.
func (g *GroupSigner) Group() types.PublicKey {
	return g.group
}

// IsAdmin returns true if the admin secret key is held.
func (g *GroupSigner) IsAdmin() bool {
	return g.admin != nil
}

// HasSubaccount returns true if a delegated credential is held.
func (g *GroupSigner) HasSubaccount() bool {
	return g.subaccount != nil
}

// Sign signs m with the admin key if held, otherwise with the sub-account credential.
func (g *GroupSigner) Sign(m []byte) (GroupSignature, error) {
	if g == nil {
		return GroupSignature{}, ErrNoSigningMaterial
	}
	if g.admin != nil {
		return GroupSignature{Signature: ed25519.Sign(g.admin, m)}, nil
	}
	if g.subaccount != nil {
		return GroupSignature{
			Signature:     g.subaccount.Member.Sign(m),
			Subaccount:    g.subaccount.Token(),
			SubaccountSig: g.subaccount.TokenSignature(),
		}, nil
	}
	return GroupSignature{}, ErrNoSigningMaterial
}

// SignAsAdmin signs m with the admin key. Sub-account credentials are never used.
func (g *GroupSigner) SignAsAdmin(m []byte) ([]byte, error) {
	if g == nil || g.admin == nil {
		return nil, ErrNoAdminKey
	}
	return ed25519.Sign(g.admin, m), nil
}

// NewSubaccount delegates a credential to member. The token is the flags byte followed by
// three reserved bytes and the member's ed25519 public key.
func NewSubaccount(admin PrivateKey, member *EdSigner, flags byte) *Subaccount {
	token := make([]byte, SubaccountTokenSize)
	token[0] = flags
	copy(token[4:], member.PublicKey().Bytes())
	auth := make([]byte, 0, AuthDataSize)
	auth = append(auth, token...)
	auth = append(auth, ed25519.Sign(admin, token)...)
	return &Subaccount{AuthData: auth, Member: member}
}

// Keyring holds the signers of the groups we are a member of.
type Keyring struct {
	mu      sync.RWMutex
	signers map[types.PublicKey]*GroupSigner
}

func NewKeyring() *Keyring {
	return &Keyring{signers: map[types.PublicKey]*GroupSigner{}}
}

// Add replaces the signer of g's group.
func (k *Keyring) Add(g *GroupSigner) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.signers[g.Group()] = g
}

func (k *Keyring) Remove(group types.PublicKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.signers, group)
}

// GroupSigner returns the signer of group. Returns ErrNoSigningMaterial if we don't hold one.
func (k *Keyring) GroupSigner(group types.PublicKey) (*GroupSigner, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	g, ok := k.signers[group]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSigningMaterial, group.ShortString())
	}
	return g, nil
}

// Groups returns the sorted keys of the groups in the keyring.
func (k *Keyring) Groups() []types.PublicKey {
	k.mu.RLock()
	defer k.mu.RUnlock()
	groups := maps.Keys(k.signers)
	return slices.Sorted(groups)
}
