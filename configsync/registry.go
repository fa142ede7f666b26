package configsync

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/swarmsend/go-swarmsend/common/types"
)

var (
	// ErrNotInitialized is returned when a wrapper is requested before it was initialized.
	ErrNotInitialized = errors.New("configsync: wrapper not initialized")
	// ErrAlreadyInitialized is returned when a wrapper is initialized twice.
	ErrAlreadyInitialized = errors.New("configsync: wrapper already initialized")
)

// Registry owns the config wrappers of the account and of its groups.
// Wrappers live until they are freed.
type Registry struct {
	mu     sync.Mutex
	user   map[Kind]Wrapper
	groups map[types.PublicKey]MetaGroup
}

func NewRegistry() *Registry {
	return &Registry{
		user:   map[Kind]Wrapper{},
		groups: map[types.PublicKey]MetaGroup{},
	}
}

func (r *Registry) InitUser(kind Kind, w Wrapper) error {
	if _, err := kind.Namespace(); err != nil {
		return err
	}
	if w.Kind() != kind {
		return fmt.Errorf("%w: wrapper of kind %s registered as %s", ErrUnknownKind, w.Kind(), kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.user[kind]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, kind)
	}
	r.user[kind] = w
	return nil
}

func (r *Registry) InitGroup(pk types.PublicKey, g MetaGroup) error {
	if !pk.IsGroup() {
		return fmt.Errorf("%w: %s", types.ErrInvalidPublicKey, pk.ShortString())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[pk]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, pk.ShortString())
	}
	r.groups[pk] = g
	return nil
}

func (r *Registry) User(kind Kind) (Wrapper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.user[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, kind)
	}
	return w, nil
}

func (r *Registry) Group(pk types.PublicKey) (MetaGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[pk]
	if !ok {
		return nil, fmt.Errorf("%w: group %s", ErrNotInitialized, pk.ShortString())
	}
	return g, nil
}

// Groups returns the sorted keys of the initialized groups.
func (r *Registry) Groups() []types.PublicKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.groups))
}

// Free drops the wrapper of group pk.
func (r *Registry) Free(pk types.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.groups, pk)
}

// FreeAll drops every wrapper.
func (r *Registry) FreeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.user)
	clear(r.groups)
}
