package chain

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/smartcontractkit/chainlink-chain-config/pkg/logger"
)

// Loader produces a chain descriptor on demand, e.g. from a manifest or a node.
type Loader interface {
	Load(ctx context.Context, id uint64) (Chain, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, id uint64) (Chain, error)

func (f LoaderFunc) Load(ctx context.Context, id uint64) (Chain, error) {
	return f(ctx, id)
}

// Chains is a collection of chain descriptors keyed by chain ID.
// The collection operates in one of two modes:
// - Eager mode: all descriptors are provided upfront
// - Lazy mode: descriptors are produced by a Loader when first accessed
type Chains struct {
	chains map[uint64]Chain

	// lazy is non nil in lazy mode
	lazy *lazyState
}

type lazyState struct {
	mu        sync.RWMutex
	loaded    map[uint64]Chain
	loader    Loader
	supported map[uint64]struct{}
	ctx       context.Context //nolint:containedctx // Context is needed for lazy loading operations
	lggr      logger.Logger
}

// NewChains initializes a collection from a map. The map is copied.
func NewChains(chains map[uint64]Chain) Chains {
	if chains == nil {
		return Chains{chains: make(map[uint64]Chain)}
	}

	return Chains{chains: maps.Clone(chains)}
}

// NewChainsFromSlice initializes a collection from a slice. Later entries win on duplicate IDs.
func NewChainsFromSlice(chains []Chain) Chains {
	m := make(map[uint64]Chain, len(chains))
	for _, c := range chains {
		m[c.ID] = c
	}

	return Chains{chains: m}
}

// NewLazyChains creates a collection that loads the supported chain IDs on first access.
//
// A chain that fails to load while iterating is logged and skipped; GetByID returns the error.
func NewLazyChains(ctx context.Context, supported []uint64, loader Loader, lggr logger.Logger) Chains {
	if lggr == nil {
		lggr = logger.Nop()
	}

	ids := make(map[uint64]struct{}, len(supported))
	for _, id := range supported {
		ids[id] = struct{}{}
	}

	return Chains{
		lazy: &lazyState{
			loaded:    make(map[uint64]Chain),
			loader:    loader,
			supported: ids,
			ctx:       ctx,
			lggr:      lggr,
		},
	}
}

// GetByID returns the chain with the given ID.
func (c Chains) GetByID(id uint64) (Chain, error) {
	if c.lazy != nil {
		return c.lazy.get(id)
	}

	if ch, ok := c.chains[id]; ok {
		return ch, nil
	}

	return Chain{}, &ChainNotFoundError{ID: id}
}

func (l *lazyState) get(id uint64) (Chain, error) {
	l.mu.RLock()
	if ch, ok := l.loaded[id]; ok {
		l.mu.RUnlock()
		return ch, nil
	}
	l.mu.RUnlock()

	if _, ok := l.supported[id]; !ok {
		return Chain{}, &ChainNotFoundError{ID: id}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if ch, ok := l.loaded[id]; ok {
		return ch, nil
	}

	ch, err := l.loader.Load(l.ctx, id)
	if err != nil {
		return Chain{}, fmt.Errorf("failed to load chain %d: %w", id, err)
	}
	if ch.ID != id {
		return Chain{}, fmt.Errorf("failed to load chain %d: loader returned chain %d", id, ch.ID)
	}
	l.loaded[id] = ch

	return ch, nil
}

// Exists checks if a chain with the given ID exists (not necessarily loaded).
func (c Chains) Exists(id uint64) bool {
	if c.lazy != nil {
		_, ok := c.lazy.supported[id]
		return ok
	}
	_, ok := c.chains[id]

	return ok
}

// ExistsN checks if all chains with the given IDs exist.
func (c Chains) ExistsN(ids ...uint64) bool {
	for _, id := range ids {
		if !c.Exists(id) {
			return false
		}
	}

	return true
}

// Len returns the number of chains in the collection.
func (c Chains) Len() int {
	if c.lazy != nil {
		return len(c.lazy.supported)
	}

	return len(c.chains)
}

// All returns an iterator over all chains in ascending ID order.
// In lazy mode chains are loaded during iteration; failures are logged and skipped.
func (c Chains) All() iter.Seq2[uint64, Chain] {
	return func(yield func(uint64, Chain) bool) {
		for _, id := range c.ids() {
			ch, err := c.GetByID(id)
			if err != nil {
				c.lazy.lggr.Errorw("Failed to load chain during iteration",
					"chainID", id,
					"error", err,
				)

				continue
			}
			if !yield(id, ch) {
				return
			}
		}
	}
}

// Slice returns every chain in ascending ID order.
func (c Chains) Slice() []Chain {
	out := make([]Chain, 0, c.Len())
	for _, ch := range c.All() {
		out = append(out, ch)
	}

	return out
}

func (c Chains) ids() []uint64 {
	if c.lazy != nil {
		return slices.Sorted(maps.Keys(c.lazy.supported))
	}

	return slices.Sorted(maps.Keys(c.chains))
}

// IsLazy returns true if the collection loads chains on demand.
func (c Chains) IsLazy() bool {
	return c.lazy != nil
}

// ToEager loads every chain in parallel and returns an eager collection. An eager collection is
// copied.
func (c Chains) ToEager() (Chains, error) {
	if c.lazy == nil {
		return NewChains(c.chains), nil
	}

	ids := c.ids()
	loaded := make([]Chain, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			ch, err := c.GetByID(id)
			if err != nil {
				return err
			}
			loaded[i] = ch

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Chains{}, err
	}

	return NewChainsFromSlice(loaded), nil
}

// ListChainIDsOption configures ListChainIDs.
type ListChainIDsOption func(*listChainIDsOptions)

type listChainIDsOptions struct {
	testnet  *bool
	sourceID *uint64
	excluded map[uint64]struct{}
}

// WithTestnet returns an option keeping only testnets (true) or only mainnets (false).
func WithTestnet(testnet bool) ListChainIDsOption {
	return func(o *listChainIDsOptions) {
		o.testnet = &testnet
	}
}

// WithSourceID returns an option keeping only chains settling on the given source chain.
func WithSourceID(id uint64) ListChainIDsOption {
	return func(o *listChainIDsOptions) {
		o.sourceID = &id
	}
}

// WithChainIDsExclusion returns an option to exclude specific chain IDs.
func WithChainIDsExclusion(ids []uint64) ListChainIDsOption {
	return func(o *listChainIDsOptions) {
		if o.excluded == nil {
			o.excluded = make(map[uint64]struct{})
		}
		for _, id := range ids {
			o.excluded[id] = struct{}{}
		}
	}
}

// ListChainIDs returns the sorted chain IDs matching every option.
// Options:
// - WithTestnet: filter by network type
// - WithSourceID: filter by settlement chain
// - WithChainIDsExclusion: exclude specific chain IDs
//
// Only the exclusion option is applied without loading in lazy mode.
func (c Chains) ListChainIDs(options ...ListChainIDsOption) []uint64 {
	opts := listChainIDsOptions{}
	for _, option := range options {
		option(&opts)
	}

	ids := make([]uint64, 0, c.Len())
	for _, id := range c.ids() {
		if _, excluded := opts.excluded[id]; excluded {
			continue
		}
		if opts.testnet != nil || opts.sourceID != nil {
			ch, err := c.GetByID(id)
			if err != nil {
				continue
			}
			if opts.testnet != nil && ch.Testnet != *opts.testnet {
				continue
			}
			if opts.sourceID != nil && (ch.SourceID == nil || *ch.SourceID != *opts.sourceID) {
				continue
			}
		}
		ids = append(ids, id)
	}

	return ids
}
