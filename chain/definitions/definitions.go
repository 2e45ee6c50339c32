package definitions

import (
	"context"
	"fmt"
	"strconv"

	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
)

// All returns every well known descriptor, ordered by chain ID. The returned descriptors are
// fresh copies and may be modified by the caller.
func All() []chain.Chain {
	return []chain.Chain{
		Mainnet(),
		Optimism(),
		Polygon(),
		Base(),
		ArbitrumOne(),
		Celo(),
		Sepolia(),
		OptimismSepolia(),
	}
}

// ByID returns the well known descriptor for a chain ID.
func ByID(id uint64) (chain.Chain, error) {
	return chain.ExtractChain(All(), id)
}

// BySelector returns the well known descriptor for a chain selector.
func BySelector(selector uint64) (chain.Chain, error) {
	family, err := chainsel.GetSelectorFamily(selector)
	if err != nil {
		return chain.Chain{}, err
	}
	if family != chainsel.FamilyEVM {
		return chain.Chain{}, fmt.Errorf("selector %d belongs to the %s family, only evm chains are supported", selector, family)
	}

	raw, err := chainsel.GetChainIDFromSelector(selector)
	if err != nil {
		return chain.Chain{}, err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return chain.Chain{}, fmt.Errorf("invalid chain id %q for selector %d: %w", raw, selector, err)
	}

	return ByID(id)
}

// Loader returns a chain.Loader serving the well known descriptors.
func Loader() chain.Loader {
	return chain.LoaderFunc(func(_ context.Context, id uint64) (chain.Chain, error) {
		return ByID(id)
	})
}

// Hooks returns the formatters, serializers and fee policy of a well known chain, for attaching
// to descriptors loaded from configuration. The boolean is false when the chain has none.
func Hooks(id uint64) (chain.Chain, bool) {
	def, err := ByID(id)
	if err != nil {
		return chain.Chain{}, false
	}
	hooks := chain.Chain{Formatters: def.Formatters, Serializers: def.Serializers, Fees: def.Fees}

	return hooks, hooks.Formatters != nil || hooks.Serializers != nil || hooks.Fees != nil
}
