package definitions

import (
	"testing"

	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
)

func TestAll_Valid(t *testing.T) {
	t.Parallel()

	seen := map[uint64]bool{}
	for _, c := range All() {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			require.NoError(t, c.ValidateStrict())

			_, ok := c.Multicall3()
			assert.True(t, ok, "multicall3 is deployed everywhere")
		})
		assert.False(t, seen[c.ID], "duplicate chain id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestAll_FreshCopies(t *testing.T) {
	t.Parallel()

	a := Optimism()
	a.Name = "changed"
	a.Formatters.Block = nil

	b := Optimism()
	assert.Equal(t, "OP Mainnet", b.Name)
	assert.NotNil(t, b.Formatters.Block)
	assert.NotSame(t, a.Formatters, b.Formatters)
}

func TestByID(t *testing.T) {
	t.Parallel()

	got, err := ByID(BaseID)
	require.NoError(t, err)
	assert.Equal(t, "Base", got.Name)
	assert.Equal(t, uint64(MainnetID), *got.SourceID)

	_, err = ByID(999999999)
	require.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestBySelector(t *testing.T) {
	t.Parallel()

	got, err := BySelector(chainsel.ETHEREUM_MAINNET.Selector)
	require.NoError(t, err)
	assert.Equal(t, uint64(MainnetID), got.ID)

	sel, err := got.Selector()
	require.NoError(t, err)
	assert.Equal(t, chainsel.ETHEREUM_MAINNET.Selector, sel)

	_, err = BySelector(chainsel.SOLANA_MAINNET.Selector)
	require.ErrorContains(t, err, "only evm chains are supported")

	_, err = BySelector(1)
	require.Error(t, err)
}

func TestLoader(t *testing.T) {
	t.Parallel()

	chains := chain.NewLazyChains(t.Context(), []uint64{MainnetID, CeloID}, Loader(), nil)

	got, err := chains.GetByID(CeloID)
	require.NoError(t, err)
	assert.Equal(t, "Celo", got.Name)
	assert.Equal(t, []uint64{MainnetID}, chains.ListChainIDs(chain.WithChainIDsExclusion([]uint64{CeloID})))
}

func TestHooks(t *testing.T) {
	t.Parallel()

	hooks, ok := Hooks(OptimismID)
	require.True(t, ok)
	assert.NotNil(t, hooks.Formatters)
	assert.NotNil(t, hooks.Serializers)
	assert.Nil(t, hooks.Fees)

	hooks, ok = Hooks(PolygonID)
	require.True(t, ok)
	assert.True(t, hooks.HasFeePolicy())

	_, ok = Hooks(MainnetID)
	assert.False(t, ok)

	_, ok = Hooks(999999999)
	assert.False(t, ok)
}
