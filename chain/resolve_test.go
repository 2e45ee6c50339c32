package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
)

func TestExtractChain(t *testing.T) {
	t.Parallel()

	known := []chain.Chain{newTestChain(1), newTestChain(10)}

	got, err := chain.ExtractChain(known, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.ID)

	_, err = chain.ExtractChain(known, 5)
	require.ErrorIs(t, err, chain.ErrChainNotFound)

	var nf *chain.ChainNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint64(5), nf.ID)
	assert.EqualError(t, err, "chain with id 5 not found")

	_, err = chain.ExtractChain(nil, 1)
	require.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestDeriveChain(t *testing.T) {
	t.Parallel()

	def := newTestChain(1)
	override := newTestChain(10)
	override.RPCURLs = nil

	tests := []struct {
		name         string
		giveDefault  *chain.Chain
		giveOverride *chain.Chain
		want         *chain.Chain
	}{
		{name: "override wins", giveDefault: &def, giveOverride: &override, want: &override},
		{name: "default when no override", giveDefault: &def, want: &def},
		{name: "override without default", giveOverride: &override, want: &override},
		{name: "neither", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := chain.DeriveChain(tt.giveDefault, tt.giveOverride)
			assert.Same(t, tt.want, got)
		})
	}

	// the override replaces the default in full, nothing is merged in
	got := chain.DeriveChain(&def, &override)
	assert.Nil(t, got.RPCURLs)
}

func TestGetChainParameter(t *testing.T) {
	t.Parallel()

	def := newTestChain(1)
	override := newTestChain(10)

	p := chain.GetChainParameter(nil)
	assert.Equal(t, chain.ChainParameter{Required: true, Nullable: true}, p)
	assert.Nil(t, p.Resolve(nil, nil, false))
	assert.Same(t, &override, p.Resolve(nil, &override, false))

	p = chain.GetChainParameter(&def)
	assert.Equal(t, chain.ChainParameter{Required: false, Nullable: true}, p)
	assert.Same(t, &def, p.Resolve(&def, nil, false))
	assert.Same(t, &override, p.Resolve(&def, &override, false))
	assert.Nil(t, p.Resolve(&def, nil, true))
}
