package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

func TestChain_Validate(t *testing.T) {
	t.Parallel()

	identity := func(raw formatter.Fields) (formatter.Fields, error) { return raw, nil }

	tests := []struct {
		name      string
		give      func(c *chain.Chain)
		strict    bool
		wantPaths []string
	}{
		{
			name: "valid",
			give: func(*chain.Chain) {},
		},
		{
			name: "valid with explorers and formatters",
			give: func(c *chain.Chain) {
				c.BlockExplorers = map[string]chain.BlockExplorer{chain.DefaultGroup: {Name: "x", URL: "https://x"}}
				c.Formatters = &formatter.Formatters{
					Block: &formatter.Formatter{Type: formatter.KindBlock, Format: identity},
				}
			},
		},
		{
			name:      "zero id",
			give:      func(c *chain.Chain) { c.ID = 0 },
			wantPaths: []string{"id"},
		},
		{
			name: "empty name",
			give: func(c *chain.Chain) { c.Name = "" },
		},
		{
			name:      "empty name strict",
			give:      func(c *chain.Chain) { c.Name = "" },
			strict:    true,
			wantPaths: []string{"name"},
		},
		{
			name:      "symbol too short",
			give:      func(c *chain.Chain) { c.NativeCurrency.Symbol = "E" },
			wantPaths: []string{"nativeCurrency.symbol"},
		},
		{
			name:      "symbol too long",
			give:      func(c *chain.Chain) { c.NativeCurrency.Symbol = "ETHEREUM" },
			wantPaths: []string{"nativeCurrency.symbol"},
		},
		{
			name:      "single multibyte symbol character",
			give:      func(c *chain.Chain) { c.NativeCurrency.Symbol = "Ξ" },
			wantPaths: []string{"nativeCurrency.symbol"},
		},
		{
			name: "multibyte symbol counted in characters",
			give: func(c *chain.Chain) { c.NativeCurrency.Symbol = "ΞΞΞΞ" },
		},
		{
			name:      "missing default rpc",
			give:      func(c *chain.Chain) { c.RPCURLs = map[string]chain.RPCURLs{"other": {HTTP: []string{"https://a"}}} },
			wantPaths: []string{"rpcUrls.default"},
		},
		{
			name: "default rpc without http",
			give: func(c *chain.Chain) { c.RPCURLs = map[string]chain.RPCURLs{chain.DefaultGroup: {}} },
		},
		{
			name:      "default rpc without http strict",
			give:      func(c *chain.Chain) { c.RPCURLs = map[string]chain.RPCURLs{chain.DefaultGroup: {}} },
			strict:    true,
			wantPaths: []string{"rpcUrls.default.http"},
		},
		{
			name: "explorers without default",
			give: func(c *chain.Chain) {
				c.BlockExplorers = map[string]chain.BlockExplorer{"other": {Name: "x", URL: "https://x"}}
			},
			wantPaths: []string{"blockExplorers.default"},
		},
		{
			name: "empty per source contract map",
			give: func(c *chain.Chain) {
				c.Contracts = map[string]chain.ContractEntry{"portal": chain.PerSource(map[uint64]chain.Contract{})}
			},
			wantPaths: []string{"contracts.portal"},
		},
		{
			name: "formatter in wrong slot",
			give: func(c *chain.Chain) {
				c.Formatters = &formatter.Formatters{
					Transaction: &formatter.Formatter{Type: formatter.KindBlock, Format: identity},
				}
			},
		},
		{
			name: "formatter in wrong slot strict",
			give: func(c *chain.Chain) {
				c.Formatters = &formatter.Formatters{
					Transaction: &formatter.Formatter{Type: formatter.KindBlock, Format: identity},
				}
			},
			strict:    true,
			wantPaths: []string{"formatters.transaction.type"},
		},
		{
			name: "formatter without function strict",
			give: func(c *chain.Chain) {
				c.Formatters = &formatter.Formatters{Block: &formatter.Formatter{Type: formatter.KindBlock}}
			},
			strict:    true,
			wantPaths: []string{"formatters.block"},
		},
		{
			name: "only structural fields set",
			give: func(c *chain.Chain) {
				*c = chain.Chain{
					ID:             10,
					NativeCurrency: chain.NativeCurrency{Symbol: "ETH", Decimals: 18},
					RPCURLs:        map[string]chain.RPCURLs{chain.DefaultGroup: {HTTP: []string{"https://a"}}},
				}
			},
		},
		{
			name: "every violation reported",
			give: func(c *chain.Chain) {
				c.ID = 0
				c.NativeCurrency.Symbol = ""
				c.RPCURLs = nil
			},
			wantPaths: []string{"id", "nativeCurrency.symbol", "rpcUrls.default"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestChain(10)
			tt.give(&c)

			validate := c.Validate
			if tt.strict {
				validate = c.ValidateStrict
			}
			err := validate()
			if len(tt.wantPaths) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			var first *chain.InvalidChainConfigError
			require.ErrorAs(t, err, &first)
			assert.Equal(t, tt.wantPaths[0], first.Path)

			joined, ok := err.(interface{ Unwrap() []error })
			require.True(t, ok, "violations are joined")

			var paths []string
			for _, e := range joined.Unwrap() {
				var ierr *chain.InvalidChainConfigError
				require.ErrorAs(t, e, &ierr)
				paths = append(paths, ierr.Path)
			}
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}

func TestInvalidChainConfigError_Error(t *testing.T) {
	t.Parallel()

	err := &chain.InvalidChainConfigError{Path: "id", Reason: "must be a positive integer"}
	assert.Equal(t, "invalid chain config: id: must be a positive integer", err.Error())
}
