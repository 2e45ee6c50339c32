/*
Package chain describes EVM networks and the per chain customizations a client applies to them.

# Chain descriptors

A Chain carries the static network data (ID, name, native currency, RPC endpoints, block
explorers and well known contracts) and three optional extension slots:

  - Formatters reshape raw node responses per entity kind (see package formatter).
  - Serializers replace the generic transaction encoding (see package serializer).
  - Fees customize gas fee estimation (see package fees).

A descriptor without customizations behaves like a plain Ethereum network:

	optimism := chain.Chain{
		ID:             10,
		Name:           "OP Mainnet",
		NativeCurrency: chain.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCURLs: map[string]chain.RPCURLs{
			chain.DefaultGroup: {HTTP: []string{"https://mainnet.optimism.io"}},
		},
	}
	if err := optimism.Validate(); err != nil {
		return err
	}

	block, err := optimism.Format(formatter.KindBlock, raw)

Validation is opt in and reports every violation as an *InvalidChainConfigError.

# Resolution

A client holds a default chain and each call may pass an override. DeriveChain picks the override
when present, otherwise the default; the two are never merged. GetChainParameter reports whether a
call must name a chain, and ExtractChain finds a chain by ID among known descriptors.

# Collections

Chains holds descriptors keyed by chain ID, either eagerly or loaded on demand through a Loader:

	chains := chain.NewChainsFromSlice(definitions.All())
	l2s := chains.ListChainIDs(chain.WithSourceID(1), chain.WithTestnet(false))
*/
package chain
