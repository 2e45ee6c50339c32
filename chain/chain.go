package chain

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
)

// DefaultGroup is the key of the mandatory RPC URL group and of the primary block explorer.
const DefaultGroup = "default"

// Well known contract names.
const (
	ContractENSRegistry          = "ensRegistry"
	ContractENSUniversalResolver = "ensUniversalResolver"
	ContractMulticall3           = "multicall3"
)

// NativeCurrency describes the gas token of a chain.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol" toml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals" toml:"decimals"`
}

// RPCURLs holds the endpoints of one RPC group.
type RPCURLs struct {
	HTTP      []string `json:"http" yaml:"http" toml:"http"`
	WebSocket []string `json:"webSocket,omitempty" yaml:"ws,omitempty" toml:"ws,omitempty"`
}

// BlockExplorer is a block explorer front end and its optional API.
type BlockExplorer struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	URL    string `json:"url" yaml:"url" toml:"url"`
	APIURL string `json:"apiUrl,omitempty" yaml:"api_url,omitempty" toml:"api_url,omitempty"`
}

// Contract is a deployed contract. BlockCreated is the block the contract was deployed in, if known.
type Contract struct {
	Address      common.Address `json:"address"`
	BlockCreated *uint64        `json:"blockCreated,omitempty"`
}

// ContractEntry is either a single contract or, for contracts that live on a settlement layer, a
// map of contracts keyed by source chain ID. Exactly one of the two is set.
type ContractEntry struct {
	Contract *Contract
	BySource map[uint64]Contract
}

// Single returns an entry for one contract.
func Single(c Contract) ContractEntry {
	return ContractEntry{Contract: &c}
}

// PerSource returns an entry keyed by source chain ID.
func PerSource(m map[uint64]Contract) ContractEntry {
	return ContractEntry{BySource: m}
}

// Chain describes a network and the per-chain customizations a client applies to it.
//
// Descriptors are treated as immutable values: derive a new descriptor instead of mutating one
// that may be shared.
type Chain struct {
	ID             uint64
	Name           string
	NativeCurrency NativeCurrency
	// RPCURLs must contain the DefaultGroup entry.
	RPCURLs map[string]RPCURLs
	// BlockExplorers, when not empty, must contain the DefaultGroup entry.
	BlockExplorers map[string]BlockExplorer
	Contracts      map[string]ContractEntry
	// SourceID is the ID of the settlement chain, set for L2s.
	SourceID *uint64
	Testnet  bool

	Formatters  *formatter.Formatters
	Serializers *serializer.Serializers
	Fees        *fees.Policy
}

// String returns the chain name and ID as "<name> (<id>)".
func (c Chain) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.ID)
}

// ChainID returns the ID as a big integer, the form signers and transaction types expect.
func (c Chain) ChainID() *big.Int {
	return new(big.Int).SetUint64(c.ID)
}

// Selector returns the chain selector registered for the chain ID.
func (c Chain) Selector() (uint64, error) {
	details, err := chainsel.GetChainDetailsByChainIDAndFamily(strconv.FormatUint(c.ID, 10), chainsel.FamilyEVM)
	if err != nil {
		return 0, fmt.Errorf("no chain selector for %s: %w", c, err)
	}

	return details.ChainSelector, nil
}

// RPCURL returns the first HTTP URL of the group.
func (c Chain) RPCURL(group string) (string, bool) {
	urls, ok := c.RPCURLs[group]
	if !ok || len(urls.HTTP) == 0 {
		return "", false
	}

	return urls.HTTP[0], true
}

// DefaultRPCURL returns the first HTTP URL of the default group.
func (c Chain) DefaultRPCURL() (string, bool) {
	return c.RPCURL(DefaultGroup)
}

// BlockExplorerURL returns the URL of the default block explorer.
func (c Chain) BlockExplorerURL() (string, bool) {
	be, ok := c.BlockExplorers[DefaultGroup]
	if !ok || be.URL == "" {
		return "", false
	}

	return be.URL, true
}

// Contract resolves a named contract. Per-source entries are resolved with sourceID, falling
// back to the chain's own SourceID when sourceID is zero.
func (c Chain) Contract(name string, sourceID uint64) (Contract, bool) {
	entry, ok := c.Contracts[name]
	if !ok {
		return Contract{}, false
	}
	if entry.Contract != nil {
		return *entry.Contract, true
	}
	if sourceID == 0 && c.SourceID != nil {
		sourceID = *c.SourceID
	}
	contract, ok := entry.BySource[sourceID]

	return contract, ok
}

// Multicall3 returns the multicall3 contract, if deployed.
func (c Chain) Multicall3() (Contract, bool) {
	return c.Contract(ContractMulticall3, 0)
}

// ENSRegistry returns the ENS registry contract, if deployed.
func (c Chain) ENSRegistry() (Contract, bool) {
	return c.Contract(ContractENSRegistry, 0)
}

// ENSUniversalResolver returns the ENS universal resolver contract, if deployed.
func (c Chain) ENSUniversalResolver() (Contract, bool) {
	return c.Contract(ContractENSUniversalResolver, 0)
}
