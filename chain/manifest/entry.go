package manifest

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
)

// Manifest is the file representation of a set of chains.
type Manifest struct {
	// Version is the schema version of the file. Files without one are read as CurrentVersion.
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`
	// A YAML array (or TOML array of tables) of chains.
	Chains []Entry `yaml:"chains" toml:"chains"`
}

// CurrentVersion is the schema version written by this package.
const CurrentVersion = "1.0.0"

// supportedVersions is the range of schema versions this package reads.
const supportedVersions = "^1.0.0"

// ErrUnsupportedVersion is returned for manifests with a schema version outside supportedVersions.
var ErrUnsupportedVersion = errors.New("unsupported manifest version")

func (m Manifest) checkVersion() error {
	if m.Version == "" {
		return nil
	}

	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrUnsupportedVersion, m.Version, err)
	}
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w %q: must satisfy %s", ErrUnsupportedVersion, m.Version, supportedVersions)
	}

	return nil
}

// Entry is the file representation of one chain descriptor.
type Entry struct {
	ID             uint64                         `yaml:"id" toml:"id"`
	Name           string                         `yaml:"name" toml:"name"`
	NativeCurrency chain.NativeCurrency           `yaml:"native_currency" toml:"native_currency"`
	RPCURLs        map[string]chain.RPCURLs       `yaml:"rpc_urls" toml:"rpc_urls"`
	BlockExplorers map[string]chain.BlockExplorer `yaml:"block_explorers,omitempty" toml:"block_explorers,omitempty"`
	Contracts      map[string]ContractConfig      `yaml:"contracts,omitempty" toml:"contracts,omitempty"`
	SourceID       *uint64                        `yaml:"source_id,omitempty" toml:"source_id,omitempty"`
	Testnet        bool                           `yaml:"testnet,omitempty" toml:"testnet,omitempty"`
	// HooksFrom names the well known chain whose formatters, serializers and fee policy are
	// attached to this chain.
	HooksFrom *uint64     `yaml:"hooks_from,omitempty" toml:"hooks_from,omitempty"`
	Fees      *FeesConfig `yaml:"fees,omitempty" toml:"fees,omitempty"`
}

// ContractConfig is either a single contract (Address set) or a per source chain map (BySource
// set, keyed by the decimal source chain ID).
type ContractConfig struct {
	Address      string                    `yaml:"address,omitempty" toml:"address,omitempty"`
	BlockCreated *uint64                   `yaml:"block_created,omitempty" toml:"block_created,omitempty"`
	BySource     map[string]ContractConfig `yaml:"by_source,omitempty" toml:"by_source,omitempty"`
}

// FeesConfig holds the constant fee settings a manifest may set. Computed settings can only be
// attached through HooksFrom.
type FeesConfig struct {
	BaseFeeMultiplier *float64 `yaml:"base_fee_multiplier,omitempty" toml:"base_fee_multiplier,omitempty"`
	// DefaultPriorityFee is a decimal or 0x prefixed wei amount.
	DefaultPriorityFee string `yaml:"default_priority_fee,omitempty" toml:"default_priority_fee,omitempty"`
}

// Chain converts the entry into a descriptor without hooks.
func (e Entry) Chain() (chain.Chain, error) {
	c := chain.Chain{
		ID:             e.ID,
		Name:           e.Name,
		NativeCurrency: e.NativeCurrency,
		RPCURLs:        e.RPCURLs,
		BlockExplorers: e.BlockExplorers,
		SourceID:       e.SourceID,
		Testnet:        e.Testnet,
	}

	if len(e.Contracts) > 0 {
		c.Contracts = make(map[string]chain.ContractEntry, len(e.Contracts))
		for name, cc := range e.Contracts {
			entry, err := cc.entry()
			if err != nil {
				return chain.Chain{}, fmt.Errorf("contract %s: %w", name, err)
			}
			c.Contracts[name] = entry
		}
	}

	return c, nil
}

func (cc ContractConfig) entry() (chain.ContractEntry, error) {
	if cc.Address != "" && len(cc.BySource) > 0 {
		return chain.ContractEntry{}, errors.New("address and by_source are mutually exclusive")
	}
	if cc.BySource == nil {
		contract, err := cc.contract()
		if err != nil {
			return chain.ContractEntry{}, err
		}

		return chain.Single(contract), nil
	}

	bySource := make(map[uint64]chain.Contract, len(cc.BySource))
	for key, sub := range cc.BySource {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return chain.ContractEntry{}, fmt.Errorf("invalid source chain id %q: %w", key, err)
		}
		contract, err := sub.contract()
		if err != nil {
			return chain.ContractEntry{}, fmt.Errorf("source %d: %w", id, err)
		}
		bySource[id] = contract
	}

	return chain.PerSource(bySource), nil
}

func (cc ContractConfig) contract() (chain.Contract, error) {
	if !common.IsHexAddress(cc.Address) {
		return chain.Contract{}, fmt.Errorf("invalid address %q", cc.Address)
	}

	return chain.Contract{Address: common.HexToAddress(cc.Address), BlockCreated: cc.BlockCreated}, nil
}

// Policy builds a fee policy from the constant settings, layered over base. base is not modified.
func (f *FeesConfig) Policy(base *fees.Policy) (*fees.Policy, error) {
	if f == nil {
		return base, nil
	}

	policy := &fees.Policy{}
	if base != nil {
		*policy = *base
	}
	if f.BaseFeeMultiplier != nil {
		if _, err := fees.Multiplier(*f.BaseFeeMultiplier); err != nil {
			return nil, err
		}
		policy.BaseFeeMultiplier = fees.Fixed(*f.BaseFeeMultiplier)
	}
	if f.DefaultPriorityFee != "" {
		fee, err := parseWei(f.DefaultPriorityFee)
		if err != nil {
			return nil, fmt.Errorf("default_priority_fee: %w", err)
		}
		policy.DefaultPriorityFee = fees.Fixed(fee)
	}

	return policy, nil
}

func parseWei(s string) (*big.Int, error) {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return hexutil.DecodeBig(s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}

	return n, nil
}

// FromChain converts a descriptor into its file representation. Hooks cannot be represented and
// are dropped.
func FromChain(c chain.Chain) Entry {
	e := Entry{
		ID:             c.ID,
		Name:           c.Name,
		NativeCurrency: c.NativeCurrency,
		RPCURLs:        c.RPCURLs,
		BlockExplorers: c.BlockExplorers,
		SourceID:       c.SourceID,
		Testnet:        c.Testnet,
	}

	if len(c.Contracts) > 0 {
		e.Contracts = make(map[string]ContractConfig, len(c.Contracts))
		for name, entry := range c.Contracts {
			if entry.Contract != nil {
				e.Contracts[name] = contractConfig(*entry.Contract)
				continue
			}
			bySource := make(map[string]ContractConfig, len(entry.BySource))
			for id, contract := range entry.BySource {
				bySource[strconv.FormatUint(id, 10)] = contractConfig(contract)
			}
			e.Contracts[name] = ContractConfig{BySource: bySource}
		}
	}

	return e
}

func contractConfig(c chain.Contract) ContractConfig {
	return ContractConfig{Address: c.Address.Hex(), BlockCreated: c.BlockCreated}
}
