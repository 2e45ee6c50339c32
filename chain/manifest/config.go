package manifest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/definitions"
	"github.com/smartcontractkit/chainlink-chain-config/pkg/logger"
)

// DefaultEnvPrefix is the prefix of the environment variables overriding RPC URLs, e.g.
// CHAINS_RPC_10_HTTP.
const DefaultEnvPrefix = "CHAINS"

// ErrUnsupportedFormat is returned for manifest files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Format is the encoding of a manifest file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Config represents a collection of chain descriptors loaded from one or more manifest files.
type Config struct {
	// chains is keyed by chain ID so that later manifests override earlier ones.
	chains map[uint64]chain.Chain
}

// NewConfig creates a new config from a slice of chains. Duplicate chain IDs are overwritten.
func NewConfig(chains []chain.Chain) *Config {
	cmap := make(map[uint64]chain.Chain, len(chains))
	for _, c := range chains {
		cmap[c.ID] = c
	}

	return &Config{chains: cmap}
}

// Validate ensures that all chains pass chain.Chain.ValidateStrict.
func (c *Config) Validate() error {
	for _, ch := range c.List() {
		if err := ch.ValidateStrict(); err != nil {
			return fmt.Errorf("chain %d: %w", ch.ID, err)
		}
	}

	return nil
}

// List returns every chain in ascending ID order.
func (c *Config) List() []chain.Chain {
	out := make([]chain.Chain, 0, len(c.chains))
	for _, id := range c.ChainIDs() {
		out = append(out, c.chains[id])
	}

	return out
}

// Chains returns the chains as an eager collection.
func (c *Config) Chains() chain.Chains {
	return chain.NewChains(c.chains)
}

// ChainIDs returns the sorted chain IDs of the config.
func (c *Config) ChainIDs() []uint64 {
	return slices.Sorted(maps.Keys(c.chains))
}

// ChainByID retrieves a chain by its ID.
func (c *Config) ChainByID(id uint64) (chain.Chain, error) {
	ch, ok := c.chains[id]
	if !ok {
		return chain.Chain{}, &chain.ChainNotFoundError{ID: id}
	}

	return ch, nil
}

// Load implements chain.Loader, so a config can back a lazy collection.
func (c *Config) Load(_ context.Context, id uint64) (chain.Chain, error) {
	return c.ChainByID(id)
}

// Merge merges another config into the current config, overwriting chains with the same ID.
func (c *Config) Merge(other *Config) {
	maps.Copy(c.chains, other.chains)
}

// Manifest returns the file representation of the config. Hooks are not represented.
func (c *Config) Manifest() Manifest {
	chains := c.List()
	entries := make([]Entry, 0, len(chains))
	for _, ch := range chains {
		entries = append(entries, FromChain(ch))
	}

	return Manifest{Version: CurrentVersion, Chains: entries}
}

// MarshalYAML implements the yaml.Marshaler interface with a top-level "chains" key.
func (c *Config) MarshalYAML() (any, error) {
	return c.Manifest(), nil
}

// Encode serializes the config in the given format.
func (c *Config) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(c.Manifest())
	case FormatTOML:
		return toml.Marshal(c.Manifest())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ChainFilter reports whether a chain should be kept.
type ChainFilter func(chain.Chain) bool

// FilterWith returns a new Config containing only chains that pass every filter.
func (c *Config) FilterWith(filters ...ChainFilter) *Config {
	chains := c.List()
	for _, filter := range filters {
		chains = slices.DeleteFunc(chains, func(ch chain.Chain) bool {
			return !filter(ch)
		})
	}

	return NewConfig(chains)
}

// TestnetFilter matches testnets (true) or mainnets (false).
func TestnetFilter(testnet bool) ChainFilter {
	return func(ch chain.Chain) bool {
		return ch.Testnet == testnet
	}
}

// ChainIDFilter matches the given chain IDs.
func ChainIDFilter(ids ...uint64) ChainFilter {
	return func(ch chain.Chain) bool {
		return slices.Contains(ids, ch.ID)
	}
}

// SourceIDFilter matches chains settling on the given source chain.
func SourceIDFilter(id uint64) ChainFilter {
	return func(ch chain.Chain) bool {
		return ch.SourceID != nil && *ch.SourceID == id
	}
}

// transformURLs rewrites the RPC URLs of every group.
func (c *Config) transformURLs(http, ws URLTransformer) {
	for id, ch := range c.chains {
		groups := make(map[string]chain.RPCURLs, len(ch.RPCURLs))
		for name, urls := range ch.RPCURLs {
			if http != nil {
				urls.HTTP = transformAll(urls.HTTP, http)
			}
			if ws != nil {
				urls.WebSocket = transformAll(urls.WebSocket, ws)
			}
			groups[name] = urls
		}
		ch.RPCURLs = groups
		c.chains[id] = ch
	}
}

func transformAll(urls []string, transform URLTransformer) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = transform(u)
	}

	return out
}

// applyEnvOverrides replaces the default RPC group URLs with the comma separated values of
// <PREFIX>_RPC_<ID>_HTTP and <PREFIX>_RPC_<ID>_WS.
func (c *Config) applyEnvOverrides(prefix string, lggr logger.Logger) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for id, ch := range c.chains {
		http := splitURLs(v.GetString(fmt.Sprintf("rpc.%d.http", id)))
		ws := splitURLs(v.GetString(fmt.Sprintf("rpc.%d.ws", id)))
		if len(http) == 0 && len(ws) == 0 {
			continue
		}

		groups := maps.Clone(ch.RPCURLs)
		if groups == nil {
			groups = make(map[string]chain.RPCURLs)
		}
		urls := groups[chain.DefaultGroup]
		if len(http) > 0 {
			urls.HTTP = http
		}
		if len(ws) > 0 {
			urls.WebSocket = ws
		}
		groups[chain.DefaultGroup] = urls
		ch.RPCURLs = groups
		c.chains[id] = ch

		lggr.Debugw("Applied RPC URL override from environment", "chainID", id)
	}
}

func splitURLs(s string) []string {
	var out []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}

	return out
}

// Load loads the manifest files, in order, and merges them into a single Config. Later files
// override chains with the same ID.
//
// After merging, environment overrides are applied, then the URL transformers, and finally every
// chain is validated.
func Load(filePaths []string, opts ...LoadOption) (*Config, error) {
	cfg := NewConfig(nil)

	loadCfg := &loadConfig{lggr: logger.Nop()}
	for _, opt := range opts {
		opt(loadCfg)
	}

	for _, fp := range filePaths {
		fileCfg, err := loadFile(fp, loadCfg)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)

		loadCfg.lggr.Debugw("Loaded chain manifest", "path", fp, "chains", len(fileCfg.chains))
	}

	if loadCfg.envPrefix != "" {
		cfg.applyEnvOverrides(loadCfg.envPrefix, loadCfg.lggr)
	}

	if loadCfg.httpURLTransformer != nil || loadCfg.wsURLTransformer != nil {
		cfg.transformURLs(loadCfg.httpURLTransformer, loadCfg.wsURLTransformer)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate chains configuration: %w", err)
	}

	return cfg, nil
}

func loadFile(path string, loadCfg *loadConfig) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	m, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal chains %s in %s: %w", format, path, err)
	}

	chains := make([]chain.Chain, 0, len(m.Chains))
	for _, e := range m.Chains {
		ch, err := e.Chain()
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", e.ID, err)
		}
		if ch, err = attachHooks(ch, e, loadCfg.wellKnownHooks); err != nil {
			return nil, fmt.Errorf("chain %d: %w", e.ID, err)
		}
		chains = append(chains, ch)
	}

	return NewConfig(chains), nil
}

// Decode parses a manifest document.
func Decode(data []byte, format Format) (Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return Manifest{}, err
		}
	default:
		return Manifest{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err := m.checkVersion(); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

// attachHooks copies the formatters, serializers and fee policy of a well known chain onto ch,
// then layers the constant fee settings of the entry on top.
func attachHooks(ch chain.Chain, e Entry, wellKnown bool) (chain.Chain, error) {
	switch {
	case e.HooksFrom != nil:
		hooks, ok := definitions.Hooks(*e.HooksFrom)
		if !ok {
			return chain.Chain{}, fmt.Errorf("hooks_from: no well known hooks for chain %d", *e.HooksFrom)
		}
		ch.Formatters, ch.Serializers, ch.Fees = hooks.Formatters, hooks.Serializers, hooks.Fees
	case wellKnown:
		if hooks, ok := definitions.Hooks(e.ID); ok {
			ch.Formatters, ch.Serializers, ch.Fees = hooks.Formatters, hooks.Serializers, hooks.Fees
		}
	}

	policy, err := e.Fees.Policy(ch.Fees)
	if err != nil {
		return chain.Chain{}, fmt.Errorf("fees: %w", err)
	}
	ch.Fees = policy

	return ch, nil
}

// LoadOption defines a function which modifies the load configuration.
type LoadOption func(*loadConfig)

// loadConfig holds the configuration for loading the config.
type loadConfig struct {
	httpURLTransformer URLTransformer
	wsURLTransformer   URLTransformer
	envPrefix          string
	wellKnownHooks     bool
	lggr               logger.Logger
}

// URLTransformer is a function that transforms a URL.
type URLTransformer func(string) string

// WithHTTPURLTransformer transforms the HTTP RPC URLs after loading.
func WithHTTPURLTransformer(t URLTransformer) LoadOption {
	return func(opts *loadConfig) {
		opts.httpURLTransformer = t
	}
}

// WithWSURLTransformer transforms the websocket RPC URLs after loading.
func WithWSURLTransformer(t URLTransformer) LoadOption {
	return func(opts *loadConfig) {
		opts.wsURLTransformer = t
	}
}

// WithEnvOverrides enables RPC URL overrides from environment variables with DefaultEnvPrefix.
func WithEnvOverrides() LoadOption {
	return WithEnvPrefix(DefaultEnvPrefix)
}

// WithEnvPrefix enables RPC URL overrides from environment variables with a custom prefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(opts *loadConfig) {
		opts.envPrefix = prefix
	}
}

// WithWellKnownHooks attaches the hooks of the well known chain with the same ID to entries that
// do not set hooks_from.
func WithWellKnownHooks() LoadOption {
	return func(opts *loadConfig) {
		opts.wellKnownHooks = true
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(lggr logger.Logger) LoadOption {
	return func(opts *loadConfig) {
		if lggr != nil {
			opts.lggr = lggr
		}
	}
}
