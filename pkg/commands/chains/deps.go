// Package chains provides CLI commands for inspecting chain manifests.
package chains

import (
	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/definitions"
	"github.com/smartcontractkit/chainlink-chain-config/chain/manifest"
	"github.com/smartcontractkit/chainlink-chain-config/pkg/logger"
)

// ManifestLoaderFunc loads and validates manifest files.
type ManifestLoaderFunc func(filePaths []string, opts ...manifest.LoadOption) (*manifest.Config, error)

// WellKnownFunc returns the built in chain descriptors used when no manifest is given.
type WellKnownFunc func() []chain.Chain

// Deps holds the injectable dependencies for chains commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ManifestLoader loads manifest files.
	// Default: manifest.Load
	ManifestLoader ManifestLoaderFunc

	// WellKnown returns the built in descriptors.
	// Default: definitions.All
	WellKnown WellKnownFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ManifestLoader == nil {
		d.ManifestLoader = manifest.Load
	}
	if d.WellKnown == nil {
		d.WellKnown = definitions.All
	}
}

// Config holds the configuration for chains commands.
type Config struct {
	Logger logger.Logger
	// Deps are optional; production defaults are used when nil.
	Deps *Deps
}

func (c *Config) deps() {
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	if c.Deps == nil {
		c.Deps = &Deps{}
	}
	c.Deps.applyDefaults()
}
