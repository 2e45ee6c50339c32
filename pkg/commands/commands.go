// Package commands provides modular CLI command packages for tools working with chain
// descriptors.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	commands := commands.New(lggr)
//	app.AddCommand(
//	    commands.Chains(),
//	)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/smartcontractkit/chainlink-chain-config/pkg/commands/chains"
//
//	app.AddCommand(chains.NewCommand(chains.Config{
//	    Logger: lggr,
//	    Deps:   &chains.Deps{...},  // inject fakes for testing
//	}))
package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/chainlink-chain-config/pkg/commands/chains"
	"github.com/smartcontractkit/chainlink-chain-config/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
// This allows setting the logger once and reusing it across all commands.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger.
// The logger will be shared across all commands created by this factory.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// Chains creates the chains command group for validating and inspecting chain manifests.
//
// Usage:
//
//	cmds := commands.New(lggr)
//	rootCmd.AddCommand(cmds.Chains())
func (c *Commands) Chains() *cobra.Command {
	return chains.NewCommand(chains.Config{
		Logger: c.lggr,
	})
}
