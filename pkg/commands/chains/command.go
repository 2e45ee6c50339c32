package chains

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/manifest"
)

// NewCommand creates a new chains command with all subcommands.
//
// Every subcommand reads the manifests named by --manifest, or the built in chain definitions
// when none is given.
//
// Usage:
//
//	rootCmd.AddCommand(chains.NewCommand(chains.Config{Logger: lggr}))
func NewCommand(cfg Config) *cobra.Command {
	cfg.deps()

	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Chain manifest commands",
	}

	cmd.AddCommand(
		newValidateCmd(cfg),
		newListCmd(cfg),
		newShowCmd(cfg),
	)

	cmd.PersistentFlags().
		StringSliceP("manifest", "m", nil, "Manifest files (YAML or TOML), later files override earlier ones")
	cmd.PersistentFlags().
		Bool("well-known-hooks", false, "Attach the hooks of built in chains to manifest chains with the same ID")
	cmd.PersistentFlags().
		Bool("env-overrides", false, "Override RPC URLs from "+manifest.DefaultEnvPrefix+"_RPC_<ID>_HTTP and _WS")

	return cmd
}

func newValidateCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate chain manifests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chains, err := load(cmd, cfg)
			if err != nil {
				return err
			}
			if err := chains.Validate(); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Validated %d chains\n", len(chains.ChainIDs()))

			return err
		},
	}
}

func newListCmd(cfg Config) *cobra.Command {
	var (
		network  string
		sourceID uint64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chains, err := load(cmd, cfg)
			if err != nil {
				return err
			}

			var filters []manifest.ChainFilter
			switch network {
			case "all":
			case "mainnet":
				filters = append(filters, manifest.TestnetFilter(false))
			case "testnet":
				filters = append(filters, manifest.TestnetFilter(true))
			default:
				return fmt.Errorf("invalid network %q: must be one of all, mainnet, testnet", network)
			}
			if sourceID != 0 {
				filters = append(filters, manifest.SourceIDFilter(sourceID))
			}

			writeTable(cmd.OutOrStdout(), chains.FilterWith(filters...).List())

			return nil
		},
	}

	cmd.Flags().StringVarP(&network, "network", "n", "all", "Network type: all, mainnet or testnet")
	cmd.Flags().Uint64Var(&sourceID, "source-id", 0, "Only list chains settling on this chain ID")

	return cmd
}

func newShowCmd(cfg Config) *cobra.Command {
	format := formatValue(manifest.FormatYAML)

	cmd := &cobra.Command{
		Use:   "show <chain-id>",
		Short: "Show a chain in manifest form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid chain id %q: %w", args[0], err)
			}

			chains, err := load(cmd, cfg)
			if err != nil {
				return err
			}
			ch, err := chains.ChainByID(id)
			if err != nil {
				return err
			}

			data, err := manifest.NewConfig([]chain.Chain{ch}).Encode(manifest.Format(format))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}

			return writeHooks(out, ch)
		},
	}

	cmd.Flags().VarP(&format, "format", "f", "Output format: yaml or toml")

	return cmd
}

// load reads the manifests named by the persistent flags, or the built in definitions.
func load(cmd *cobra.Command, cfg Config) (*manifest.Config, error) {
	paths, err := cmd.Flags().GetStringSlice("manifest")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		cfg.Logger.Debugw("No manifest given, using built in chains")

		return manifest.NewConfig(cfg.Deps.WellKnown()), nil
	}

	opts := []manifest.LoadOption{manifest.WithLogger(cfg.Logger)}
	if ok, _ := cmd.Flags().GetBool("well-known-hooks"); ok {
		opts = append(opts, manifest.WithWellKnownHooks())
	}
	if ok, _ := cmd.Flags().GetBool("env-overrides"); ok {
		opts = append(opts, manifest.WithEnvOverrides())
	}

	return cfg.Deps.ManifestLoader(paths, opts...)
}

func writeTable(w io.Writer, chains []chain.Chain) {
	rows := make([][]string, 0, len(chains))
	for _, ch := range chains {
		source := "-"
		if ch.SourceID != nil {
			source = strconv.FormatUint(*ch.SourceID, 10)
		}
		selector := "-"
		if sel, err := ch.Selector(); err == nil {
			selector = strconv.FormatUint(sel, 10)
		}
		rows = append(rows, []string{
			strconv.FormatUint(ch.ID, 10),
			ch.Name,
			ch.NativeCurrency.Symbol,
			strconv.FormatBool(ch.Testnet),
			source,
			selector,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Symbol", "Testnet", "Source", "Selector"})
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{
		Left:   false,
		Right:  false,
		Top:    true,
		Bottom: true,
	})
	table.AppendBulk(rows)
	table.Render()
}

// writeHooks describes the hooks of ch as comments, which both YAML and TOML ignore.
func writeHooks(w io.Writer, ch chain.Chain) error {
	var kinds []string
	for _, c := range ch.Capabilities() {
		if c.Registered {
			kinds = append(kinds, string(c.Kind))
		}
	}
	formatters := "none"
	if len(kinds) > 0 {
		formatters = strings.Join(kinds, ", ")
	}

	_, err := fmt.Fprintf(w, "# formatters: %s\n# serializer: %t\n# fee policy: %t\n",
		formatters, ch.HasSerializer(), ch.HasFeePolicy())

	return err
}

// formatValue is a pflag.Value restricted to the manifest formats.
type formatValue manifest.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	switch manifest.Format(s) {
	case manifest.FormatYAML, manifest.FormatTOML:
		*f = formatValue(s)

		return nil
	default:
		return fmt.Errorf("must be %s or %s", manifest.FormatYAML, manifest.FormatTOML)
	}
}

func (f *formatValue) Type() string { return "format" }
