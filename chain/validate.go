package chain

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

const (
	minSymbolLen = 2
	maxSymbolLen = 6
)

// Validate checks the structural invariants of the descriptor: a positive id, a native symbol of
// 2 to 6 characters, a default RPC group, a default block explorer when explorers are configured
// and well formed contract entries.
//
// Every violation is reported as an *InvalidChainConfigError and the violations are joined, so
// errors.As yields the first one.
func (c Chain) Validate() error {
	return errors.Join(c.violations(false)...)
}

// ValidateStrict runs Validate and additionally requires a name, at least one HTTP URL in the
// default RPC group and formatters registered in the slot matching their kind. Manifests are
// validated this way.
func (c Chain) ValidateStrict() error {
	return errors.Join(c.violations(true)...)
}

func (c Chain) violations(strict bool) []error {
	var errs []error
	invalid := func(path, reason string, args ...any) {
		errs = append(errs, &InvalidChainConfigError{Path: path, Reason: fmt.Sprintf(reason, args...)})
	}

	if c.ID == 0 {
		invalid("id", "must be a positive integer")
	}
	if strict && c.Name == "" {
		invalid("name", "must not be empty")
	}
	if n := utf8.RuneCountInString(c.NativeCurrency.Symbol); n < minSymbolLen || n > maxSymbolLen {
		invalid("nativeCurrency.symbol", "length must be between %d and %d, got %d", minSymbolLen, maxSymbolLen, n)
	}

	rpc, ok := c.RPCURLs[DefaultGroup]
	switch {
	case !ok:
		invalid("rpcUrls.default", "is required")
	case strict && len(rpc.HTTP) == 0:
		invalid("rpcUrls.default.http", "must contain at least one url")
	}

	if len(c.BlockExplorers) > 0 {
		if _, ok := c.BlockExplorers[DefaultGroup]; !ok {
			invalid("blockExplorers.default", "is required when block explorers are configured")
		}
	}

	names := make([]string, 0, len(c.Contracts))
	for name := range c.Contracts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		entry := c.Contracts[name]
		switch {
		case entry.Contract != nil && entry.BySource != nil:
			invalid("contracts."+name, "must be either a single contract or a per source map")
		case entry.Contract == nil && len(entry.BySource) == 0:
			invalid("contracts."+name, "per source contract map must not be empty")
		}
	}

	if !strict {
		return errs
	}

	for _, kind := range formatter.Kinds() {
		f := formatter.Slot(c.Formatters, kind)
		if f == nil {
			continue
		}
		path := "formatters." + string(kind)
		if f.Format == nil {
			invalid(path, "format function is required")
		}
		if f.Type != kind {
			invalid(path+".type", "must be %q, got %q", kind, f.Type)
		}
	}

	return errs
}
