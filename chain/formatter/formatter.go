package formatter

import (
	"errors"
	"fmt"
)

// Kind identifies the entity a formatter reshapes.
type Kind string

const (
	KindBlock              Kind = "block"
	KindTransaction        Kind = "transaction"
	KindTransactionReceipt Kind = "transactionReceipt"
	KindTransactionRequest Kind = "transactionRequest"
)

// Kinds returns every entity kind a chain can register a formatter for.
func Kinds() []Kind {
	return []Kind{KindBlock, KindTransaction, KindTransactionReceipt, KindTransactionRequest}
}

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindBlock, KindTransaction, KindTransactionReceipt, KindTransactionRequest:
		return true
	default:
		return false
	}
}

// FormatFunc reshapes a raw entity into the chain specific shape.
type FormatFunc func(raw Fields) (Fields, error)

// GenericFunc produces the chain agnostic shape of a raw entity.
type GenericFunc func(raw Fields) (Fields, error)

// Formatter is a per entity hook registered on a chain.
type Formatter struct {
	// Type must match the slot the formatter is registered in.
	Type Kind
	// Format produces the custom fields. It must not mutate its input.
	Format FormatFunc
	// Exclude names generic fields dropped before the custom output is merged in.
	Exclude []string
	// Accepts names the chain specific input fields the formatter understands. Only meaningful
	// for transaction requests, where it declares which extra fields a serializer will receive.
	Accepts []string
}

// Formatters is the registry of per entity formatters carried by a chain descriptor.
type Formatters struct {
	Block              *Formatter
	Transaction        *Formatter
	TransactionReceipt *Formatter
	TransactionRequest *Formatter
}

// Slot returns whatever is registered in the slot for kind, including formatters without a Format
// function. Use Lookup to find a usable formatter.
func Slot(fs *Formatters, kind Kind) *Formatter {
	if fs == nil {
		return nil
	}

	switch kind {
	case KindBlock:
		return fs.Block
	case KindTransaction:
		return fs.Transaction
	case KindTransactionReceipt:
		return fs.TransactionReceipt
	case KindTransactionRequest:
		return fs.TransactionRequest
	default:
		return nil
	}
}

// Lookup returns the formatter registered for kind. A nil registry or an empty slot reports false,
// in which case callers use the generic shape as-is.
func Lookup(fs *Formatters, kind Kind) (*Formatter, bool) {
	f := Slot(fs, kind)
	if f == nil || f.Format == nil {
		return nil, false
	}

	return f, true
}

// Apply invokes the formatter on raw and returns its output unmodified. Any failure is reported
// as a *FormatterError; one returned by the hook itself is passed through untouched.
func Apply(f *Formatter, raw Fields) (Fields, error) {
	if f == nil || f.Format == nil {
		return raw, nil
	}

	out, err := f.Format(raw)
	if err != nil {
		var ferr *FormatterError
		if errors.As(err, &ferr) {
			return nil, err
		}

		return nil, &FormatterError{Kind: f.Type, Err: err}
	}

	return out, nil
}

// Format is the single formatting pipeline used at every call site. The generic routine is run
// first (identity when nil). When a formatter is registered for kind its output is merged over the
// generic shape following Merge.
func Format(fs *Formatters, kind Kind, raw Fields, generic GenericFunc) (Fields, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	base := raw
	if generic != nil {
		var err error
		base, err = generic(raw)
		if err != nil {
			return nil, fmt.Errorf("generic %s formatting: %w", kind, err)
		}
	}

	f, ok := Lookup(fs, kind)
	if !ok {
		return base, nil
	}

	custom, err := Apply(f, raw)
	if err != nil {
		return nil, err
	}

	return Merge(base, custom, f.Exclude), nil
}
