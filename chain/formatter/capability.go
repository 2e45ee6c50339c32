package formatter

import (
	"fmt"
	"slices"
	"strings"
)

// Capability describes what a chain registers for one entity kind.
type Capability struct {
	Kind       Kind
	Registered bool
	Exclude    []string
	Accepts    []string
}

// Has reports whether a formatter is registered for kind.
func Has(fs *Formatters, kind Kind) bool {
	_, ok := Lookup(fs, kind)

	return ok
}

// Exclude returns the generic fields the formatter for kind drops before merging. It is empty when
// no formatter is registered.
func Exclude(fs *Formatters, kind Kind) []string {
	f, ok := Lookup(fs, kind)
	if !ok {
		return nil
	}

	return slices.Clone(f.Exclude)
}

// Accepts returns the chain specific input fields the formatter for kind declares.
func Accepts(fs *Formatters, kind Kind) []string {
	f, ok := Lookup(fs, kind)
	if !ok {
		return nil
	}

	return slices.Clone(f.Accepts)
}

// Describe reports the capability of every entity kind, in Kinds order.
func Describe(fs *Formatters) []Capability {
	kinds := Kinds()
	caps := make([]Capability, 0, len(kinds))
	for _, k := range kinds {
		caps = append(caps, Capability{
			Kind:       k,
			Registered: Has(fs, k),
			Exclude:    Exclude(fs, k),
			Accepts:    Accepts(fs, k),
		})
	}

	return caps
}

// CheckShape verifies that every required field is present and non-nil.
func CheckShape(kind Kind, f Fields, required ...string) error {
	var missing []string
	for _, name := range required {
		if v, ok := f[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &FormatterError{Kind: kind, Err: fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))}
	}

	return nil
}

// CheckRequest verifies that every field of a transaction request is either part of the generic
// request shape or declared by the chain's transactionRequest formatter.
func CheckRequest(fs *Formatters, request Fields) error {
	accepted := Accepts(fs, KindTransactionRequest)

	var unknown []string
	for _, name := range request.Keys() {
		if IsRequestField(name) || slices.Contains(accepted, name) {
			continue
		}
		unknown = append(unknown, name)
	}
	if len(unknown) > 0 {
		return &FormatterError{
			Kind: KindTransactionRequest,
			Err:  fmt.Errorf("fields not accepted by chain: %s", strings.Join(unknown, ", ")),
		}
	}

	return nil
}
