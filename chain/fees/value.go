package fees

import "context"

// Func computes a policy value. It may block on network calls and must honor ctx.
type Func[T any] func(ctx context.Context, p Params) (T, error)

type valueKind uint8

const (
	valueAbsent valueKind = iota
	valueFixed
	valueComputed
)

// Value is a policy setting that is either absent (the zero value), a fixed constant or a
// function computed per call.
type Value[T any] struct {
	kind  valueKind
	fixed T
	fn    Func[T]
}

// Fixed returns a Value that always resolves to v.
func Fixed[T any](v T) Value[T] {
	return Value[T]{kind: valueFixed, fixed: v}
}

// Computed returns a Value resolved by calling fn. A nil fn yields an absent Value.
func Computed[T any](fn Func[T]) Value[T] {
	if fn == nil {
		return Value[T]{}
	}

	return Value[T]{kind: valueComputed, fn: fn}
}

// IsSet reports whether the value is configured.
func (v Value[T]) IsSet() bool { return v.kind != valueAbsent }

// IsFixed reports whether the value is a constant.
func (v Value[T]) IsFixed() bool { return v.kind == valueFixed }

// IsComputed reports whether the value is a function.
func (v Value[T]) IsComputed() bool { return v.kind == valueComputed }

// Resolve returns the configured value. The boolean is false when the value is absent, in which
// case the caller applies its own default.
func (v Value[T]) Resolve(ctx context.Context, p Params) (T, bool, error) {
	switch v.kind {
	case valueFixed:
		return v.fixed, true, nil
	case valueComputed:
		out, err := v.fn(ctx, p)

		return out, true, err
	default:
		var zero T
		return zero, false, nil
	}
}
