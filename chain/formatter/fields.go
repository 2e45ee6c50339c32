package formatter

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Fields is the field map of an entity as exchanged with a node over JSON-RPC.
type Fields map[string]any

// Clone returns a shallow copy of f. A nil map clones to an empty one.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	maps.Copy(out, f)

	return out
}

// Keys returns the field names of f in sorted order.
func (f Fields) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Omit returns a copy of f without the named fields.
func (f Fields) Omit(names ...string) Fields {
	out := f.Clone()
	for _, n := range names {
		delete(out, n)
	}

	return out
}

// Merge combines a generic shape with a formatter's custom output: generic fields listed in exclude
// are dropped, custom fields win on conflict and every other generic field passes through. Neither
// input is mutated.
func Merge(generic, custom Fields, exclude []string) Fields {
	out := generic.Omit(exclude...)
	maps.Copy(out, custom)

	return out
}

// BigInt reads a quantity field. Hex strings, decimal strings, *big.Int and Go integers are
// accepted. The second return value is false when the field is absent or null.
func BigInt(f Fields, key string) (*big.Int, bool, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, false, nil
	}

	n, err := toBig(v)
	if err != nil {
		return nil, true, fmt.Errorf("field %q: %w", key, err)
	}

	return n, true, nil
}

// Uint64 reads a quantity field that must fit in 64 bits.
func Uint64(f Fields, key string) (uint64, bool, error) {
	n, ok, err := BigInt(f, key)
	if !ok || err != nil {
		return 0, ok, err
	}
	if !n.IsUint64() {
		return 0, true, fmt.Errorf("field %q: value %s overflows uint64", key, n)
	}

	return n.Uint64(), true, nil
}

func toBig(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		return new(big.Int).Set(x), nil
	case big.Int:
		return new(big.Int).Set(&x), nil
	case *hexutil.Big:
		return new(big.Int).Set(x.ToInt()), nil
	case hexutil.Uint64:
		return new(big.Int).SetUint64(uint64(x)), nil
	case string:
		return parseQuantity(x)
	case json.Number:
		return parseQuantity(x.String())
	case int:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case float64:
		if x != float64(int64(x)) {
			return nil, fmt.Errorf("non-integral quantity %v", x)
		}

		return big.NewInt(int64(x)), nil
	default:
		return nil, fmt.Errorf("unsupported quantity type %T", v)
	}
}

func parseQuantity(s string) (*big.Int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := hexutil.DecodeBig(s)
		if err != nil {
			return nil, err
		}

		return n, nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid quantity %q", s)
	}

	return n, nil
}
