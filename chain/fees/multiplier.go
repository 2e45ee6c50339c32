package fees

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Multiplier returns a function scaling a value by m in the integer domain. m is converted to an
// exact fixed-point fraction from its shortest decimal representation and the product is truncated.
func Multiplier(m float64) (func(*big.Int) *big.Int, error) {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return nil, fmt.Errorf("invalid base fee multiplier %v", m)
	}
	if m < 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBaseFeeMultiplierTooLow, m)
	}

	s := strconv.FormatFloat(m, 'f', -1, 64)
	decimals := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		decimals = len(s) - i - 1
	}

	num, ok := new(big.Int).SetString(strings.Replace(s, ".", "", 1), 10)
	if !ok {
		return nil, fmt.Errorf("invalid base fee multiplier %v", m)
	}
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	return func(x *big.Int) *big.Int {
		if x == nil {
			return nil
		}
		out := new(big.Int).Mul(x, num)

		return out.Quo(out, den)
	}, nil
}
