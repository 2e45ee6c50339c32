package definitions

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

type stubBackend struct {
	gasPrice *big.Int
	tip      *big.Int
}

func (b stubBackend) SuggestGasPrice(context.Context) (*big.Int, error)  { return b.gasPrice, nil }
func (b stubBackend) SuggestGasTipCap(context.Context) (*big.Int, error) { return b.tip, nil }

func TestArbitrumFees(t *testing.T) {
	t.Parallel()

	c := ArbitrumOne()
	backend := stubBackend{gasPrice: big.NewInt(100), tip: big.NewInt(5)}

	got, err := c.EstimateFeesPerGas(t.Context(), fees.Args{
		Client: backend,
		Block:  formatter.Fields{"baseFeePerGas": big.NewInt(10000000)},
	})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(12000000), got.MaxFeePerGas)
	assert.Equal(t, 0, got.MaxPriorityFeePerGas.Sign())

	got, err = c.EstimateFeesPerGas(t.Context(), fees.Args{Client: backend, Type: fees.TypeLegacy})
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(120), got.GasPrice)

	_, err = c.EstimateFeesPerGas(t.Context(), fees.Args{Client: backend, Block: formatter.Fields{}})
	require.ErrorIs(t, err, fees.ErrEIP1559NotSupported)

	var perr *fees.FeePolicyError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "estimateFeesPerGas", perr.Field)
}

func TestPolygonFees(t *testing.T) {
	t.Parallel()

	c := Polygon()
	backend := stubBackend{gasPrice: big.NewInt(100), tip: big.NewInt(5)}

	tip, err := c.EstimateMaxPriorityFeePerGas(t.Context(), fees.Args{Client: backend})
	require.NoError(t, err)
	assert.Equal(t, PolygonMinPriorityFee, tip)
	assert.NotSame(t, PolygonMinPriorityFee, tip)

	got, err := c.EstimateFeesPerGas(t.Context(), fees.Args{
		Client: backend,
		Block:  formatter.Fields{"baseFeePerGas": big.NewInt(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Add(big.NewInt(12), PolygonMinPriorityFee), got.MaxFeePerGas)

	// A higher node suggestion does not raise the default.
	busy := stubBackend{gasPrice: big.NewInt(100), tip: new(big.Int).Mul(PolygonMinPriorityFee, big.NewInt(3))}
	tip, err = c.EstimateMaxPriorityFeePerGas(t.Context(), fees.Args{Client: busy})
	require.NoError(t, err)
	assert.Equal(t, PolygonMinPriorityFee, tip)
}
