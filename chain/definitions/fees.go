package definitions

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/params"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

const (
	ArbitrumOneID = 42161
	PolygonID     = 137
)

// PolygonMinPriorityFee is the default priority fee of Polygon transactions, set to the minimum tip
// Polygon PoS validators accept. It replaces the node's suggestion rather than bounding it.
var PolygonMinPriorityFee = new(big.Int).Mul(big.NewInt(30), big.NewInt(params.GWei))

// ArbitrumOne is the Arbitrum One rollup.
func ArbitrumOne() chain.Chain {
	return chain.Chain{
		ID:             ArbitrumOneID,
		Name:           "Arbitrum One",
		NativeCurrency: ether(),
		RPCURLs:        rpc("https://arb1.arbitrum.io/rpc"),
		BlockExplorers: explorer("Arbiscan", "https://arbiscan.io", "https://api.arbiscan.io/api"),
		Contracts: map[string]chain.ContractEntry{
			chain.ContractMulticall3: multicall3(7654707),
		},
		Fees: &fees.Policy{EstimateFeesPerGas: fees.Computed(EstimateArbitrumFees)},
	}
}

// Polygon is the Polygon PoS mainnet.
func Polygon() chain.Chain {
	return chain.Chain{
		ID:             PolygonID,
		Name:           "Polygon",
		NativeCurrency: chain.NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		RPCURLs:        rpc("https://polygon-rpc.com"),
		BlockExplorers: explorer("PolygonScan", "https://polygonscan.com", "https://api.polygonscan.com/api"),
		Contracts: map[string]chain.ContractEntry{
			chain.ContractMulticall3: multicall3(25770160),
		},
		Fees: &fees.Policy{DefaultPriorityFee: fees.Fixed(new(big.Int).Set(PolygonMinPriorityFee))},
	}
}

// EstimateArbitrumFees prices transactions on Arbitrum, where the sequencer ignores priority fees:
// the max fee is the multiplied base fee and the tip is zero.
func EstimateArbitrumFees(ctx context.Context, p fees.Params) (fees.Values, error) {
	if p.Type == fees.TypeLegacy {
		if p.Client == nil {
			return fees.Values{}, fees.ErrBackendRequired
		}
		gasPrice, err := p.Client.SuggestGasPrice(ctx)
		if err != nil {
			return fees.Values{}, err
		}

		return fees.Values{GasPrice: p.Multiply(gasPrice)}, nil
	}

	baseFee, ok, err := formatter.BigInt(p.Block, "baseFeePerGas")
	if err != nil {
		return fees.Values{}, err
	}
	if !ok {
		return fees.Values{}, fees.ErrEIP1559NotSupported
	}

	return fees.Values{MaxFeePerGas: p.Multiply(baseFee), MaxPriorityFeePerGas: new(big.Int)}, nil
}
