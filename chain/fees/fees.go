package fees

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"

	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
)

// DefaultBaseFeeMultiplier is applied to the network base fee when a chain does not configure one.
const DefaultBaseFeeMultiplier = 1.2

// Type selects which fee values are computed.
type Type string

const (
	TypeLegacy  Type = "legacy"
	TypeEIP1559 Type = "eip1559"
)

// Values are per gas fee values. Legacy estimates set GasPrice only; EIP-1559 estimates set
// MaxFeePerGas and MaxPriorityFeePerGas.
type Values struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Backend is the network fee source. It is satisfied by *ethclient.Client.
type Backend interface {
	ethereum.GasPricer
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
}

// Policy is the fee slot of a chain descriptor. Every field is optional.
type Policy struct {
	// BaseFeeMultiplier scales the network base fee to absorb fluctuations. Defaults to
	// DefaultBaseFeeMultiplier and must not be below 1.
	BaseFeeMultiplier Value[float64]
	// DefaultPriorityFee is used as maxPriorityFeePerGas when the request does not set one.
	DefaultPriorityFee Value[*big.Int]
	// EstimateFeesPerGas replaces the whole estimation when set.
	EstimateFeesPerGas Value[Values]
}

// Params is passed to every policy function.
type Params struct {
	// Block is the latest block, already formatted for the chain.
	Block formatter.Fields
	// Client is the backend the estimation runs against.
	Client Backend
	// Request is the transaction being prepared. It is nil outside transaction preparation.
	Request *serializer.TransactionRequest
	// Multiply applies the resolved base fee multiplier. It is nil while the multiplier itself is
	// being resolved.
	Multiply func(*big.Int) *big.Int
	// Type is the kind of fee values being computed.
	Type Type
}

// BlockFetcher returns the latest formatted block.
type BlockFetcher func(ctx context.Context) (formatter.Fields, error)

// Args are the inputs of an estimation.
type Args struct {
	Client Backend
	// Block is the latest formatted block. When nil it is fetched with FetchBlock.
	Block      formatter.Fields
	FetchBlock BlockFetcher
	Request    *serializer.TransactionRequest
	// Type defaults to TypeEIP1559.
	Type Type
}

func (a Args) feeType() Type {
	if a.Type == "" {
		return TypeEIP1559
	}

	return a.Type
}

func (a Args) params(multiply func(*big.Int) *big.Int) Params {
	return Params{
		Block:    a.Block,
		Client:   a.Client,
		Request:  a.Request,
		Multiply: multiply,
		Type:     a.feeType(),
	}
}
