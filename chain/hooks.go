package chain

import (
	"context"
	"math/big"

	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
)

// HasFormatter reports whether the chain registers a formatter for kind.
func (c Chain) HasFormatter(kind formatter.Kind) bool {
	return formatter.Has(c.Formatters, kind)
}

// FormatterExclude returns the generic fields the chain's formatter for kind drops.
func (c Chain) FormatterExclude(kind formatter.Kind) []string {
	return formatter.Exclude(c.Formatters, kind)
}

// FormatterAccepts returns the chain specific input fields declared for kind.
func (c Chain) FormatterAccepts(kind formatter.Kind) []string {
	return formatter.Accepts(c.Formatters, kind)
}

// Capabilities describes every formatter slot of the chain.
func (c Chain) Capabilities() []formatter.Capability {
	return formatter.Describe(c.Formatters)
}

// HasSerializer reports whether the chain overrides transaction serialization.
func (c Chain) HasSerializer() bool {
	return c.Serializers != nil && c.Serializers.Transaction != nil
}

// HasFeePolicy reports whether any fee setting is customized.
func (c Chain) HasFeePolicy() bool {
	if c.Fees == nil {
		return false
	}

	return c.Fees.BaseFeeMultiplier.IsSet() || c.Fees.DefaultPriorityFee.IsSet() || c.Fees.EstimateFeesPerGas.IsSet()
}

// Format runs the formatting pipeline for kind using the generic routine of the package formatter.
func (c Chain) Format(kind formatter.Kind, raw formatter.Fields) (formatter.Fields, error) {
	return formatter.Format(c.Formatters, kind, raw, formatter.Generic(kind))
}

// SerializeTransaction encodes req with the chain's serializer, or the generic encoding when the
// chain has none. A request without a chain ID is stamped with the chain's ID.
func (c Chain) SerializeTransaction(req serializer.TransactionRequest, sig *serializer.Signature) ([]byte, error) {
	if req.ChainID == nil {
		req.ChainID = c.ChainID()
	}

	return serializer.Serialize(c.Serializers, req, sig)
}

// EstimateFeesPerGas runs the chain's fee policy.
func (c Chain) EstimateFeesPerGas(ctx context.Context, args fees.Args) (fees.Values, error) {
	return fees.EstimateFeesPerGas(ctx, c.Fees, args)
}

// EstimateMaxPriorityFeePerGas returns the priority fee the chain's fee policy yields.
func (c Chain) EstimateMaxPriorityFeePerGas(ctx context.Context, args fees.Args) (*big.Int, error) {
	return fees.EstimateMaxPriorityFeePerGas(ctx, c.Fees, args)
}
