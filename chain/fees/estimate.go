package fees

import (
	"context"
	"fmt"
	"math/big"

	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

// EstimateFeesPerGas computes per gas fee values for a pending transaction.
//
// The base fee multiplier is resolved first (it backs Params.Multiply). A configured
// EstimateFeesPerGas override then provides the final answer. Without one the EIP-1559 path
// multiplies the block base fee and adds the priority fee, while the legacy path multiplies the
// backend gas price. Fee values set explicitly on the request always win.
func EstimateFeesPerGas(ctx context.Context, policy *Policy, args Args) (Values, error) {
	if policy == nil {
		policy = &Policy{}
	}

	var err error
	if args.Block, err = latestBlock(ctx, args); err != nil {
		return Values{}, err
	}

	multiply, err := resolveMultiplier(ctx, policy, args)
	if err != nil {
		return Values{}, err
	}

	if policy.EstimateFeesPerGas.IsSet() {
		values, _, err := policy.EstimateFeesPerGas.Resolve(ctx, args.params(multiply))
		if err != nil {
			return Values{}, policyError("estimateFeesPerGas", err)
		}

		return values, nil
	}

	if err := ctx.Err(); err != nil {
		return Values{}, err
	}

	if args.feeType() == TypeLegacy {
		return estimateLegacy(ctx, args, multiply)
	}

	return estimateEIP1559(ctx, policy, args, multiply)
}

// EstimateMaxPriorityFeePerGas returns the priority fee used when a request does not set one: the
// chain's DefaultPriorityFee when configured, otherwise the backend's suggested tip.
func EstimateMaxPriorityFeePerGas(ctx context.Context, policy *Policy, args Args) (*big.Int, error) {
	if policy == nil {
		policy = &Policy{}
	}

	var err error
	if args.Block, err = latestBlock(ctx, args); err != nil {
		return nil, err
	}

	return estimatePriorityFee(ctx, policy, args, nil)
}

func estimateEIP1559(ctx context.Context, policy *Policy, args Args, multiply func(*big.Int) *big.Int) (Values, error) {
	baseFee, ok, err := formatter.BigInt(args.Block, "baseFeePerGas")
	if err != nil {
		return Values{}, fmt.Errorf("latest block: %w", err)
	}
	if !ok {
		return Values{}, ErrEIP1559NotSupported
	}

	var priorityFee *big.Int
	if args.Request != nil && args.Request.MaxPriorityFeePerGas != nil {
		priorityFee = args.Request.MaxPriorityFeePerGas
	} else {
		priorityFee, err = estimatePriorityFee(ctx, policy, args, multiply)
		if err != nil {
			return Values{}, err
		}
	}

	maxFee := new(big.Int).Add(multiply(baseFee), priorityFee)
	if args.Request != nil && args.Request.MaxFeePerGas != nil {
		maxFee = args.Request.MaxFeePerGas
	}

	return Values{MaxFeePerGas: maxFee, MaxPriorityFeePerGas: priorityFee}, nil
}

func estimateLegacy(ctx context.Context, args Args, multiply func(*big.Int) *big.Int) (Values, error) {
	if args.Request != nil && args.Request.GasPrice != nil {
		return Values{GasPrice: args.Request.GasPrice}, nil
	}
	if args.Client == nil {
		return Values{}, ErrBackendRequired
	}

	gasPrice, err := args.Client.SuggestGasPrice(ctx)
	if err != nil {
		return Values{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	return Values{GasPrice: multiply(gasPrice)}, nil
}

func estimatePriorityFee(ctx context.Context, policy *Policy, args Args, multiply func(*big.Int) *big.Int) (*big.Int, error) {
	fee, ok, err := policy.DefaultPriorityFee.Resolve(ctx, args.params(multiply))
	if err != nil {
		return nil, policyError("defaultPriorityFee", err)
	}
	if ok {
		if fee == nil {
			return nil, policyError("defaultPriorityFee", ErrNilFee)
		}

		return fee, nil
	}

	if args.Client == nil {
		return nil, ErrBackendRequired
	}

	tip, err := args.Client.SuggestGasTipCap(ctx)
	if err == nil {
		return tip, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Nodes without eth_maxPriorityFeePerGas: derive the tip from the gas price and base fee.
	baseFee, hasBase, berr := formatter.BigInt(args.Block, "baseFeePerGas")
	if berr != nil || !hasBase {
		return nil, fmt.Errorf("failed to get max priority fee: %w", err)
	}
	gasPrice, gerr := args.Client.SuggestGasPrice(ctx)
	if gerr != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", gerr)
	}
	tip = new(big.Int).Sub(gasPrice, baseFee)
	if tip.Sign() < 0 {
		tip.SetInt64(0)
	}

	return tip, nil
}

func resolveMultiplier(ctx context.Context, policy *Policy, args Args) (func(*big.Int) *big.Int, error) {
	m, ok, err := policy.BaseFeeMultiplier.Resolve(ctx, args.params(nil))
	if err != nil {
		return nil, policyError("baseFeeMultiplier", err)
	}
	if !ok {
		m = DefaultBaseFeeMultiplier
	}

	multiply, err := Multiplier(m)
	if err != nil {
		if ok {
			return nil, policyError("baseFeeMultiplier", err)
		}

		return nil, err
	}

	return multiply, nil
}

func latestBlock(ctx context.Context, args Args) (formatter.Fields, error) {
	if args.Block != nil || args.FetchBlock == nil {
		return args.Block, nil
	}

	block, err := args.FetchBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}

	return block, nil
}
