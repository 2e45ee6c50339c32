package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/sync/errgroup"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
)

// ErrTipAboveFeeCap is returned when a prepared request's priority fee exceeds its max fee.
var ErrTipAboveFeeCap = errors.New("max priority fee per gas higher than max fee per gas")

var _ fees.Backend = (*Client)(nil)

// EstimateFeesPerGas estimates per gas fees of the given type with the call's chain fee policy.
// req may be nil.
func (c *Client) EstimateFeesPerGas(ctx context.Context, req *serializer.TransactionRequest, feeType fees.Type, opts ...CallOption) (fees.Values, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return fees.Values{}, err
	}

	return ch.EstimateFeesPerGas(ctx, fees.Args{
		Client:     c,
		FetchBlock: c.latestBlock(ch),
		Request:    req,
		Type:       feeType,
	})
}

// EstimateMaxPriorityFeePerGas returns the priority fee the call's chain would use.
func (c *Client) EstimateMaxPriorityFeePerGas(ctx context.Context, opts ...CallOption) (*big.Int, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return nil, err
	}

	return ch.EstimateMaxPriorityFeePerGas(ctx, fees.Args{
		Client:     c,
		FetchBlock: c.latestBlock(ch),
	})
}

// EstimateGas estimates the gas a request consumes. The request is checked against the fields the
// chain accepts and formatted with the chain's transactionRequest formatter.
func (c *Client) EstimateGas(ctx context.Context, req serializer.TransactionRequest, opts ...CallOption) (uint64, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return 0, err
	}

	return c.estimateGas(ctx, ch, req)
}

func (c *Client) estimateGas(ctx context.Context, ch chain.Chain, req serializer.TransactionRequest) (uint64, error) {
	msg, err := callObject(ch, req)
	if err != nil {
		return 0, err
	}

	var result hexutil.Uint64
	if err := c.call(ctx, &result, "eth_estimateGas", msg); err != nil {
		return 0, err
	}

	return uint64(result), nil
}

// callObject returns the JSON-RPC request object for req.
func callObject(ch chain.Chain, req serializer.TransactionRequest) (formatter.Fields, error) {
	fields := req.Fields()
	if err := formatter.CheckRequest(ch.Formatters, fields); err != nil {
		return nil, err
	}

	return ch.Format(formatter.KindTransactionRequest, fields)
}

// PrepareTransactionRequest fills in the fields a request needs before it can be signed: chain ID,
// nonce, gas and fees. Fields already set are kept; a zero Nonce is filled from the pending nonce
// of From.
//
// The latest block, nonce and gas estimate are fetched concurrently. Fees are then estimated with
// the chain's fee policy: EIP-1559 fees when the request asks for them or, for untyped requests,
// when the latest block has a base fee; a legacy gas price otherwise.
func (c *Client) PrepareTransactionRequest(ctx context.Context, req serializer.TransactionRequest, opts ...CallOption) (serializer.TransactionRequest, error) {
	ch, err := c.chainFor(newCallOptions(opts), true)
	if err != nil {
		return serializer.TransactionRequest{}, err
	}
	if err := formatter.CheckRequest(ch.Formatters, req.Fields()); err != nil {
		return serializer.TransactionRequest{}, err
	}

	req = req.Clone()
	if req.ChainID == nil && ch.ID != 0 {
		req.ChainID = ch.ChainID()
	}

	var (
		block   formatter.Fields
		chainID *big.Int
		nonce   uint64
		gas     uint64
	)
	snapshot := req.Clone()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		block, err = c.latestBlock(ch)(gctx)

		return err
	})
	if req.ChainID == nil {
		g.Go(func() error {
			var err error
			chainID, err = c.ChainID(gctx)

			return err
		})
	}
	if req.Nonce == 0 && req.From != nil {
		g.Go(func() error {
			var err error
			nonce, err = c.PendingNonceAt(gctx, *req.From)

			return err
		})
	}
	if req.Gas == 0 {
		g.Go(func() error {
			var err error
			gas, err = c.estimateGas(gctx, ch, snapshot)

			return err
		})
	}
	if err := g.Wait(); err != nil {
		return serializer.TransactionRequest{}, fmt.Errorf("failed to prepare transaction request: %w", err)
	}

	if chainID != nil {
		req.ChainID = chainID
	}
	if nonce != 0 {
		req.Nonce = nonce
	}
	if gas != 0 {
		req.Gas = gas
	}

	feeType := fees.TypeEIP1559
	if !wantsEIP1559(req, block) {
		feeType = fees.TypeLegacy
	}
	values, err := ch.EstimateFeesPerGas(ctx, fees.Args{Client: c, Block: block, Request: &req, Type: feeType})
	if err != nil {
		return serializer.TransactionRequest{}, err
	}

	if feeType == fees.TypeLegacy {
		if req.GasPrice == nil {
			req.GasPrice = values.GasPrice
		}
		if req.Type == "" {
			req.Type = serializer.TypeOf(req)
		}

		return req, nil
	}

	if req.MaxFeePerGas == nil {
		req.MaxFeePerGas = values.MaxFeePerGas
	}
	if req.MaxPriorityFeePerGas == nil {
		req.MaxPriorityFeePerGas = values.MaxPriorityFeePerGas
	}
	if req.MaxFeePerGas != nil && req.MaxPriorityFeePerGas != nil && req.MaxPriorityFeePerGas.Cmp(req.MaxFeePerGas) > 0 {
		return serializer.TransactionRequest{}, fmt.Errorf("%w: tip %s, fee cap %s", ErrTipAboveFeeCap, req.MaxPriorityFeePerGas, req.MaxFeePerGas)
	}
	if req.Type == "" {
		req.Type = serializer.TypeEIP1559
	}

	return req, nil
}

// wantsEIP1559 reports whether EIP-1559 fees should be estimated for req.
func wantsEIP1559(req serializer.TransactionRequest, block formatter.Fields) bool {
	switch {
	case req.Type == serializer.TypeLegacy || req.Type == serializer.TypeEIP2930:
		return false
	case req.Type != "":
		return true
	case req.GasPrice != nil:
		return false
	case req.MaxFeePerGas != nil || req.MaxPriorityFeePerGas != nil:
		return true
	default:
		_, ok, err := formatter.BigInt(block, "baseFeePerGas")

		return ok && err == nil
	}
}

// SerializeTransaction encodes req with the call's chain serializer. Without a chain the request
// must carry its chain ID.
func (c *Client) SerializeTransaction(req serializer.TransactionRequest, sig *serializer.Signature, opts ...CallOption) ([]byte, error) {
	ch, err := c.chainFor(newCallOptions(opts), true)
	if err != nil {
		return nil, err
	}
	if ch.ID == 0 {
		return serializer.Serialize(nil, req, sig)
	}

	return ch.SerializeTransaction(req, sig)
}

// SendRawTransaction submits a signed, serialized transaction and returns its hash.
func (c *Client) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := c.call(ctx, &hash, "eth_sendRawTransaction", hexutil.Bytes(raw)); err != nil {
		return common.Hash{}, err
	}

	return hash, nil
}
