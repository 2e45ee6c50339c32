package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

// GetBlock returns the block with the given number, or the latest block when number is nil,
// formatted for the call's chain. Negative numbers select the special rpc.BlockNumber tags.
func (c *Client) GetBlock(ctx context.Context, number *big.Int, fullTransactions bool, opts ...CallOption) (formatter.Fields, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return nil, err
	}

	return c.getBlock(ctx, ch, "eth_getBlockByNumber", toBlockNumArg(number), fullTransactions)
}

// GetBlockByHash returns the block with the given hash, formatted for the call's chain.
func (c *Client) GetBlockByHash(ctx context.Context, hash common.Hash, fullTransactions bool, opts ...CallOption) (formatter.Fields, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return nil, err
	}

	return c.getBlock(ctx, ch, "eth_getBlockByHash", hash, fullTransactions)
}

func (c *Client) getBlock(ctx context.Context, ch chain.Chain, method string, ref any, fullTransactions bool) (formatter.Fields, error) {
	return c.getFormatted(ctx, ch, formatter.KindBlock, method, ref, fullTransactions)
}

// latestBlock fetches the latest block without transactions.
func (c *Client) latestBlock(ch chain.Chain) func(ctx context.Context) (formatter.Fields, error) {
	return func(ctx context.Context) (formatter.Fields, error) {
		return c.getBlock(ctx, ch, "eth_getBlockByNumber", "latest", false)
	}
}

// GetTransaction returns the transaction with the given hash, formatted for the call's chain.
func (c *Client) GetTransaction(ctx context.Context, hash common.Hash, opts ...CallOption) (formatter.Fields, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return nil, err
	}

	return c.getFormatted(ctx, ch, formatter.KindTransaction, "eth_getTransactionByHash", hash)
}

// GetTransactionReceipt returns the receipt of the transaction with the given hash, formatted for
// the call's chain.
func (c *Client) GetTransactionReceipt(ctx context.Context, hash common.Hash, opts ...CallOption) (formatter.Fields, error) {
	ch, err := c.chainFor(newCallOptions(opts), false)
	if err != nil {
		return nil, err
	}

	return c.getFormatted(ctx, ch, formatter.KindTransactionReceipt, "eth_getTransactionReceipt", hash)
}

// getFormatted calls method and runs the result through the chain's formatting pipeline. A null
// result is reported as ethereum.NotFound.
func (c *Client) getFormatted(ctx context.Context, ch chain.Chain, kind formatter.Kind, method string, args ...any) (formatter.Fields, error) {
	var raw formatter.Fields
	if err := c.call(ctx, &raw, method, args...); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ethereum.NotFound
	}

	// Formatter failures reach the caller unmodified.
	formatted, err := ch.Format(kind, raw)
	if err != nil {
		return nil, err
	}

	return formatted, nil
}

// ChainID returns the chain ID reported by the node.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := c.call(ctx, &result, "eth_chainId"); err != nil {
		return nil, err
	}

	return (*big.Int)(&result), nil
}

// PendingNonceAt returns the account nonce including pending transactions.
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var result hexutil.Uint64
	if err := c.call(ctx, &result, "eth_getTransactionCount", account, "pending"); err != nil {
		return 0, err
	}

	return uint64(result), nil
}

// SuggestGasPrice returns the node's legacy gas price.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := c.call(ctx, &result, "eth_gasPrice"); err != nil {
		return nil, err
	}

	return (*big.Int)(&result), nil
}

// SuggestGasTipCap returns the node's suggested priority fee.
func (c *Client) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	var result hexutil.Big
	if err := c.call(ctx, &result, "eth_maxPriorityFeePerGas"); err != nil {
		return nil, err
	}

	return (*big.Int)(&result), nil
}

func toBlockNumArg(number *big.Int) string {
	if number == nil {
		return "latest"
	}
	if number.Sign() >= 0 {
		return hexutil.EncodeBig(number)
	}
	if number.IsInt64() {
		return rpc.BlockNumber(number.Int64()).String()
	}

	return fmt.Sprintf("<invalid %d>", number)
}
