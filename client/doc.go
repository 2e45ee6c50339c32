// Package client is a minimal JSON-RPC client that applies chain descriptor hooks.
//
// Every call runs against a chain: the client's default chain (see [WithDefaultChain] and
// [Dial]), a per call override ([WithChain]) or, with [WithoutChain], no chain at all. Responses
// are run through the chain's formatters, fees through its fee policy and transactions through
// its serializer:
//
//	c, err := client.Dial(ctx, definitions.Optimism(), client.WithLogger(lggr))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	block, err := c.GetBlock(ctx, nil, true)
//
// Transport failures are retried with backoff; error responses from the node are not.
package client
