// Package definitions provides descriptors for well known EVM chains, including the formatter,
// serializer and fee customizations their networks require:
//
//   - OP stack chains (Optimism, Base, OP Sepolia) format and serialize 0x7e deposit transactions.
//   - Celo accepts a feeCurrency on requests and serializes 0x7b (CIP-64) transactions.
//   - Arbitrum replaces the fee estimation since its sequencer ignores priority fees.
//   - Polygon enforces the validators' minimum priority fee.
//
// Every constructor returns a fresh descriptor, so callers may customize the result.
package definitions
