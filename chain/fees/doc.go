// Package fees implements the fee policy slot of a chain descriptor.
//
// A Policy carries up to three overrides, each a Value that is either absent, Fixed or Computed:
//
//   - BaseFeeMultiplier scales the network base fee (default 1.2, never below 1).
//   - DefaultPriorityFee replaces the backend suggested tip.
//   - EstimateFeesPerGas replaces the whole estimation.
//
// Computed values receive Params describing the latest block, the backend and the transaction
// being prepared. A failing custom setting is returned as a *FeePolicyError and no default is
// substituted for it.
package fees
