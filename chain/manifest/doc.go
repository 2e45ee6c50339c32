// Package manifest loads chain descriptors from YAML or TOML manifest files.
//
// A manifest lists chains under a top-level "chains" key, with an optional schema version:
//
//	version: 1.0.0
//	chains:
//	  - id: 10
//	    name: OP Mainnet
//	    native_currency: {name: Ether, symbol: ETH, decimals: 18}
//	    rpc_urls:
//	      default:
//	        http: [https://mainnet.optimism.io]
//	    source_id: 1
//	    hooks_from: 10
//
// Files are merged in order, later files overriding chains with the same ID. Formatters,
// serializers and computed fee settings cannot be expressed in a file; they are attached from
// the well known definitions with hooks_from or [WithWellKnownHooks]. The default RPC URLs can be
// overridden from the environment with [WithEnvOverrides], e.g. CHAINS_RPC_10_HTTP.
package manifest
