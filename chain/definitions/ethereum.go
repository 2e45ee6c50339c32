package definitions

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/internal/pointer"
)

const (
	MainnetID = 1
	SepoliaID = 11155111
)

var multicall3Address = common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

func multicall3(blockCreated uint64) chain.ContractEntry {
	return chain.Single(chain.Contract{Address: multicall3Address, BlockCreated: pointer.To(blockCreated)})
}

func ether() chain.NativeCurrency {
	return chain.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18}
}

func rpc(urls ...string) map[string]chain.RPCURLs {
	return map[string]chain.RPCURLs{chain.DefaultGroup: {HTTP: urls}}
}

func explorer(name, url, api string) map[string]chain.BlockExplorer {
	return map[string]chain.BlockExplorer{chain.DefaultGroup: {Name: name, URL: url, APIURL: api}}
}

// Mainnet is Ethereum mainnet.
func Mainnet() chain.Chain {
	return chain.Chain{
		ID:             MainnetID,
		Name:           "Ethereum",
		NativeCurrency: ether(),
		RPCURLs:        rpc("https://eth.merkle.io"),
		BlockExplorers: explorer("Etherscan", "https://etherscan.io", "https://api.etherscan.io/api"),
		Contracts: map[string]chain.ContractEntry{
			chain.ContractENSRegistry: chain.Single(chain.Contract{
				Address: common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
			}),
			chain.ContractENSUniversalResolver: chain.Single(chain.Contract{
				Address:      common.HexToAddress("0xce01f8eee7E479C928F8919abD53E553a36CeF67"),
				BlockCreated: pointer.To[uint64](19258213),
			}),
			chain.ContractMulticall3: multicall3(14353601),
		},
	}
}

// Sepolia is the Ethereum Sepolia testnet.
func Sepolia() chain.Chain {
	return chain.Chain{
		ID:             SepoliaID,
		Name:           "Sepolia",
		NativeCurrency: chain.NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		RPCURLs:        rpc("https://sepolia.drpc.org"),
		BlockExplorers: explorer("Etherscan", "https://sepolia.etherscan.io", "https://api-sepolia.etherscan.io/api"),
		Contracts: map[string]chain.ContractEntry{
			chain.ContractENSRegistry: chain.Single(chain.Contract{
				Address: common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
			}),
			chain.ContractENSUniversalResolver: chain.Single(chain.Contract{
				Address:      common.HexToAddress("0xc8Af999e38273D658BE1b921b88A9Ddf005769cC"),
				BlockCreated: pointer.To[uint64](5317080),
			}),
			chain.ContractMulticall3: multicall3(751532),
		},
		Testnet: true,
	}
}
