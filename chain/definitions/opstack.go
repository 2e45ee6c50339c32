package definitions

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/smartcontractkit/chainlink-chain-config/chain"
	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
	"github.com/smartcontractkit/chainlink-chain-config/internal/pointer"
)

const (
	OptimismID        = 10
	BaseID            = 8453
	OptimismSepoliaID = 11155420
)

// DepositTxType is the envelope type of OP stack deposit transactions.
const DepositTxType = 0x7e

// TypeDeposit marks a transaction request as an OP stack deposit.
const TypeDeposit serializer.Type = "deposit"

// ErrDepositFromRequired is returned when a deposit transaction has no sender.
var ErrDepositFromRequired = errors.New("deposit transaction requires a from address")

// OP stack predeploys.
var (
	gasPriceOracle      = common.HexToAddress("0x420000000000000000000000000000000000000F")
	l1Block             = common.HexToAddress("0x4200000000000000000000000000000000000015")
	l2ToL1MessagePasser = common.HexToAddress("0x4200000000000000000000000000000000000016")
)

// OPStackFormatters returns a new formatter registry for an OP stack chain. The formatters
// surface the deposit transaction fields and the L1 fee data of receipts.
func OPStackFormatters() *formatter.Formatters {
	return &formatter.Formatters{
		Block: &formatter.Formatter{
			Type:   formatter.KindBlock,
			Format: formatOPBlock,
		},
		Transaction: opTransactionFormatter(),
		TransactionReceipt: &formatter.Formatter{
			Type:   formatter.KindTransactionReceipt,
			Format: formatOPReceipt,
		},
		TransactionRequest: &formatter.Formatter{
			Type:    formatter.KindTransactionRequest,
			Format:  formatOPRequest,
			Accepts: []string{"sourceHash", "mint", "isSystemTx"},
		},
	}
}

// OPStackSerializers returns a serializer slot encoding deposit transactions and deferring every
// other request to the generic encoding.
func OPStackSerializers() *serializer.Serializers {
	return &serializer.Serializers{Transaction: SerializeOPStack}
}

func opTransactionFormatter() *formatter.Formatter {
	return &formatter.Formatter{
		Type:   formatter.KindTransaction,
		Format: formatOPTransaction,
	}
}

func opStack(id uint64, name string, sourceID uint64, testnet bool, rpcURL string, contracts map[string]chain.ContractEntry) chain.Chain {
	contracts["gasPriceOracle"] = chain.Single(chain.Contract{Address: gasPriceOracle})
	contracts["l1Block"] = chain.Single(chain.Contract{Address: l1Block})
	contracts["l2ToL1MessagePasser"] = chain.Single(chain.Contract{Address: l2ToL1MessagePasser})

	return chain.Chain{
		ID:             id,
		Name:           name,
		NativeCurrency: ether(),
		RPCURLs:        rpc(rpcURL),
		Contracts:      contracts,
		SourceID:       pointer.To(sourceID),
		Testnet:        testnet,
		Formatters:     OPStackFormatters(),
		Serializers:    OPStackSerializers(),
	}
}

func perSource(sourceID uint64, hex string) chain.ContractEntry {
	return chain.PerSource(map[uint64]chain.Contract{sourceID: {Address: common.HexToAddress(hex)}})
}

// Optimism is OP Mainnet.
func Optimism() chain.Chain {
	c := opStack(OptimismID, "OP Mainnet", MainnetID, false, "https://mainnet.optimism.io", map[string]chain.ContractEntry{
		chain.ContractMulticall3: multicall3(4286263),
		"portal":                 perSource(MainnetID, "0xbEb5Fc579115071764c7423A4f12eDde41f106Ed"),
		"l2OutputOracle":         perSource(MainnetID, "0xdfe97868233d1aa22e815a266982f2cf17685a27"),
		"l1StandardBridge":       perSource(MainnetID, "0x99C9fc46f92E8a1c0deC1b1747d010903E884bE1"),
	})
	c.BlockExplorers = explorer("Optimism Explorer", "https://optimistic.etherscan.io", "https://api-optimistic.etherscan.io/api")

	return c
}

// Base is the Base mainnet.
func Base() chain.Chain {
	c := opStack(BaseID, "Base", MainnetID, false, "https://mainnet.base.org", map[string]chain.ContractEntry{
		chain.ContractMulticall3: multicall3(5022),
		"portal":                 perSource(MainnetID, "0x49048044D57e1C92A77f79988d21Fa8fAF74E97e"),
		"l2OutputOracle":         perSource(MainnetID, "0x56315b90c40730925ec5485cf004d835058518A0"),
		"l1StandardBridge":       perSource(MainnetID, "0x3154Cf16ccdb4C6d922629664174b904d80F2C35"),
	})
	c.BlockExplorers = explorer("Basescan", "https://basescan.org", "https://api.basescan.org/api")

	return c
}

// OptimismSepolia is the OP Sepolia testnet.
func OptimismSepolia() chain.Chain {
	c := opStack(OptimismSepoliaID, "OP Sepolia", SepoliaID, true, "https://sepolia.optimism.io", map[string]chain.ContractEntry{
		chain.ContractMulticall3: multicall3(1620204),
		"portal":                 perSource(SepoliaID, "0x16Fc5058F25648194471939df75CF27A2fdC48BC"),
		"l1StandardBridge":       perSource(SepoliaID, "0xFBb0621E0B23b5478B630BD55a5f21f67730B0F1"),
	})
	c.BlockExplorers = explorer("Blockscout", "https://optimism-sepolia.blockscout.com", "https://optimism-sepolia.blockscout.com/api")

	return c
}

func formatOPBlock(raw formatter.Fields) (formatter.Fields, error) {
	txs, ok := raw["transactions"].([]any)
	if !ok {
		return formatter.Fields{}, nil
	}

	registry := &formatter.Formatters{Transaction: opTransactionFormatter()}
	out := make([]any, len(txs))
	for i, tx := range txs {
		var fields formatter.Fields
		switch v := tx.(type) {
		case formatter.Fields:
			fields = v
		case map[string]any:
			fields = v
		default:
			// hashes only
			out[i] = tx
			continue
		}
		formatted, err := formatter.Format(registry, formatter.KindTransaction, fields, formatter.Generic(formatter.KindTransaction))
		if err != nil {
			return nil, err
		}
		out[i] = formatted
	}

	return formatter.Fields{"transactions": out}, nil
}

func formatOPTransaction(raw formatter.Fields) (formatter.Fields, error) {
	if raw["type"] != "0x7e" {
		return formatter.Fields{}, nil
	}

	out := formatter.Fields{"type": "deposit", "typeHex": "0x7e", "sourceHash": raw["sourceHash"]}
	mint, ok, err := formatter.BigInt(raw, "mint")
	if err != nil {
		return nil, &formatter.FormatterError{Kind: formatter.KindTransaction, Field: "mint", Err: err}
	}
	if ok {
		out["mint"] = mint
	}
	isSystemTx, err := boolField(raw, "isSystemTx")
	if err != nil {
		return nil, &formatter.FormatterError{Kind: formatter.KindTransaction, Field: "isSystemTx", Err: err}
	}
	out["isSystemTx"] = isSystemTx

	return out, nil
}

func formatOPReceipt(raw formatter.Fields) (formatter.Fields, error) {
	out := formatter.Fields{}
	for _, key := range []string{"l1GasPrice", "l1GasUsed", "l1Fee", "l1BlobBaseFee", "l1BaseFeeScalar", "l1BlobBaseFeeScalar"} {
		n, ok, err := formatter.BigInt(raw, key)
		if err != nil {
			return nil, &formatter.FormatterError{Kind: formatter.KindTransactionReceipt, Field: key, Err: err}
		}
		if ok {
			out[key] = n
		}
	}
	if s, ok := raw["l1FeeScalar"].(string); ok {
		scalar, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &formatter.FormatterError{Kind: formatter.KindTransactionReceipt, Field: "l1FeeScalar", Err: err}
		}
		out["l1FeeScalar"] = scalar
	}

	return out, nil
}

func formatOPRequest(raw formatter.Fields) (formatter.Fields, error) {
	if raw["sourceHash"] == nil && raw["type"] != string(TypeDeposit) {
		return formatter.Fields{}, nil
	}

	out := formatter.Fields{"type": "0x7e", "isSystemTx": raw["isSystemTx"]}
	if raw["isSystemTx"] == nil {
		out["isSystemTx"] = false
	}
	hash, ok, err := hashField(raw, "sourceHash")
	if err != nil {
		return nil, &formatter.FormatterError{Kind: formatter.KindTransactionRequest, Field: "sourceHash", Err: err}
	}
	if ok {
		out["sourceHash"] = hash.Hex()
	}
	mint, ok, err := formatter.BigInt(raw, "mint")
	if err != nil {
		return nil, &formatter.FormatterError{Kind: formatter.KindTransactionRequest, Field: "mint", Err: err}
	}
	if ok {
		out["mint"] = "0x" + mint.Text(16)
	}

	return out, nil
}

type depositTx struct {
	SourceHash common.Hash
	From       common.Address
	To         *common.Address `rlp:"nil"`
	Mint       *big.Int
	Value      *big.Int
	Gas        uint64
	IsSystemTx bool
	Data       []byte
}

// IsDeposit reports whether req describes an OP stack deposit transaction.
func IsDeposit(req serializer.TransactionRequest) bool {
	return req.Type == TypeDeposit || req.Extra["sourceHash"] != nil
}

// SerializeOPStack encodes deposit transactions as 0x7e || rlp([sourceHash, from, to, mint, value,
// gas, isSystemTx, data]) and everything else with the generic encoding. Deposits are never
// signed, so sig is ignored for them.
func SerializeOPStack(req serializer.TransactionRequest, sig *serializer.Signature) ([]byte, error) {
	if !IsDeposit(req) {
		return serializer.Generic(req, sig)
	}
	if req.From == nil {
		return nil, ErrDepositFromRequired
	}

	sourceHash, _, err := hashField(req.Extra, "sourceHash")
	if err != nil {
		return nil, err
	}
	mint, _, err := formatter.BigInt(req.Extra, "mint")
	if err != nil {
		return nil, err
	}
	isSystemTx, err := boolField(req.Extra, "isSystemTx")
	if err != nil {
		return nil, err
	}

	payload, err := rlp.EncodeToBytes(&depositTx{
		SourceHash: sourceHash,
		From:       *req.From,
		To:         req.To,
		Mint:       mint,
		Value:      req.Value,
		Gas:        req.Gas,
		IsSystemTx: isSystemTx,
		Data:       req.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode deposit transaction: %w", err)
	}

	return append([]byte{DepositTxType}, payload...), nil
}
