package formatter

import (
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	blockQuantities = []string{
		"baseFeePerGas", "blobGasUsed", "difficulty", "excessBlobGas", "gasLimit", "gasUsed",
		"number", "size", "timestamp", "totalDifficulty",
	}
	transactionQuantities = []string{
		"blockNumber", "chainId", "gas", "gasPrice", "maxFeePerBlobGas", "maxFeePerGas",
		"maxPriorityFeePerGas", "nonce", "transactionIndex", "value", "v",
	}
	receiptQuantities = []string{
		"blobGasPrice", "blobGasUsed", "blockNumber", "cumulativeGasUsed", "effectiveGasPrice",
		"gasUsed", "transactionIndex",
	}

	transactionTypes = map[string]string{
		"0x0": "legacy",
		"0x1": "eip2930",
		"0x2": "eip1559",
		"0x3": "eip4844",
		"0x4": "eip7702",
	}
	receiptStatuses = map[string]string{
		"0x0": "reverted",
		"0x1": "success",
	}
)

// RequestFields are the fields of the generic transaction request shape. Anything else on a
// request must be declared by the chain's transactionRequest formatter.
var RequestFields = []string{
	"accessList", "blobVersionedHashes", "chainId", "data", "from", "gas", "gasPrice", "input",
	"maxFeePerBlobGas", "maxFeePerGas", "maxPriorityFeePerGas", "nonce", "to", "type", "value",
}

// Generic returns the chain agnostic formatting routine for kind. Quantities encoded as hex
// strings are decoded into *big.Int (encoded back to hex for requests); values of any other
// shape pass through unchanged.
func Generic(kind Kind) GenericFunc {
	switch kind {
	case KindBlock:
		return genericBlock
	case KindTransaction:
		return genericTransaction
	case KindTransactionReceipt:
		return genericReceipt
	case KindTransactionRequest:
		return genericRequest
	default:
		return nil
	}
}

func genericBlock(raw Fields) (Fields, error) {
	out, err := decodeQuantities(KindBlock, raw, blockQuantities)
	if err != nil {
		return nil, err
	}

	txs, ok := raw["transactions"].([]any)
	if !ok {
		return out, nil
	}

	formatted := make([]any, len(txs))
	for i, tx := range txs {
		fields, isObject := asFields(tx)
		if !isObject {
			// hashes only
			formatted[i] = tx
			continue
		}
		formatted[i], err = genericTransaction(fields)
		if err != nil {
			return nil, err
		}
	}
	out["transactions"] = formatted

	return out, nil
}

func genericTransaction(raw Fields) (Fields, error) {
	out, err := decodeQuantities(KindTransaction, raw, transactionQuantities)
	if err != nil {
		return nil, err
	}
	if t, ok := raw["type"].(string); ok {
		if name, known := transactionTypes[t]; known {
			out["typeHex"] = t
			out["type"] = name
		}
	}

	return out, nil
}

func genericReceipt(raw Fields) (Fields, error) {
	out, err := decodeQuantities(KindTransactionReceipt, raw, receiptQuantities)
	if err != nil {
		return nil, err
	}
	if s, ok := raw["status"].(string); ok {
		if name, known := receiptStatuses[s]; known {
			out["status"] = name
		}
	}
	if t, ok := raw["type"].(string); ok {
		if name, known := transactionTypes[t]; known {
			out["type"] = name
		}
	}

	return out, nil
}

func genericRequest(raw Fields) (Fields, error) {
	out := raw.Clone()
	for _, key := range RequestFields {
		switch v := raw[key].(type) {
		case *big.Int:
			if v != nil {
				out[key] = hexutil.EncodeBig(v)
			}
		case uint64:
			out[key] = hexutil.EncodeUint64(v)
		}
	}
	if t, ok := raw["type"].(string); ok {
		for hex, name := range transactionTypes {
			if name == t {
				out["type"] = hex
			}
		}
	}

	return out, nil
}

func decodeQuantities(kind Kind, raw Fields, keys []string) (Fields, error) {
	out := raw.Clone()
	for _, key := range keys {
		s, ok := raw[key].(string)
		if !ok {
			continue
		}
		n, err := parseQuantity(s)
		if err != nil {
			return nil, &FormatterError{Kind: kind, Field: key, Err: err}
		}
		out[key] = n
	}

	return out, nil
}

func asFields(v any) (Fields, bool) {
	switch x := v.(type) {
	case Fields:
		return x, true
	case map[string]any:
		return Fields(x), true
	default:
		return nil, false
	}
}

// IsRequestField reports whether name belongs to the generic transaction request shape.
func IsRequestField(name string) bool {
	return slices.Contains(RequestFields, name)
}
