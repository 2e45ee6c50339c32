package definitions

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
)

func addressField(f formatter.Fields, key string) (common.Address, bool, error) {
	switch v := f[key].(type) {
	case nil:
		return common.Address{}, false, nil
	case common.Address:
		return v, true, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, false, nil
		}

		return *v, true, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, true, fmt.Errorf("field %q: invalid address %q", key, v)
		}

		return common.HexToAddress(v), true, nil
	default:
		return common.Address{}, true, fmt.Errorf("field %q: unsupported address type %T", key, v)
	}
}

func hashField(f formatter.Fields, key string) (common.Hash, bool, error) {
	switch v := f[key].(type) {
	case nil:
		return common.Hash{}, false, nil
	case common.Hash:
		return v, true, nil
	case string:
		b, err := hexutil.Decode(v)
		if err != nil || len(b) != common.HashLength {
			return common.Hash{}, true, fmt.Errorf("field %q: invalid hash %q", key, v)
		}

		return common.BytesToHash(b), true, nil
	default:
		return common.Hash{}, true, fmt.Errorf("field %q: unsupported hash type %T", key, v)
	}
}

func boolField(f formatter.Fields, key string) (bool, error) {
	switch v := f[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("field %q: unsupported bool type %T", key, v)
	}
}
