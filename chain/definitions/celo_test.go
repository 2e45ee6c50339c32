package definitions

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/chain/formatter"
	"github.com/smartcontractkit/chainlink-chain-config/chain/serializer"
)

var cUSD = common.HexToAddress("0x765DE816845861e75A25fCA122bb6898B8B1282a")

type cip64Envelope struct {
	ChainID              *big.Int
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	Gas                  uint64
	To                   *common.Address `rlp:"nil"`
	Value                *big.Int
	Data                 []byte
	AccessList           types.AccessList
	FeeCurrency          common.Address
	V                    *big.Int `rlp:"optional"`
	R                    *big.Int `rlp:"optional"`
	S                    *big.Int `rlp:"optional"`
}

func TestCelo_FormatBlock(t *testing.T) {
	t.Parallel()

	got, err := Celo().Format(formatter.KindBlock, formatter.Fields{
		"number":     "0x1",
		"difficulty": "0x0",
		"gasLimit":   "0x1",
		"nonce":      "0x0000000000000000",
		"randomness": map[string]any{"committed": "0x01", "revealed": "0x02"},
	})
	require.NoError(t, err)
	assert.Equal(t, formatter.Fields{
		"number":     big.NewInt(1),
		"randomness": map[string]any{"committed": "0x01", "revealed": "0x02"},
	}, got)
}

func TestCelo_FormatTransaction(t *testing.T) {
	t.Parallel()

	got, err := Celo().Format(formatter.KindTransaction, formatter.Fields{
		"type":        "0x7b",
		"feeCurrency": cUSD.Hex(),
		"nonce":       "0x2",
	})
	require.NoError(t, err)
	assert.Equal(t, "cip64", got["type"])
	assert.Equal(t, "0x7b", got["typeHex"])
	assert.Equal(t, cUSD.Hex(), got["feeCurrency"])
	assert.Equal(t, big.NewInt(2), got["nonce"])
}

func TestCelo_FormatRequest(t *testing.T) {
	t.Parallel()

	c := Celo()

	got, err := c.Format(formatter.KindTransactionRequest, formatter.Fields{"feeCurrency": cUSD, "nonce": uint64(1)})
	require.NoError(t, err)
	assert.Equal(t, formatter.Fields{"feeCurrency": cUSD.Hex(), "type": "0x7b", "nonce": "0x1"}, got)

	got, err = c.Format(formatter.KindTransactionRequest, formatter.Fields{"nonce": uint64(1)})
	require.NoError(t, err)
	assert.Equal(t, formatter.Fields{"nonce": "0x1"}, got)

	_, err = c.Format(formatter.KindTransactionRequest, formatter.Fields{"feeCurrency": "cusd"})
	var ferr *formatter.FormatterError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "feeCurrency", ferr.Field)

	require.NoError(t, formatter.CheckRequest(c.Formatters, formatter.Fields{"feeCurrency": cUSD}))
	require.Error(t, formatter.CheckRequest(Mainnet().Formatters, formatter.Fields{"feeCurrency": cUSD}))
}

func TestSerializeCelo(t *testing.T) {
	t.Parallel()

	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	req := serializer.TransactionRequest{
		ChainID:              big.NewInt(CeloID),
		Nonce:                3,
		To:                   &to,
		Value:                big.NewInt(1),
		Gas:                  50000,
		MaxFeePerGas:         big.NewInt(20),
		MaxPriorityFeePerGas: big.NewInt(2),
		Extra:                formatter.Fields{"feeCurrency": cUSD.Hex()},
	}

	t.Run("unsigned", func(t *testing.T) {
		t.Parallel()

		got, err := Celo().SerializeTransaction(req, nil)
		require.NoError(t, err)
		require.Equal(t, byte(CIP64TxType), got[0])

		var decoded cip64Envelope
		require.NoError(t, rlp.DecodeBytes(got[1:], &decoded))
		assert.Equal(t, cUSD, decoded.FeeCurrency)
		assert.Equal(t, uint64(3), decoded.Nonce)
		assert.Nil(t, decoded.V)
	})

	t.Run("signed", func(t *testing.T) {
		t.Parallel()

		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		hash, err := CIP64SigningHash(req)
		require.NoError(t, err)
		raw, err := crypto.Sign(hash[:], key)
		require.NoError(t, err)
		sig := &serializer.Signature{
			R: new(big.Int).SetBytes(raw[:32]),
			S: new(big.Int).SetBytes(raw[32:64]),
			V: raw[64] + 27,
		}

		got, err := SerializeCelo(req, sig)
		require.NoError(t, err)

		var decoded cip64Envelope
		require.NoError(t, rlp.DecodeBytes(got[1:], &decoded))
		require.NotNil(t, decoded.V)
		assert.Equal(t, uint64(raw[64]), decoded.V.Uint64())

		rebuilt := append(append(common.LeftPadBytes(decoded.R.Bytes(), 32), common.LeftPadBytes(decoded.S.Bytes(), 32)...), byte(decoded.V.Uint64()))
		pub, err := crypto.SigToPub(hash[:], rebuilt)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(*pub))
	})

	t.Run("missing fees", func(t *testing.T) {
		t.Parallel()

		bad := req
		bad.MaxFeePerGas = nil
		_, err := SerializeCelo(bad, nil)
		require.ErrorIs(t, err, ErrCIP64FeesRequired)
	})

	t.Run("cip64 type without fee currency", func(t *testing.T) {
		t.Parallel()

		bad := req
		bad.Type = TypeCIP64
		bad.Extra = nil
		_, err := SerializeCelo(bad, nil)
		require.ErrorIs(t, err, ErrCIP64FeeCurrencyRequired)

		_, err = CIP64SigningHash(bad)
		require.ErrorIs(t, err, ErrCIP64FeeCurrencyRequired)
	})

	t.Run("without fee currency", func(t *testing.T) {
		t.Parallel()

		plain := req
		plain.Extra = nil
		got, err := SerializeCelo(plain, nil)
		require.NoError(t, err)
		assert.Equal(t, byte(types.DynamicFeeTxType), got[0])
	})
}
