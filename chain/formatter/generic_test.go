package formatter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneric_Block(t *testing.T) {
	t.Parallel()

	raw := Fields{
		"number":        "0xa",
		"baseFeePerGas": "0x7",
		"hash":          "0xabc",
		"transactions": []any{
			"0xdeadbeef",
			map[string]any{"nonce": "0x1", "type": "0x2"},
		},
	}

	got, err := Generic(KindBlock)(raw)
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(10), got["number"])
	assert.Equal(t, big.NewInt(7), got["baseFeePerGas"])
	assert.Equal(t, "0xabc", got["hash"])

	txs, ok := got["transactions"].([]any)
	require.True(t, ok)
	assert.Equal(t, "0xdeadbeef", txs[0])
	tx, ok := txs[1].(Fields)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(1), tx["nonce"])
	assert.Equal(t, "eip1559", tx["type"])
	assert.Equal(t, "0x2", tx["typeHex"])

	assert.Equal(t, "0xa", raw["number"], "raw must not be mutated")
}

func TestGeneric_Receipt(t *testing.T) {
	t.Parallel()

	got, err := Generic(KindTransactionReceipt)(Fields{"status": "0x1", "gasUsed": "0x5208", "type": "0x0"})
	require.NoError(t, err)

	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "legacy", got["type"])
	assert.Equal(t, big.NewInt(21000), got["gasUsed"])
}

func TestGeneric_Request(t *testing.T) {
	t.Parallel()

	got, err := Generic(KindTransactionRequest)(Fields{
		"value":       big.NewInt(255),
		"nonce":       uint64(3),
		"type":        "eip1559",
		"feeCurrency": "0x01",
	})
	require.NoError(t, err)

	assert.Equal(t, "0xff", got["value"])
	assert.Equal(t, "0x3", got["nonce"])
	assert.Equal(t, "0x2", got["type"])
	assert.Equal(t, "0x01", got["feeCurrency"])
}

func TestGeneric_UnknownKind(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Generic(Kind("log")))
}
