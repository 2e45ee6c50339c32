package manifest

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/chain/definitions"
	"github.com/smartcontractkit/chainlink-chain-config/chain/fees"
	"github.com/smartcontractkit/chainlink-chain-config/internal/pointer"
)

func Test_parseWei(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    *big.Int
		wantErr bool
	}{
		{name: "decimal", give: "1000000000", want: big.NewInt(1_000_000_000)},
		{name: "hex", give: "0x3b9aca00", want: big.NewInt(1_000_000_000)},
		{name: "zero", give: "0", want: big.NewInt(0)},
		{name: "negative", give: "-5", wantErr: true},
		{name: "garbage", give: "1gwei", wantErr: true},
		{name: "bad hex", give: "0xzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseWei(tt.give)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, tt.want.Cmp(got))
		})
	}
}

func Test_FeesConfig_Policy(t *testing.T) {
	t.Parallel()

	t.Run("nil config keeps base", func(t *testing.T) {
		t.Parallel()

		base := &fees.Policy{BaseFeeMultiplier: fees.Fixed(1.3)}
		var f *FeesConfig
		got, err := f.Policy(base)
		require.NoError(t, err)
		assert.Same(t, base, got)
	})

	t.Run("layers over a copy of base", func(t *testing.T) {
		t.Parallel()

		base := &fees.Policy{BaseFeeMultiplier: fees.Fixed(1.3)}
		f := &FeesConfig{DefaultPriorityFee: "7"}
		got, err := f.Policy(base)
		require.NoError(t, err)

		m, ok, err := got.BaseFeeMultiplier.Resolve(t.Context(), fees.Params{})
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 1.3, m, 0)

		fee, ok, err := got.DefaultPriorityFee.Resolve(t.Context(), fees.Params{})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, big.NewInt(7), fee)

		assert.False(t, base.DefaultPriorityFee.IsSet())
	})

	t.Run("rejects low multiplier", func(t *testing.T) {
		t.Parallel()

		_, err := (&FeesConfig{BaseFeeMultiplier: pointer.To(0.9)}).Policy(nil)
		require.ErrorIs(t, err, fees.ErrBaseFeeMultiplierTooLow)
	})
}

func Test_FromChain(t *testing.T) {
	t.Parallel()

	op := definitions.Optimism()
	entry := FromChain(op)

	assert.Equal(t, op.ID, entry.ID)
	assert.Equal(t, op.SourceID, entry.SourceID)
	assert.Nil(t, entry.HooksFrom)
	require.Contains(t, entry.Contracts, "portal")
	assert.Contains(t, entry.Contracts["portal"].BySource, "1")

	back, err := entry.Chain()
	require.NoError(t, err)
	assert.Equal(t, op.Contracts, back.Contracts)
	assert.Equal(t, op.RPCURLs, back.RPCURLs)
	assert.Nil(t, back.Formatters)
	require.NoError(t, back.ValidateStrict())
}

func Test_Manifest_checkVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr bool
	}{
		{name: "unset", give: ""},
		{name: "current", give: CurrentVersion},
		{name: "minor bump", give: "1.3.0"},
		{name: "major bump", give: "2.0.0", wantErr: true},
		{name: "pre release major", give: "0.9.0", wantErr: true},
		{name: "not semver", give: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Manifest{Version: tt.give}.checkVersion()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedVersion)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
