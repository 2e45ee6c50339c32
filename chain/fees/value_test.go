package fees

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Kinds(t *testing.T) {
	t.Parallel()

	fn := func(context.Context, Params) (float64, error) { return 2, nil }

	tests := []struct {
		name         string
		give         Value[float64]
		wantSet      bool
		wantFixed    bool
		wantComputed bool
	}{
		{name: "absent", give: Value[float64]{}},
		{name: "fixed", give: Fixed(1.5), wantSet: true, wantFixed: true},
		{name: "computed", give: Computed[float64](fn), wantSet: true, wantComputed: true},
		{name: "computed with nil func", give: Computed[float64](nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantSet, tt.give.IsSet())
			assert.Equal(t, tt.wantFixed, tt.give.IsFixed())
			assert.Equal(t, tt.wantComputed, tt.give.IsComputed())
		})
	}
}

func TestValue_Resolve(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	got, ok, err := Value[float64]{}.Resolve(ctx, Params{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, got)

	got, ok, err = Fixed(1.5).Resolve(ctx, Params{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, got, 0)

	var seen Params
	v := Computed(func(_ context.Context, p Params) (float64, error) {
		seen = p

		return 3, nil
	})
	got, ok, err = v.Resolve(ctx, Params{Type: TypeLegacy})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, got, 0)
	assert.Equal(t, TypeLegacy, seen.Type)

	boom := errors.New("boom")
	_, ok, err = Computed(func(context.Context, Params) (float64, error) {
		return 0, boom
	}).Resolve(ctx, Params{})
	require.ErrorIs(t, err, boom)
	assert.True(t, ok)
}
