package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/chainlink-chain-config/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	lggr := logger.Nop()
	cmds := New(lggr)

	require.NotNil(t, cmds)
	assert.Equal(t, lggr, cmds.lggr)
}

func TestCommands_Chains(t *testing.T) {
	t.Parallel()

	cmd := New(logger.Nop()).Chains()

	require.NotNil(t, cmd)
	assert.Equal(t, "chains", cmd.Use)
	assert.Equal(t, "Chain manifest commands", cmd.Short)

	manifestFlag := cmd.PersistentFlags().Lookup("manifest")
	require.NotNil(t, manifestFlag)
	assert.Equal(t, "m", manifestFlag.Shorthand)

	subs := cmd.Commands()
	require.Len(t, subs, 3)
	names := make([]string, 0, len(subs))
	for _, sub := range subs {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"validate", "list", "show"}, names)
}
