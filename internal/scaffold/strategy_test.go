package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		id       StrategyID
		runner   string
		function string
	}{
		{StrategyBase, "BaseRunner", "BaseFunction"},
		{StrategyLazySaving, "BaseRunner", "LazySavingQueueFunction"},
		{StrategyDelegatedSaving, "LazySavingRunner", "LazyDelegateSavingQueueFunction"},
	}

	for _, tt := range tests {
		d, err := SelectStrategy(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.id, d.ID)
		assert.Equal(t, []string{tt.runner, tt.function}, d.Components())
	}
}

func TestSelectStrategy_Unknown(t *testing.T) {
	_, err := SelectStrategy(7)
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, err.Error(), "unknown strategy 7")
}
