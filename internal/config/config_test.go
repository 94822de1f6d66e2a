package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestSetKnownKey(t *testing.T) {
	resetViper(t)

	require.NoError(t, Set(KeyBackendInput, "aer_simulator"))
	assert.Equal(t, "aer_simulator", GetBackendInput())
}

func TestSetUnknownKey(t *testing.T) {
	resetViper(t)

	err := Set("favorite_color", "blue")
	assert.Error(t, err)
}

func TestSetShots(t *testing.T) {
	resetViper(t)

	require.NoError(t, Set(KeyDefaultShots, "2048"))
	assert.Equal(t, 2048, GetDefaultShots())
}

func TestReset(t *testing.T) {
	resetViper(t)

	require.NoError(t, Set(KeyAPIKey, "secret"))
	require.NoError(t, Set(KeyDefaultInputFile, "a.qasm"))

	Reset()
	assert.Equal(t, "", GetAPIKey())
	assert.Equal(t, "", GetDefaultInputFile())
	assert.Equal(t, 1024, GetDefaultShots())
}

func TestKeysIncludeEverySettableKey(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, KeyAPIKey)
	assert.Contains(t, keys, KeyDefaultShots)
	assert.Contains(t, keys, KeyRoutingCompare)
	assert.Len(t, keys, 10)
}
