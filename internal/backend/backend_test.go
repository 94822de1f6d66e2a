package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	catalog := []string{"sim_a", "sim_b"}

	assert.True(t, Available(catalog, "sim_a", ""), "unset compare never blocks")
	assert.True(t, Available(catalog, "sim_a", "sim_b"))
	assert.True(t, Available(catalog, "", ""), "nothing requested")
	assert.False(t, Available(catalog, "sim_x", ""))
	assert.False(t, Available(catalog, "sim_a", "sim_x"))
	assert.False(t, Available(catalog, "SIM_A"), "matching is case-sensitive")
	assert.False(t, Available(nil, "sim_a"))
}

func TestCatalogLocalOnly(t *testing.T) {
	names := Catalog(context.Background(), nil)
	assert.Contains(t, names, AerSimulator)
	assert.Contains(t, names, StatevectorSim)
}

func TestResolveLocal(t *testing.T) {
	be, err := Resolve(AerSimulator, "", nil)
	require.NoError(t, err)
	assert.Equal(t, AerSimulator, be.Name())
}

func TestResolveUnknownWithoutProvider(t *testing.T) {
	_, err := Resolve("ibm_kyiv", "sabre", nil)
	assert.Error(t, err)
}

func TestResolveRemoteWithProvider(t *testing.T) {
	p := NewProvider("http://localhost:9", "token")
	be, err := Resolve("ibm_kyiv", "sabre", p)
	require.NoError(t, err)
	assert.Equal(t, "ibm_kyiv", be.Name())
}
