package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellPair() *Circuit {
	c := &Circuit{}
	c.Append("h", 0)
	c.Append(GateControlNot, 0, 1)
	c.AppendMeasure(0, 0)
	c.AppendMeasure(1, 1)
	return c
}

func TestCount(t *testing.T) {
	c := bellPair()

	assert.Equal(t, 1, c.Count(GateControlNot))
	assert.Equal(t, 2, c.Count(GateMeasure))
	assert.Equal(t, 0, c.Count(GatePauliX))
}

func TestCountOps(t *testing.T) {
	c := bellPair()

	counts := c.CountOps()
	assert.Equal(t, map[string]int{"h": 1, "cx": 1, "measure": 2}, counts)
	assert.Equal(t, 4, c.Size())
}

func TestRegistersGrowWithOps(t *testing.T) {
	c := &Circuit{}
	c.Append(GatePauliX, 4)
	c.AppendMeasure(4, 2)

	assert.Equal(t, 5, c.NumQubits)
	assert.Equal(t, 3, c.NumCbits)
}

func TestRecognizedGateSet(t *testing.T) {
	for _, g := range []string{"cx", "sx", "id", "rz", "x", "reset", "measure"} {
		assert.True(t, Recognized(g), g)
	}
	assert.False(t, Recognized("zz"))
	assert.False(t, Recognized("h"), "h is parseable but not a recognized metric gate")
}

func TestToQASMRoundTrip(t *testing.T) {
	c := &Circuit{}
	c.Append(GatePauliX, 0)
	c.AppendParams(GateRotationZ, []float64{0.5}, 1)
	c.Append(GateControlNot, 0, 1)
	c.AppendMeasure(1, 0)

	parsed, err := Parse(c.ToQASM())
	require.NoError(t, err)

	assert.Equal(t, c.Size(), parsed.Size())
	assert.Equal(t, c.CountOps(), parsed.CountOps())
	assert.Equal(t, 2, parsed.NumQubits)
}
