package backend

import (
	"context"
	"testing"

	"github.com/qmetlab/qmet/internal/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSimulatorUnknownMethod(t *testing.T) {
	_, err := NewSimulator("ibm_kyiv")
	assert.Error(t, err)
}

func TestRunDeterministicFlip(t *testing.T) {
	c := &circuit.Circuit{}
	c.Append(circuit.GatePauliX, 0)
	c.AppendMeasure(0, 0)

	sim, err := NewSimulator(AerSimulator)
	require.NoError(t, err)

	out, err := sim.Run(context.Background(), c, 100, nil)
	require.NoError(t, err)

	counts, err := out.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 100}, counts)
	assert.NotEmpty(t, out.JobID)
	assert.Equal(t, AerSimulator, out.BackendName)
}

func TestRunBellPair(t *testing.T) {
	c := &circuit.Circuit{}
	c.Append("h", 0)
	c.Append(circuit.GateControlNot, 0, 1)
	c.AppendMeasure(0, 0)
	c.AppendMeasure(1, 1)

	sim, err := NewSimulator(StatevectorSim)
	require.NoError(t, err)
	sim.WithSeed(42)

	out, err := sim.Run(context.Background(), c, 1000, nil)
	require.NoError(t, err)

	counts, err := out.Counts()
	require.NoError(t, err)

	total := 0
	for key, n := range counts {
		assert.Contains(t, []string{"00", "11"}, key, "bell pair only yields correlated outcomes")
		total += n
	}
	assert.Equal(t, 1000, total)
	assert.Greater(t, counts["00"], 0)
	assert.Greater(t, counts["11"], 0)
}

func TestRunNoMeasurements(t *testing.T) {
	c := &circuit.Circuit{}
	c.Append(circuit.GatePauliX, 0)

	sim, err := NewSimulator(AerSimulator)
	require.NoError(t, err)

	out, err := sim.Run(context.Background(), c, 10, nil)
	require.NoError(t, err)

	_, err = out.Counts()
	assert.ErrorIs(t, err, ErrNoCounts)
}

func TestRunReset(t *testing.T) {
	c := &circuit.Circuit{}
	c.Append(circuit.GatePauliX, 0)
	c.Append(circuit.GateReset, 0)
	c.AppendMeasure(0, 0)

	sim, err := NewSimulator(AerSimulator)
	require.NoError(t, err)

	out, err := sim.Run(context.Background(), c, 50, nil)
	require.NoError(t, err)

	counts, err := out.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"0": 50}, counts)
}

func TestRunReadoutNoise(t *testing.T) {
	c := &circuit.Circuit{}
	c.AppendMeasure(0, 0)

	sim, err := NewSimulator(AerSimulator)
	require.NoError(t, err)
	sim.WithSeed(7)

	out, err := sim.Run(context.Background(), c, 2000, &NoiseModel{ReadoutError: 0.25})
	require.NoError(t, err)

	counts, err := out.Counts()
	require.NoError(t, err)
	assert.Greater(t, counts["1"], 0, "readout error flips some ideal-zero outcomes")
	assert.Greater(t, counts["0"], counts["1"])
}

func TestRunRejectsBadShots(t *testing.T) {
	c := &circuit.Circuit{}
	c.AppendMeasure(0, 0)

	sim, err := NewSimulator(AerSimulator)
	require.NoError(t, err)

	_, err = sim.Run(context.Background(), c, 0, nil)
	assert.Error(t, err)
}

func TestRunUnmeasuredCbitsReadZero(t *testing.T) {
	c := &circuit.Circuit{NumCbits: 3}
	c.Append(circuit.GatePauliX, 0)
	c.AppendMeasure(0, 0)

	sim, err := NewSimulator(AerSimulator)
	require.NoError(t, err)

	out, err := sim.Run(context.Background(), c, 10, nil)
	require.NoError(t, err)

	counts, err := out.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"001": 10}, counts)
}
