package circuit

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bellQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`

func TestParseBell(t *testing.T) {
	c, err := Parse(bellQASM)
	require.NoError(t, err)

	assert.Equal(t, 2, c.NumQubits)
	assert.Equal(t, 2, c.NumCbits)
	assert.Equal(t, 1, c.Count("h"))
	assert.Equal(t, 1, c.Count(GateControlNot))
	assert.Equal(t, 2, c.Count(GateMeasure))
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	src := "OPENQASM 2.0;\n// a comment\nqreg q[1];\n\nx q[0]; // trailing\n"
	c, err := Parse(src)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Count(GatePauliX))
}

func TestParseAngles(t *testing.T) {
	src := "qreg q[1];\nrz(pi/2) q[0];\nrz(-pi/4) q[0];\nrz(3*pi/2) q[0];\nrz(0.25) q[0];\n"
	c, err := Parse(src)
	require.NoError(t, err)

	require.Equal(t, 4, c.Size())
	assert.InDelta(t, math.Pi/2, c.Ops[0].Params[0], 1e-12)
	assert.InDelta(t, -math.Pi/4, c.Ops[1].Params[0], 1e-12)
	assert.InDelta(t, 3*math.Pi/2, c.Ops[2].Params[0], 1e-12)
	assert.InDelta(t, 0.25, c.Ops[3].Params[0], 1e-12)
}

func TestParseUnsupportedGate(t *testing.T) {
	_, err := Parse("qreg q[1];\nccx q[0];\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseWrongArity(t *testing.T) {
	_, err := Parse("qreg q[2];\ncx q[0];\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseGarbageStatement(t *testing.T) {
	_, err := Parse("qreg q[1];\nthis is not qasm\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.qasm"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bell.qasm")
	require.NoError(t, os.WriteFile(path, []byte(bellQASM), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Size())
}
