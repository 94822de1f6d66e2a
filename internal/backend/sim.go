package backend

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/qmetlab/qmet/internal/circuit"
)

// maxSimQubits bounds the statevector size (2^24 complex amplitudes).
const maxSimQubits = 24

// Local simulator method names. Every method runs on the same
// statevector engine; the aliases exist so catalogs and preferences
// written for provider tooling keep working.
const (
	AerSimulator       = "aer_simulator"
	StatevectorSim     = "statevector"
	StabilizerSim      = "stabilizer"
	ExtStabilizerSim   = "extended_stabilizer"
	MatrixProductState = "matrix_product_state"
)

var localMethods = []string{
	AerSimulator,
	StatevectorSim,
	StabilizerSim,
	ExtStabilizerSim,
	MatrixProductState,
}

// LocalMethods returns the simulator method names for the catalog.
func LocalMethods() []string {
	out := make([]string, len(localMethods))
	copy(out, localMethods)
	return out
}

// Simulator is the in-process statevector sampler.
type Simulator struct {
	name string
	seed int64
}

// NewSimulator returns the local simulator registered under name.
func NewSimulator(name string) (*Simulator, error) {
	for _, m := range localMethods {
		if m == name {
			return &Simulator{name: name, seed: time.Now().UnixNano()}, nil
		}
	}
	return nil, fmt.Errorf("unknown simulator method %q", name)
}

// WithSeed fixes the sampling seed. Used by tests.
func (s *Simulator) WithSeed(seed int64) *Simulator {
	s.seed = seed
	return s
}

func (s *Simulator) Name() string {
	return s.name
}

// Run evolves the statevector through the circuit and samples shots
// measurement outcomes. Circuits without measurements produce an
// outcome whose Counts() fails with ErrNoCounts.
func (s *Simulator) Run(ctx context.Context, c *circuit.Circuit, shots int, noise *NoiseModel) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if shots < 1 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}
	if c.NumQubits > maxSimQubits {
		return nil, fmt.Errorf("circuit has %d qubits, simulator supports at most %d", c.NumQubits, maxSimQubits)
	}

	n := c.NumQubits
	state := make([]complex128, 1<<uint(n))
	state[0] = 1

	// cbit -> qubit whose final state it reads. Later measures win,
	// matching how repeated measure statements overwrite a register.
	measured := make(map[int]int)

	for _, op := range c.Ops {
		switch op.Name {
		case circuit.GateMeasure:
			measured[op.Cbit] = op.Qubits[0]
		case circuit.GateReset:
			resetQubit(state, op.Qubits[0])
		case circuit.GateIdentity, "barrier":
			// no-op for state evolution
		case circuit.GateControlNot:
			applyCX(state, op.Qubits[0], op.Qubits[1])
		case "cz":
			applyCZ(state, op.Qubits[0], op.Qubits[1])
		case "swap":
			applyCX(state, op.Qubits[0], op.Qubits[1])
			applyCX(state, op.Qubits[1], op.Qubits[0])
			applyCX(state, op.Qubits[0], op.Qubits[1])
		default:
			m, err := singleQubitMatrix(op)
			if err != nil {
				return nil, err
			}
			applySingle(state, op.Qubits[0], m)
		}
	}

	out := &Outcome{
		JobID:       uuid.NewString(),
		BackendName: s.name,
		Shots:       shots,
	}
	if len(measured) == 0 {
		out.countsErr = ErrNoCounts
		return out, nil
	}

	out.counts = sample(state, measured, c.NumCbits, shots, noise, rand.New(rand.NewSource(s.seed)))
	return out, nil
}

type mat2 [2][2]complex128

func singleQubitMatrix(op circuit.Op) (mat2, error) {
	theta := 0.0
	if len(op.Params) > 0 {
		theta = op.Params[0]
	}
	inv := complex(1/math.Sqrt2, 0)
	switch op.Name {
	case circuit.GatePauliX:
		return mat2{{0, 1}, {1, 0}}, nil
	case "y":
		return mat2{{0, -1i}, {1i, 0}}, nil
	case "z":
		return mat2{{1, 0}, {0, -1}}, nil
	case "h":
		return mat2{{inv, inv}, {inv, -inv}}, nil
	case circuit.GateSqrtX:
		return mat2{{0.5 + 0.5i, 0.5 - 0.5i}, {0.5 - 0.5i, 0.5 + 0.5i}}, nil
	case "s":
		return mat2{{1, 0}, {0, 1i}}, nil
	case "sdg":
		return mat2{{1, 0}, {0, -1i}}, nil
	case "t":
		return mat2{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}}, nil
	case "tdg":
		return mat2{{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}}, nil
	case circuit.GateRotationZ:
		return mat2{{cmplx.Exp(complex(0, -theta/2)), 0}, {0, cmplx.Exp(complex(0, theta/2))}}, nil
	case "rx":
		c, s := complex(math.Cos(theta/2), 0), complex(0, -math.Sin(theta/2))
		return mat2{{c, s}, {s, c}}, nil
	case "ry":
		c, s := complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
		return mat2{{c, -s}, {s, c}}, nil
	}
	return mat2{}, fmt.Errorf("simulator does not implement gate %q", op.Name)
}

func applySingle(state []complex128, qubit int, m mat2) {
	bit := 1 << uint(qubit)
	for i := range state {
		if i&bit == 0 {
			a, b := state[i], state[i|bit]
			state[i] = m[0][0]*a + m[0][1]*b
			state[i|bit] = m[1][0]*a + m[1][1]*b
		}
	}
}

func applyCX(state []complex128, control, target int) {
	cbit := 1 << uint(control)
	tbit := 1 << uint(target)
	for i := range state {
		if i&cbit != 0 && i&tbit == 0 {
			state[i], state[i|tbit] = state[i|tbit], state[i]
		}
	}
}

func applyCZ(state []complex128, control, target int) {
	cbit := 1 << uint(control)
	tbit := 1 << uint(target)
	for i := range state {
		if i&cbit != 0 && i&tbit != 0 {
			state[i] = -state[i]
		}
	}
}

// resetQubit projects the qubit onto |0>, folding the |1> amplitude
// mass back in so the state stays normalized.
func resetQubit(state []complex128, qubit int) {
	bit := 1 << uint(qubit)
	for i := range state {
		if i&bit == 0 {
			p0 := real(state[i])*real(state[i]) + imag(state[i])*imag(state[i])
			p1 := real(state[i|bit])*real(state[i|bit]) + imag(state[i|bit])*imag(state[i|bit])
			state[i] = complex(math.Sqrt(p0+p1), 0)
			state[i|bit] = 0
		}
	}
}

func sample(state []complex128, measured map[int]int, numCbits, shots int, noise *NoiseModel, rng *rand.Rand) map[string]int {
	probs := make([]float64, len(state))
	total := 0.0
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		probs[i] = p
		total += p
	}

	cbits := make([]int, 0, len(measured))
	for c := range measured {
		cbits = append(cbits, c)
	}
	sort.Ints(cbits)
	width := numCbits
	if width < 1 {
		width = 1
	}

	counts := make(map[string]int, 4)
	for shot := 0; shot < shots; shot++ {
		r := rng.Float64() * total
		outcome := len(probs) - 1
		for i, p := range probs {
			r -= p
			if r <= 0 {
				outcome = i
				break
			}
		}

		key := make([]byte, width)
		for i := range key {
			key[i] = '0'
		}
		for _, c := range cbits {
			bit := (outcome >> uint(measured[c])) & 1
			if noise != nil && noise.ReadoutError > 0 && rng.Float64() < noise.ReadoutError {
				bit ^= 1
			}
			// Bitstring keys read most significant classical bit first.
			key[width-1-c] = byte('0' + bit)
		}
		counts[string(key)]++
	}
	return counts
}
