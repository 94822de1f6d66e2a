// Package circuit holds the quantum circuit representation shared by
// the metric functions and the execution backends: an ordered list of
// gate operations over qubit and classical-bit registers, parsed from
// OpenQASM 2.0.
package circuit

import (
	"fmt"
	"strings"
)

// Op is a single operation placed on the circuit. Qubits lists the
// operands in gate order (control first for two-qubit gates). Cbit is
// the classical target of a measure, -1 otherwise.
type Op struct {
	Name   string
	Qubits []int
	Params []float64
	Cbit   int
}

// Circuit is an ordered sequence of operations. Program order is data
// order: operations touching the same qubit depend on each other.
type Circuit struct {
	NumQubits int
	NumCbits  int
	Ops       []Op
}

// Append adds a unitary gate acting on the given qubits.
func (c *Circuit) Append(name string, qubits ...int) {
	c.AppendParams(name, nil, qubits...)
}

// AppendParams adds a parameterized gate acting on the given qubits.
func (c *Circuit) AppendParams(name string, params []float64, qubits ...int) {
	c.Ops = append(c.Ops, Op{Name: name, Qubits: qubits, Params: params, Cbit: -1})
	for _, q := range qubits {
		if q >= c.NumQubits {
			c.NumQubits = q + 1
		}
	}
}

// AppendMeasure adds a measurement of qubit into classical bit cbit.
func (c *Circuit) AppendMeasure(qubit, cbit int) {
	c.Ops = append(c.Ops, Op{Name: GateMeasure, Qubits: []int{qubit}, Cbit: cbit})
	if qubit >= c.NumQubits {
		c.NumQubits = qubit + 1
	}
	if cbit >= c.NumCbits {
		c.NumCbits = cbit + 1
	}
}

// Count returns the number of operations named gate.
func (c *Circuit) Count(gate string) int {
	n := 0
	for _, op := range c.Ops {
		if op.Name == gate {
			n++
		}
	}
	return n
}

// CountOps returns occurrence counts for every operation name present.
func (c *Circuit) CountOps() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		counts[op.Name]++
	}
	return counts
}

// Size returns the total number of operations.
func (c *Circuit) Size() int {
	return len(c.Ops)
}

// Measurements returns the qubit->cbit pairs in program order.
func (c *Circuit) Measurements() []Op {
	var ms []Op
	for _, op := range c.Ops {
		if op.Name == GateMeasure {
			ms = append(ms, op)
		}
	}
	return ms
}

// ToQASM serializes the circuit back to OpenQASM 2.0. Used when
// shipping a circuit to a remote backend.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	numQubits := c.NumQubits
	if numQubits < 1 {
		numQubits = 1
	}
	numCbits := c.NumCbits
	if numCbits < 1 {
		numCbits = 1
	}
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for _, op := range c.Ops {
		switch {
		case op.Name == GateMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", op.Qubits[0], op.Cbit)
		case op.Name == "barrier":
			sb.WriteString("barrier q;\n")
		case len(op.Params) > 0:
			params := make([]string, len(op.Params))
			for i, p := range op.Params {
				params[i] = fmt.Sprintf("%g", p)
			}
			fmt.Fprintf(&sb, "%s(%s) %s;\n", op.Name, strings.Join(params, ","), qubitList(op.Qubits))
		default:
			fmt.Fprintf(&sb, "%s %s;\n", op.Name, qubitList(op.Qubits))
		}
	}
	return sb.String()
}

func qubitList(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ", ")
}
