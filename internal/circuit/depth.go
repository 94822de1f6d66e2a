package circuit

import "math"

// Depth returns the length of the longest chain of data-dependent
// operations: each op lands one layer past the deepest frontier among
// the qubits and classical bits it touches. Barriers occupy no layer
// of their own but synchronize every qubit frontier.
func (c *Circuit) Depth() int {
	qubitFront := make([]int, c.NumQubits)
	cbitFront := make([]int, c.NumCbits)
	depth := 0

	for _, op := range c.Ops {
		if op.Name == "barrier" {
			level := 0
			for _, f := range qubitFront {
				if f > level {
					level = f
				}
			}
			for i := range qubitFront {
				qubitFront[i] = level
			}
			continue
		}
		if op.Name == GateIdentity {
			continue
		}

		level := 0
		for _, q := range op.Qubits {
			if qubitFront[q] > level {
				level = qubitFront[q]
			}
		}
		if op.Cbit >= 0 && cbitFront[op.Cbit] > level {
			level = cbitFront[op.Cbit]
		}
		level++
		for _, q := range op.Qubits {
			qubitFront[q] = level
		}
		if op.Cbit >= 0 {
			cbitFront[op.Cbit] = level
		}
		if level > depth {
			depth = level
		}
	}
	return depth
}

// decompositions expands non-basis gates into equivalent sequences over
// smaller gate sets. Expansion applies recursively until every gate is
// in the requested basis or has no rule.
var decompositions = map[string][]Op{
	"h":    {{Name: GateRotationZ, Params: []float64{math.Pi / 2}}, {Name: GateSqrtX}, {Name: GateRotationZ, Params: []float64{math.Pi / 2}}},
	"z":    {{Name: GateRotationZ, Params: []float64{math.Pi}}},
	"s":    {{Name: GateRotationZ, Params: []float64{math.Pi / 2}}},
	"sdg":  {{Name: GateRotationZ, Params: []float64{-math.Pi / 2}}},
	"t":    {{Name: GateRotationZ, Params: []float64{math.Pi / 4}}},
	"tdg":  {{Name: GateRotationZ, Params: []float64{-math.Pi / 4}}},
	"y":    {{Name: GateRotationZ, Params: []float64{math.Pi}}, {Name: GatePauliX}},
	"rx":   {{Name: "h"}, {Name: GateRotationZ}, {Name: "h"}},
	"ry":   {{Name: "sdg"}, {Name: "rx"}, {Name: "s"}},
	"cz":   {{Name: "h", Qubits: []int{1}}, {Name: GateControlNot, Qubits: []int{0, 1}}, {Name: "h", Qubits: []int{1}}},
	"swap": {{Name: GateControlNot, Qubits: []int{0, 1}}, {Name: GateControlNot, Qubits: []int{1, 0}}, {Name: GateControlNot, Qubits: []int{0, 1}}},
}

// DepthWithBasis returns the depth after rewriting the circuit into the
// given basis gate set. An empty basis means the circuit's native gate
// set: no rewrite.
func (c *Circuit) DepthWithBasis(basis []string) int {
	if len(basis) == 0 {
		return c.Depth()
	}
	return c.Rewrite(basis).Depth()
}

// Rewrite returns a copy of the circuit with every gate outside basis
// expanded through the decomposition table. Gates with no rule are kept
// as-is; measure and reset always pass through.
func (c *Circuit) Rewrite(basis []string) *Circuit {
	inBasis := make(map[string]struct{}, len(basis))
	for _, g := range basis {
		inBasis[g] = struct{}{}
	}

	out := &Circuit{NumQubits: c.NumQubits, NumCbits: c.NumCbits}
	for _, op := range c.Ops {
		expandOp(out, op, inBasis, 0)
	}
	return out
}

func expandOp(out *Circuit, op Op, inBasis map[string]struct{}, depth int) {
	if op.Name == GateMeasure || op.Name == GateReset || op.Name == "barrier" {
		out.Ops = append(out.Ops, op)
		return
	}
	if _, ok := inBasis[op.Name]; ok || depth > 8 {
		out.Ops = append(out.Ops, op)
		return
	}
	rule, ok := decompositions[op.Name]
	if !ok {
		out.Ops = append(out.Ops, op)
		return
	}
	for _, step := range rule {
		expanded := Op{Name: step.Name, Params: step.Params, Cbit: -1}
		if len(step.Qubits) == 0 {
			expanded.Qubits = op.Qubits[:1]
		} else {
			// Rule qubit indices are positions into the op's operand list.
			expanded.Qubits = make([]int, len(step.Qubits))
			for i, pos := range step.Qubits {
				expanded.Qubits[i] = op.Qubits[pos]
			}
		}
		expandOp(out, expanded, inBasis, depth+1)
	}
}
