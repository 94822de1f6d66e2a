// Package metrics implements the pure circuit metric functions. Every
// function here is deterministic over its inputs and mutates nothing;
// argument validation lives one layer up in the report formatter, and
// RawResults only delegates to the supplied execution backend.
package metrics

import (
	"context"
	"errors"

	"github.com/qmetlab/qmet/internal/backend"
	"github.com/qmetlab/qmet/internal/circuit"
)

// ErrZeroDenominator signals a ratio metric whose input-circuit count
// or depth is zero. Rendered as an error block, never raised further.
var ErrZeroDenominator = errors.New("division by zero")

// CountGate returns the number of occurrences of gate in c.
func CountGate(c *circuit.Circuit, gate string) int {
	return c.Count(gate)
}

// DiffGate returns the compare-minus-input difference in gate
// occurrences. The sign convention is part of the observable contract.
func DiffGate(input, compare *circuit.Circuit, gate string) int {
	return CountGate(compare, gate) - CountGate(input, gate)
}

// RatioGate returns compare-count over input-count for gate.
func RatioGate(input, compare *circuit.Circuit, gate string) (float64, error) {
	denom := CountGate(input, gate)
	if denom == 0 {
		return 0, ErrZeroDenominator
	}
	return float64(CountGate(compare, gate)) / float64(denom), nil
}

// CircuitDepth returns the depth of c, optionally after rewriting into
// the given basis gate set. A nil basis uses the native gate set.
func CircuitDepth(c *circuit.Circuit, basis []string) int {
	return c.DepthWithBasis(basis)
}

// DiffDepth returns compare-depth minus input-depth, with per-circuit
// basis overrides.
func DiffDepth(input, compare *circuit.Circuit, basisInput, basisCompare []string) int {
	return CircuitDepth(compare, basisCompare) - CircuitDepth(input, basisInput)
}

// RatioDepth returns compare-depth over input-depth.
func RatioDepth(input, compare *circuit.Circuit, basisInput, basisCompare []string) (float64, error) {
	denom := CircuitDepth(input, basisInput)
	if denom == 0 {
		return 0, ErrZeroDenominator
	}
	return float64(CircuitDepth(compare, basisCompare)) / float64(denom), nil
}

// RawResults runs c on the backend for the given shot count and noise
// model and returns the outcome.
func RawResults(ctx context.Context, be backend.Backend, c *circuit.Circuit, shots int, noise *backend.NoiseModel) (*backend.Outcome, error) {
	return be.Run(ctx, c, shots, noise)
}
