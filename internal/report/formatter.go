package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/qmetlab/qmet/internal/circuit"
	"github.com/qmetlab/qmet/internal/metrics"
	"github.com/qmetlab/qmet/internal/ref"
)

// Fixed output shapes. Every successful metric renders the four-line
// block; every precondition failure renders the error line.
const (
	blockFormat = "Metric:\t%s\nGate:\t%s\nResult Note:\t%s\nResult:\t%s\n"
	errorFormat = "ERROR - %s: %s\n"
)

// Error notes, fixed strings part of the output contract.
const (
	noteInvalidGate    = "Invalid gate string chosen."
	noteMissingCompare = "Compare circuit must be defined."
	noteZeroGateCount  = "Input circuit gate count is zero."
	noteZeroDepth      = "Input circuit depth is zero."
)

// defaultBasisLabel names an absent basis override in result notes.
const defaultBasisLabel = "Default Gates"

// Evaluate renders one request as its output block(s) or an inline
// error block. It never fails: every error becomes text.
func Evaluate(ctx context.Context, r Request) string {
	switch r.Kind {
	case KindCountGate:
		return evalCountGate(r)
	case KindDiffGate:
		return evalDiffGate(r)
	case KindRatioGate:
		return evalRatioGate(r)
	case KindCircuitDepth:
		return evalCircuitDepth(r)
	case KindDiffDepth:
		return evalDiffDepth(r)
	case KindRatioDepth:
		return evalRatioDepth(r)
	case KindRaw:
		return evalRaw(ctx, r)
	}
	return ""
}

func block(desc, gate, note, result string) string {
	return fmt.Sprintf(blockFormat, desc, gate, note, result)
}

func errorBlock(k Kind, note string) string {
	return fmt.Sprintf(errorFormat, k.String(), note)
}

func basisLabel(basis []string) string {
	if len(basis) == 0 {
		return defaultBasisLabel
	}
	return strings.Join(basis, " ")
}

func circuitName(r *ref.Ref[*circuit.Circuit], fallback string) string {
	if r == nil || r.Name() == "" {
		return fallback
	}
	return r.Name()
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// evalCountGate emits one block per bound circuit: input first, then
// compare when present.
func evalCountGate(r Request) string {
	if !circuit.Recognized(r.Gate) {
		return errorBlock(r.Kind, noteInvalidGate)
	}

	var sb strings.Builder
	if r.Input != nil && !r.Input.IsEmpty() {
		count := metrics.CountGate(r.Input.Get(), r.Gate)
		sb.WriteString(block("Gate Occurrence Count", r.Gate,
			fmt.Sprintf("Occurrences in %s", circuitName(r.Input, "input circuit")),
			strconv.Itoa(count)))
	}
	if r.Compare != nil && !r.Compare.IsEmpty() {
		count := metrics.CountGate(r.Compare.Get(), r.Gate)
		sb.WriteString(block("Gate Occurrence Count", r.Gate,
			fmt.Sprintf("Occurrences in %s", circuitName(r.Compare, "compare circuit")),
			strconv.Itoa(count)))
	}
	return sb.String()
}

func evalDiffGate(r Request) string {
	if !circuit.Recognized(r.Gate) {
		return errorBlock(r.Kind, noteInvalidGate)
	}
	if r.Compare == nil || r.Compare.IsEmpty() {
		return errorBlock(r.Kind, noteMissingCompare)
	}

	diff := metrics.DiffGate(r.Input.Get(), r.Compare.Get(), r.Gate)
	return block("Difference in Gate Occurrences", r.Gate, "Compare - Input", strconv.Itoa(diff))
}

func evalRatioGate(r Request) string {
	if !circuit.Recognized(r.Gate) {
		return errorBlock(r.Kind, noteInvalidGate)
	}
	if r.Compare == nil || r.Compare.IsEmpty() {
		return errorBlock(r.Kind, noteMissingCompare)
	}

	ratio, err := metrics.RatioGate(r.Input.Get(), r.Compare.Get(), r.Gate)
	if err != nil {
		return errorBlock(r.Kind, noteZeroGateCount)
	}
	return block("Ratio of Gate Occurrences", r.Gate, "Compare / Input", formatRatio(ratio))
}

// evalCircuitDepth emits one block per bound circuit, like evalCountGate.
func evalCircuitDepth(r Request) string {
	var sb strings.Builder
	if r.Input != nil && !r.Input.IsEmpty() {
		depth := metrics.CircuitDepth(r.Input.Get(), r.BasisInput)
		sb.WriteString(block("Circuit Depth", "",
			fmt.Sprintf("Depth of %s (%s)", circuitName(r.Input, "input circuit"), basisLabel(r.BasisInput)),
			strconv.Itoa(depth)))
	}
	if r.Compare != nil && !r.Compare.IsEmpty() {
		depth := metrics.CircuitDepth(r.Compare.Get(), r.BasisCompare)
		sb.WriteString(block("Circuit Depth", "",
			fmt.Sprintf("Depth of %s (%s)", circuitName(r.Compare, "compare circuit"), basisLabel(r.BasisCompare)),
			strconv.Itoa(depth)))
	}
	return sb.String()
}

func depthComparisonNote(r Request, operator string) string {
	return fmt.Sprintf("Compare %s Input: %s (%s) %s %s (%s)",
		operator,
		circuitName(r.Compare, "compare circuit"), basisLabel(r.BasisCompare),
		operator,
		circuitName(r.Input, "input circuit"), basisLabel(r.BasisInput))
}

func evalDiffDepth(r Request) string {
	if r.Compare == nil || r.Compare.IsEmpty() {
		return errorBlock(r.Kind, noteMissingCompare)
	}

	diff := metrics.DiffDepth(r.Input.Get(), r.Compare.Get(), r.BasisInput, r.BasisCompare)
	return block("Difference in Circuit Depth", "", depthComparisonNote(r, "-"), strconv.Itoa(diff))
}

func evalRatioDepth(r Request) string {
	if r.Compare == nil || r.Compare.IsEmpty() {
		return errorBlock(r.Kind, noteMissingCompare)
	}

	ratio, err := metrics.RatioDepth(r.Input.Get(), r.Compare.Get(), r.BasisInput, r.BasisCompare)
	if err != nil {
		return errorBlock(r.Kind, noteZeroDepth)
	}
	return block("Ratio of Circuit Depth", "", depthComparisonNote(r, "/"), formatRatio(ratio))
}

// evalRaw runs the bound circuit on the bound backend. Unbound slots
// yield empty output rather than an error block; unavailable counts
// render the literal "None".
func evalRaw(ctx context.Context, r Request) string {
	if r.Input == nil || r.Input.IsEmpty() || r.Backend == nil || r.Backend.IsEmpty() {
		return ""
	}

	shots := r.Shots
	if shots < 1 {
		shots = 1024
	}
	be := r.Backend.Get()

	result := "None"
	outcome, err := metrics.RawResults(ctx, be, r.Input.Get(), shots, r.Noise)
	if err == nil {
		if counts, cerr := outcome.Counts(); cerr == nil {
			result = fmt.Sprintf("%v", counts)
		}
	}

	note := fmt.Sprintf("Counts for %s on %s (%d shots)",
		circuitName(r.Input, "input circuit"), be.Name(), shots)
	return block("Raw Execution Counts", "", note, result)
}
