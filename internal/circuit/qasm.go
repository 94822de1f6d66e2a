package circuit

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrParse wraps all QASM syntax failures.
var ErrParse = errors.New("qasm parse error")

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex    = regexp.MustCompile(`^qreg\s+\w+\[(\d+)\];?$`)
	cregRegex    = regexp.MustCompile(`^creg\s+\w+\[(\d+)\];?$`)
	measureRegex = regexp.MustCompile(`^measure\s+\w+\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
	gateRegex    = regexp.MustCompile(`^(\w+)\s*(?:\(([^)]*)\))?\s+(\w+\[\d+\](?:\s*,\s*\w+\[\d+\])*)\s*;?$`)
	operandRegex = regexp.MustCompile(`\w+\[(\d+)\]`)
)

// parseableGates is the superset of gate names accepted by the parser.
// It is wider than the recognized metric set so real circuits load.
var parseableGates = map[string]int{
	GateControlNot: 2,
	GateSqrtX:      1,
	GateIdentity:   1,
	GateRotationZ:  1,
	GatePauliX:     1,
	GateReset:      1,
	"h":            1,
	"z":            1,
	"y":            1,
	"s":            1,
	"sdg":          1,
	"t":            1,
	"tdg":          1,
	"rx":           1,
	"ry":           1,
	"cz":           2,
	"swap":         2,
}

// Load reads and parses an OpenQASM 2.0 file.
func Load(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read circuit file: %w", err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse builds a circuit from OpenQASM 2.0 source text.
func Parse(src string) (*Circuit, error) {
	c := &Circuit{}

	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "barrier") {
			c.Ops = append(c.Ops, Op{Name: "barrier", Cbit: -1})
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n > c.NumQubits {
				c.NumQubits = n
			}
			continue
		}
		if m := cregRegex.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n > c.NumCbits {
				c.NumCbits = n
			}
			continue
		}
		if m := measureRegex.FindStringSubmatch(line); m != nil {
			qubit, _ := strconv.Atoi(m[1])
			cbit, _ := strconv.Atoi(m[2])
			c.AppendMeasure(qubit, cbit)
			continue
		}
		if m := gateRegex.FindStringSubmatch(line); m != nil {
			if err := c.parseGateLine(m); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrParse, i+1, err)
			}
			continue
		}
		return nil, fmt.Errorf("%w: line %d: unrecognized statement %q", ErrParse, i+1, line)
	}
	return c, nil
}

func (c *Circuit) parseGateLine(m []string) error {
	name := strings.ToLower(m[1])
	arity, ok := parseableGates[name]
	if !ok {
		return fmt.Errorf("unsupported gate %q", name)
	}

	var qubits []int
	for _, om := range operandRegex.FindAllStringSubmatch(m[3], -1) {
		q, _ := strconv.Atoi(om[1])
		qubits = append(qubits, q)
	}
	if len(qubits) != arity {
		return fmt.Errorf("gate %q expects %d operand(s), got %d", name, arity, len(qubits))
	}

	var params []float64
	if m[2] != "" {
		for _, expr := range strings.Split(m[2], ",") {
			v, err := parseAngle(strings.TrimSpace(expr))
			if err != nil {
				return err
			}
			params = append(params, v)
		}
	}

	c.AppendParams(name, params, qubits...)
	return nil
}

// parseAngle evaluates the small angle grammar QASM files use in
// practice: a float literal, "pi", or products/quotients like
// "pi/2", "-pi/4", "3*pi/2".
func parseAngle(expr string) (float64, error) {
	expr = strings.ReplaceAll(expr, " ", "")
	if expr == "" {
		return 0, fmt.Errorf("empty gate parameter")
	}

	sign := 1.0
	if strings.HasPrefix(expr, "-") {
		sign = -1.0
		expr = expr[1:]
	}

	num, den := expr, ""
	if idx := strings.Index(expr, "/"); idx >= 0 {
		num, den = expr[:idx], expr[idx+1:]
	}

	val, err := parseFactor(num)
	if err != nil {
		return 0, err
	}
	if den != "" {
		d, err := parseFactor(den)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("invalid gate parameter %q", expr)
		}
		val /= d
	}
	return sign * val, nil
}

func parseFactor(s string) (float64, error) {
	if idx := strings.Index(s, "*"); idx >= 0 {
		a, err := parseFactor(s[:idx])
		if err != nil {
			return 0, err
		}
		b, err := parseFactor(s[idx+1:])
		if err != nil {
			return 0, err
		}
		return a * b, nil
	}
	if s == "pi" {
		return math.Pi, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid gate parameter %q", s)
	}
	return v, nil
}
