package circuit

import "sort"

// Canonical gate string identifiers. These mirror the basis gates of
// current superconducting hardware plus the non-unitary operations.
const (
	GateControlNot = "cx"
	GateSqrtX      = "sx"
	GateIdentity   = "id"
	GateRotationZ  = "rz"
	GatePauliX     = "x"
	GateReset      = "reset"
	GateMeasure    = "measure"
)

// recognizedGates is the closed set accepted by gate-count metrics.
// Parsing accepts a wider set (see decompositions); counting does not.
var recognizedGates = map[string]struct{}{
	GateControlNot: {},
	GateSqrtX:      {},
	GateIdentity:   {},
	GateRotationZ:  {},
	GatePauliX:     {},
	GateReset:      {},
	GateMeasure:    {},
}

// Recognized reports whether gate is a member of the closed identifier set.
func Recognized(gate string) bool {
	_, ok := recognizedGates[gate]
	return ok
}

// RecognizedGates returns the closed identifier set in sorted order.
func RecognizedGates() []string {
	gates := make([]string, 0, len(recognizedGates))
	for g := range recognizedGates {
		gates = append(gates, g)
	}
	sort.Strings(gates)
	return gates
}

// Routing method names accepted for transpilation requests. Routing
// itself happens on the backend side; these are pass-through choices.
const (
	RoutingBasic      = "basic"
	RoutingSabre      = "sabre"
	RoutingLookahead  = "lookahead"
	RoutingStochastic = "stochastic"
)

// ValidRouting reports whether name is a known routing method. The
// empty string means "backend default" and is always valid.
func ValidRouting(name string) bool {
	switch name {
	case "", RoutingBasic, RoutingSabre, RoutingLookahead, RoutingStochastic:
		return true
	}
	return false
}
