// Package report turns deferred metric requests into the final text
// report: a FIFO queue of argument-bound requests, a formatter that
// renders each one as a fixed block or an inline error block, and a
// runner that drains the queue exactly once.
package report

import (
	"context"
	"strings"

	"github.com/qmetlab/qmet/internal/backend"
	"github.com/qmetlab/qmet/internal/circuit"
	"github.com/qmetlab/qmet/internal/ref"
)

// Kind tags the closed set of metric request variants.
type Kind int

const (
	KindCountGate Kind = iota
	KindDiffGate
	KindRatioGate
	KindCircuitDepth
	KindDiffDepth
	KindRatioDepth
	KindRaw
)

// metricNames are the labels used in error blocks.
var metricNames = map[Kind]string{
	KindCountGate:    "metricCountGate",
	KindDiffGate:     "metricDiffGate",
	KindRatioGate:    "metricRatioGate",
	KindCircuitDepth: "metricCircuitDepth",
	KindDiffDepth:    "metricDiffDepth",
	KindRatioDepth:   "metricRatioDepth",
	KindRaw:          "metricRaw",
}

func (k Kind) String() string {
	return metricNames[k]
}

// Request is one deferred metric invocation. The circuit and backend
// slots are bound at enqueue time and resolved when the queue drains;
// payload fields are frozen once enqueued.
type Request struct {
	Kind Kind

	// Gate payload for the gate-count family.
	Gate string

	// Basis gate-set overrides for the depth family. Nil means the
	// circuit's native gate set.
	BasisInput   []string
	BasisCompare []string

	// Execution payload for Raw.
	Shots int
	Noise *backend.NoiseModel

	Input   *ref.Ref[*circuit.Circuit]
	Compare *ref.Ref[*circuit.Circuit]
	Backend *ref.Ref[backend.Backend]
}

// Queue is the ordered, append-only list of deferred metric requests.
// Insertion order is execution and output order.
type Queue struct {
	items []Request
}

// Enqueue appends a request. Its bound arguments are frozen from here on.
func (q *Queue) Enqueue(r Request) {
	q.items = append(q.items, r)
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	return len(q.items)
}

// Drain evaluates every pending request in FIFO order and concatenates
// the resulting blocks. Failures render inline; no request is retried
// or skipped, and the queue is empty afterwards.
func (q *Queue) Drain(ctx context.Context) string {
	var sb strings.Builder
	for len(q.items) > 0 {
		r := q.items[0]
		q.items = q.items[1:]
		sb.WriteString(Evaluate(ctx, r))
	}
	return sb.String()
}
