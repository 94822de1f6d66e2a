package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainPreservesFIFOOrder(t *testing.T) {
	in, cmp := inputRef(t), compareRef(t)

	var q Queue
	q.Enqueue(Request{Kind: KindCircuitDepth, Input: in, Compare: emptyCircuitRef()})
	q.Enqueue(Request{Kind: KindCountGate, Gate: "x", Input: in, Compare: emptyCircuitRef()})
	q.Enqueue(Request{Kind: KindDiffDepth, Input: in, Compare: cmp})
	require.Equal(t, 3, q.Len())

	out := q.Drain(context.Background())
	assert.Equal(t, 0, q.Len(), "queue is empty after one drain")

	depthIdx := strings.Index(out, "Metric:\tCircuit Depth\n")
	countIdx := strings.Index(out, "Metric:\tGate Occurrence Count\n")
	diffIdx := strings.Index(out, "Metric:\tDifference in Circuit Depth\n")

	require.GreaterOrEqual(t, depthIdx, 0)
	require.Greater(t, countIdx, depthIdx)
	require.Greater(t, diffIdx, countIdx)
}

func TestDrainContinuesPastFailures(t *testing.T) {
	in, cmp := inputRef(t), compareRef(t)

	var q Queue
	q.Enqueue(Request{Kind: KindCountGate, Gate: "zz", Input: in})
	q.Enqueue(Request{Kind: KindDiffGate, Gate: "cx", Input: in, Compare: cmp})

	out := q.Drain(context.Background())
	assert.Contains(t, out, "ERROR - metricCountGate: Invalid gate string chosen.\n")
	assert.Contains(t, out, "Result:\t1\n", "failure does not abort the batch")
}

func TestDrainEmptyQueue(t *testing.T) {
	var q Queue
	assert.Equal(t, "", q.Drain(context.Background()))
}
