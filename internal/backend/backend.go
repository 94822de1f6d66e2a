// Package backend provides circuit execution: a local statevector
// sampler, an HTTP client for remote providers, and the availability
// check gating every metric run.
package backend

import (
	"context"
	"errors"

	"github.com/qmetlab/qmet/internal/circuit"
)

// ErrNoCounts means the outcome has no measurement counts to expose.
var ErrNoCounts = errors.New("no counts available for this outcome")

// NoiseModel carries the error characteristics applied during
// execution. A nil model means ideal execution.
type NoiseModel struct {
	// ReadoutError is the per-bit probability of flipping a measured
	// classical bit.
	ReadoutError float64
}

// Backend runs circuits and returns outcomes.
type Backend interface {
	Name() string
	Run(ctx context.Context, c *circuit.Circuit, shots int, noise *NoiseModel) (*Outcome, error)
}

// Outcome is the result of one backend execution.
type Outcome struct {
	JobID       string
	BackendName string
	Shots       int

	counts    map[string]int
	countsErr error
}

// Counts returns measurement counts keyed by classical bitstring
// (most significant bit first). It fails with ErrNoCounts when the
// executed circuit produced no measurable outcome.
func (o *Outcome) Counts() (map[string]int, error) {
	if o.countsErr != nil {
		return nil, o.countsErr
	}
	return o.counts, nil
}

// Available reports whether every concretely requested backend name is
// present in the catalog. Empty names are not requests and always pass.
// Matching is exact and case-sensitive.
func Available(catalog []string, names ...string) bool {
	for _, name := range names {
		if name == "" {
			continue
		}
		found := false
		for _, have := range catalog {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Catalog gathers the backend-name snapshot for one run: the local
// simulator methods plus, when a provider is configured, its remote
// backends. Remote listing failures degrade to the local set.
func Catalog(ctx context.Context, provider *Provider) []string {
	names := LocalMethods()
	if provider != nil {
		remote, err := provider.Backends(ctx)
		if err == nil {
			names = append(names, remote...)
		}
	}
	return names
}

// Resolve returns a runnable backend for name, preferring the local
// simulator and falling back to the provider.
func Resolve(name, routing string, provider *Provider) (Backend, error) {
	if sim, err := NewSimulator(name); err == nil {
		return sim, nil
	}
	if provider != nil {
		return provider.Backend(name, routing), nil
	}
	return nil, errors.New("backend " + name + " requires a configured provider API key")
}
