package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qmetlab/qmet/internal/circuit"
)

// DefaultProviderURL is the default remote provider endpoint.
const DefaultProviderURL = "https://api.qmetlab.dev/v1"

// Provider is an HTTP client for a remote execution provider exposing
// hardware and hosted-simulator backends behind an API key.
type Provider struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewProvider returns a provider client. An empty url selects the
// default endpoint.
func NewProvider(url, token string) *Provider {
	if url == "" {
		url = DefaultProviderURL
	}
	return &Provider{
		http:    &http.Client{Timeout: 120 * time.Second},
		baseURL: strings.TrimRight(url, "/"),
		token:   token,
	}
}

// IsAvailable checks whether the provider endpoint answers at all,
// with a short timeout so a missing network never stalls a run.
func IsAvailable(url string) bool {
	if url == "" {
		url = DefaultProviderURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(strings.TrimRight(url, "/") + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Backends lists the backend names available to the configured token.
func (p *Provider) Backends(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/backends", nil)
	if err != nil {
		return nil, err
	}
	p.authorize(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider backends: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider error: %s", resp.Status)
	}

	var out struct {
		Backends []string `json:"backends"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode backend list: %w", err)
	}
	return out.Backends, nil
}

// Backend returns a handle that submits runs to the named remote
// backend with the given routing method.
func (p *Provider) Backend(name, routing string) Backend {
	return &remoteBackend{provider: p, name: name, routing: routing}
}

type remoteBackend struct {
	provider *Provider
	name     string
	routing  string
}

func (b *remoteBackend) Name() string {
	return b.name
}

type runRequest struct {
	Backend      string  `json:"backend"`
	QASM         string  `json:"qasm"`
	Shots        int     `json:"shots"`
	Routing      string  `json:"routing,omitempty"`
	ReadoutError float64 `json:"readout_error,omitempty"`
}

type runResponse struct {
	JobID  string         `json:"job_id"`
	Counts map[string]int `json:"counts"`
	Error  string         `json:"error,omitempty"`
}

func (b *remoteBackend) Run(ctx context.Context, c *circuit.Circuit, shots int, noise *NoiseModel) (*Outcome, error) {
	payload := runRequest{
		Backend: b.name,
		QASM:    c.ToQASM(),
		Shots:   shots,
		Routing: b.routing,
	}
	if noise != nil {
		payload.ReadoutError = noise.ReadoutError
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.provider.baseURL+"/run", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	b.provider.authorize(req)

	resp, err := b.provider.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit run to %s: %w", b.name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider error: %s", resp.Status)
	}

	var out runResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode run response: %w", err)
	}

	outcome := &Outcome{
		JobID:       out.JobID,
		BackendName: b.name,
		Shots:       shots,
		counts:      out.Counts,
	}
	if outcome.JobID == "" {
		outcome.JobID = uuid.NewString()
	}
	if out.Error != "" {
		outcome.countsErr = fmt.Errorf("%w: %s", ErrNoCounts, out.Error)
	} else if len(out.Counts) == 0 {
		outcome.countsErr = ErrNoCounts
	}
	return outcome, nil
}

func (p *Provider) authorize(req *http.Request) {
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
}
