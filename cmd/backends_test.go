package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBackendsHumanOutput(t *testing.T) {
	buf := resetRunState(t)
	backendsJSON = false
	backendsToon = false

	if err := runBackends(nil, nil); err != nil {
		t.Fatalf("backends command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Available simulator methods:") {
		t.Errorf("missing simulator section:\n%s", out)
	}
	for _, name := range []string{"aer_simulator", "statevector", "stabilizer"} {
		if !strings.Contains(out, "\t"+name+"\n") {
			t.Errorf("missing simulator %q:\n%s", name, out)
		}
	}
	if strings.Contains(out, "Available provider backends:") {
		t.Errorf("provider section must be absent without an API key:\n%s", out)
	}
}

func TestBackendsJSONOutput(t *testing.T) {
	buf := resetRunState(t)
	backendsJSON = true
	t.Cleanup(func() { backendsJSON = false })

	if err := runBackends(nil, nil); err != nil {
		t.Fatalf("backends command failed: %v", err)
	}

	var catalog backendCatalog
	if err := json.Unmarshal(buf.Bytes(), &catalog); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(catalog.Simulators) == 0 {
		t.Error("no simulators listed")
	}
}
