// Package testutil provides fixture helpers shared by command tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Canned QASM fixtures matching the circuits used across the test suite.
const (
	InputQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[1];

x q[0];
cx q[0], q[1];
cx q[0], q[1];
measure q[0] -> c[0];
`

	CompareQASM = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[1];

cx q[0], q[1];
cx q[0], q[1];
cx q[0], q[1];
measure q[0] -> c[0];
`
)

// Workspace is a temp directory holding circuit files and a prefs
// sandbox for one test.
type Workspace struct {
	Dir string
	T   *testing.T
}

// NewWorkspace creates a temp workspace that cleans itself up.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{Dir: t.TempDir(), T: t}
}

// WriteQASM writes a circuit file into the workspace and returns its path.
func (w *Workspace) WriteQASM(name, src string) string {
	w.T.Helper()
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		w.T.Fatalf("failed to write qasm fixture: %v", err)
	}
	return path
}

// Path returns the absolute path of a file name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// ReadFile reads a workspace file.
func (w *Workspace) ReadFile(name string) string {
	w.T.Helper()
	data, err := os.ReadFile(filepath.Join(w.Dir, name))
	if err != nil {
		w.T.Fatalf("failed to read workspace file: %v", err)
	}
	return string(data)
}
