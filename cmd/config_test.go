package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/qmetlab/qmet/internal/testutil"
	"github.com/spf13/viper"
)

func TestConfigSetPersists(t *testing.T) {
	resetRunState(t)
	ws := testutil.NewWorkspace(t)

	prefs := ws.Path("prefs.json")
	viper.SetConfigFile(prefs)
	viper.SetConfigType("json")

	if err := runConfigSet(nil, []string{"default_backend_input", "aer_simulator"}); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	data, err := os.ReadFile(prefs)
	if err != nil {
		t.Fatalf("prefs file not written: %v", err)
	}
	var stored map[string]any
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("prefs file is not valid JSON: %v", err)
	}
	if stored["default_backend_input"] != "aer_simulator" {
		t.Errorf("preference not persisted, got %v", stored)
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	resetRunState(t)

	if err := runConfigSet(nil, []string{"favorite_color", "blue"}); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestConfigResetClearsDefaults(t *testing.T) {
	resetRunState(t)
	ws := testutil.NewWorkspace(t)

	viper.SetConfigFile(ws.Path("prefs.json"))
	viper.SetConfigType("json")
	viper.Set("api_key", "secret")
	viper.Set("default_input_file", "a.qasm")

	if err := runConfigReset(nil, nil); err != nil {
		t.Fatalf("config reset failed: %v", err)
	}

	if viper.GetString("api_key") != "" || viper.GetString("default_input_file") != "" {
		t.Error("reset did not clear preferences")
	}
	if viper.GetInt("default_shots") != 1024 {
		t.Errorf("reset must restore the shots default, got %d", viper.GetInt("default_shots"))
	}
}

func TestConfigShowHuman(t *testing.T) {
	buf := resetRunState(t)
	viper.Set("default_backend_input", "statevector")
	viper.Set("default_shots", 2048)

	if err := runConfigShow(nil, nil); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "DEFAULTS:") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "\tInput Backend:\tstatevector\n") {
		t.Errorf("missing backend line:\n%s", out)
	}
	if !strings.Contains(out, "\tShots:\t2048\n") {
		t.Errorf("missing shots line:\n%s", out)
	}
	if !strings.Contains(out, "\tAPI Key:\t(unset)\n") {
		t.Errorf("API key must render as unset:\n%s", out)
	}
}
