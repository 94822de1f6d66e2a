// Package config wraps the persisted user preferences: typed accessors
// over viper plus the known-key registry used by `qmet config set`.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// Preference keys persisted in the prefs file.
const (
	KeyAPIKey             = "api_key"
	KeyProviderURL        = "provider_url"
	KeyDefaultInputFile   = "default_input_file"
	KeyDefaultCompareFile = "default_compare_file"
	KeyDefaultOutputFile  = "default_output_file"
	KeyBackendInput       = "default_backend_input"
	KeyBackendCompare     = "default_backend_compare"
	KeyRoutingInput       = "default_routing_input"
	KeyRoutingCompare     = "default_routing_compare"
	KeyDefaultShots       = "default_shots"
)

var stringKeys = []string{
	KeyAPIKey,
	KeyProviderURL,
	KeyDefaultInputFile,
	KeyDefaultCompareFile,
	KeyDefaultOutputFile,
	KeyBackendInput,
	KeyBackendCompare,
	KeyRoutingInput,
	KeyRoutingCompare,
}

// Keys returns every settable preference key, sorted.
func Keys() []string {
	keys := append([]string{KeyDefaultShots}, stringKeys...)
	sort.Strings(keys)
	return keys
}

// GetAPIKey returns the provider API key.
func GetAPIKey() string {
	return viper.GetString(KeyAPIKey)
}

// GetProviderURL returns the remote provider endpoint override.
func GetProviderURL() string {
	return viper.GetString(KeyProviderURL)
}

// GetDefaultInputFile returns the default input circuit path.
func GetDefaultInputFile() string {
	return viper.GetString(KeyDefaultInputFile)
}

// GetDefaultCompareFile returns the default compare circuit path.
func GetDefaultCompareFile() string {
	return viper.GetString(KeyDefaultCompareFile)
}

// GetDefaultOutputFile returns the default report output path.
func GetDefaultOutputFile() string {
	return viper.GetString(KeyDefaultOutputFile)
}

// GetBackendInput returns the default backend for the input circuit.
func GetBackendInput() string {
	return viper.GetString(KeyBackendInput)
}

// GetBackendCompare returns the default backend for the compare circuit.
func GetBackendCompare() string {
	return viper.GetString(KeyBackendCompare)
}

// GetRoutingInput returns the default routing method for the input run.
func GetRoutingInput() string {
	return viper.GetString(KeyRoutingInput)
}

// GetRoutingCompare returns the default routing method for the compare run.
func GetRoutingCompare() string {
	return viper.GetString(KeyRoutingCompare)
}

// GetDefaultShots returns the default shot count for raw execution.
func GetDefaultShots() int {
	return viper.GetInt(KeyDefaultShots)
}

// Set updates one preference key in memory. The caller persists with Save.
func Set(key, value string) error {
	if key == KeyDefaultShots {
		viper.Set(key, value)
		return nil
	}
	for _, k := range stringKeys {
		if k == key {
			viper.Set(key, value)
			return nil
		}
	}
	return fmt.Errorf("unknown preference key %q", key)
}

// Reset clears every preference back to its zero default.
func Reset() {
	for _, k := range stringKeys {
		viper.Set(k, "")
	}
	viper.Set(KeyDefaultShots, 1024)
}

// Save writes the preferences file, creating the config directory and
// file on first use.
func Save() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	}
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "qmet", "prefs.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return viper.WriteConfigAs(path)
}
