package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/qmetlab/qmet/internal/backend"
	"github.com/qmetlab/qmet/internal/config"
	"github.com/spf13/cobra"
)

var (
	backendsJSON bool
	backendsToon bool
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the available execution backends",
	Long: `List every backend the current configuration can run on: the local
simulator methods, plus the remote provider's backends when an API key
is configured.

Examples:
  qmet backends
  qmet backends --json
  qmet backends --toon`,
	RunE: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)

	backendsCmd.Flags().BoolVar(&backendsJSON, "json", false, "Output as JSON")
	backendsCmd.Flags().BoolVar(&backendsToon, "toon", false, "Output in LLM-friendly toon format")
}

type backendCatalog struct {
	Simulators []string `json:"simulators"`
	Provider   []string `json:"provider,omitempty"`
}

func runBackends(cmd *cobra.Command, args []string) error {
	catalog := backendCatalog{Simulators: backend.LocalMethods()}

	if key := config.GetAPIKey(); key != "" {
		provider := backend.NewProvider(config.GetProviderURL(), key)
		remote, err := provider.Backends(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list provider backends: %w", err)
		}
		catalog.Provider = remote
	}

	if backendsJSON {
		output, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(runOut, string(output))
		return nil
	}

	if backendsToon {
		output, err := gotoon.Encode(catalog)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(runOut, output)
		return nil
	}

	fmt.Fprintln(runOut, "Available simulator methods:")
	for _, name := range catalog.Simulators {
		fmt.Fprintf(runOut, "\t%s\n", name)
	}
	if len(catalog.Provider) > 0 {
		fmt.Fprintln(runOut, "Available provider backends:")
		for _, name := range catalog.Provider {
			fmt.Fprintf(runOut, "\t%s\n", name)
		}
	}
	fmt.Fprintln(runOut)
	return nil
}
