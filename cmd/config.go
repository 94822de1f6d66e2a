package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/qmetlab/qmet/internal/config"
	"github.com/spf13/cobra"
)

var (
	configShowJSON bool
	configShowToon bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted preferences",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted defaults",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one preference and persist it",
	Long: `Set a preference key. Known keys:

  api_key                 provider API key
  provider_url            remote provider endpoint override
  default_input_file      default input circuit path
  default_compare_file    default compare circuit path
  default_output_file     default report output path
  default_backend_input   default backend for the input circuit
  default_backend_compare default backend for the compare circuit
  default_routing_input   default routing method for the input run
  default_routing_compare default routing method for the compare run
  default_shots           default shot count for raw execution`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every preference to its default",
	RunE:  runConfigReset,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configResetCmd)

	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "Output as JSON")
	configShowCmd.Flags().BoolVar(&configShowToon, "toon", false, "Output in LLM-friendly toon format")
}

type preferences struct {
	APIKeySet      bool   `json:"api_key_set"`
	ProviderURL    string `json:"provider_url,omitempty"`
	InputFile      string `json:"default_input_file"`
	CompareFile    string `json:"default_compare_file"`
	OutputFile     string `json:"default_output_file"`
	BackendInput   string `json:"default_backend_input"`
	BackendCompare string `json:"default_backend_compare"`
	RoutingInput   string `json:"default_routing_input"`
	RoutingCompare string `json:"default_routing_compare"`
	Shots          int    `json:"default_shots"`
}

func currentPreferences() preferences {
	return preferences{
		APIKeySet:      config.GetAPIKey() != "",
		ProviderURL:    config.GetProviderURL(),
		InputFile:      config.GetDefaultInputFile(),
		CompareFile:    config.GetDefaultCompareFile(),
		OutputFile:     config.GetDefaultOutputFile(),
		BackendInput:   config.GetBackendInput(),
		BackendCompare: config.GetBackendCompare(),
		RoutingInput:   config.GetRoutingInput(),
		RoutingCompare: config.GetRoutingCompare(),
		Shots:          config.GetDefaultShots(),
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	prefs := currentPreferences()

	if configShowJSON {
		output, err := json.MarshalIndent(prefs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(runOut, string(output))
		return nil
	}

	if configShowToon {
		output, err := gotoon.Encode(prefs)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(runOut, output)
		return nil
	}

	fmt.Fprintln(runOut, "DEFAULTS:")
	fmt.Fprintf(runOut, "\tInput File:\t%s\n", prefs.InputFile)
	fmt.Fprintf(runOut, "\tCompare File:\t%s\n", prefs.CompareFile)
	fmt.Fprintf(runOut, "\tOutput File:\t%s\n", prefs.OutputFile)
	fmt.Fprintf(runOut, "\tInput Backend:\t%s\n", prefs.BackendInput)
	fmt.Fprintf(runOut, "\tCompare Backend:\t%s\n", prefs.BackendCompare)
	fmt.Fprintf(runOut, "\tInput Routing:\t%s\n", prefs.RoutingInput)
	fmt.Fprintf(runOut, "\tCompare Routing:\t%s\n", prefs.RoutingCompare)
	fmt.Fprintf(runOut, "\tShots:\t%d\n", prefs.Shots)
	if prefs.APIKeySet {
		fmt.Fprintf(runOut, "\tAPI Key:\t(set)\n")
	} else {
		fmt.Fprintf(runOut, "\tAPI Key:\t(unset)\n")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := config.Set(args[0], args[1]); err != nil {
		return err
	}
	return config.Save()
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	config.Reset()
	return config.Save()
}
