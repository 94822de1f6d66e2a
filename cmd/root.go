package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmetlab/qmet/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "qmet",
	Short: "Structural and execution metrics for quantum circuits",
	Long: `qmet loads an OpenQASM circuit, optionally a second circuit to
compare against, picks an execution backend, and computes a queue of
metrics over them:
  - gate occurrence counts, differences and ratios
  - circuit depth (native or rewritten into a basis gate set)
  - raw execution counts from a local simulator or remote provider

Metric results render as fixed text blocks in the order the metric
flags were given; per-metric failures render inline without aborting
the rest of the queue.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "preferences file (default is $HOME/.config/qmet/prefs.json)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "qmet")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("json")
		viper.SetConfigName("prefs")
	}

	viper.SetEnvPrefix("QMET")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault(config.KeyAPIKey, "")
	viper.SetDefault(config.KeyProviderURL, "")
	viper.SetDefault(config.KeyDefaultInputFile, "")
	viper.SetDefault(config.KeyDefaultCompareFile, "")
	viper.SetDefault(config.KeyDefaultOutputFile, "")
	viper.SetDefault(config.KeyBackendInput, "")
	viper.SetDefault(config.KeyBackendCompare, "")
	viper.SetDefault(config.KeyRoutingInput, "")
	viper.SetDefault(config.KeyRoutingCompare, "")
	viper.SetDefault(config.KeyDefaultShots, 1024)

	// Missing prefs file is fine; it is created on first `config set`.
	_ = viper.ReadInConfig()
}
