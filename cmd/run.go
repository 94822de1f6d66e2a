package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qmetlab/qmet/internal/backend"
	"github.com/qmetlab/qmet/internal/circuit"
	"github.com/qmetlab/qmet/internal/config"
	"github.com/qmetlab/qmet/internal/ref"
	"github.com/qmetlab/qmet/internal/report"
	"github.com/qmetlab/qmet/internal/ui"
	"github.com/spf13/cobra"
)

var (
	runInputFile      string
	runCompareFile    string
	runOutputFile     string
	runBackendInput   string
	runBackendCompare string
	runRoutingInput   string
	runRoutingCompare string
	runShots          int
	runReadoutError   float64
	runBasisInput     []string
	runBasisCompare   []string
	runShowBackends   bool

	// Metric flags are registered so parsing and --help work, but the
	// metric queue is built from runArgv so requests keep the order
	// their flags appeared in.
	runCountGates  []string
	runDiffGates   []string
	runRatioGates  []string
	runCircuitDep  bool
	runDiffDep     bool
	runRatioDep    bool
	runRaw         bool
	runArgv        []string
	runOut         io.Writer = os.Stdout
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the metric queue against one or two circuits",
	Long: `Load the input circuit (and optionally a compare circuit), check the
requested backends against the available catalog, then evaluate every
metric flag in the order given and print or write the report.

Examples:
  qmet run -i bell.qasm --circuit-depth --count-gate cx
  qmet run -i a.qasm -c b.qasm -b aer_simulator --diff-gate cx --ratio-depth
  qmet run -i a.qasm -b statevector --raw --shots 4096 -o report.txt`,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		runArgv = os.Args[1:]
		return runRun(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runInputFile, "input-file", "i", "", "input circuit file (OpenQASM 2.0)")
	runCmd.Flags().StringVarP(&runCompareFile, "compare-file", "c", "", "compare circuit file")
	runCmd.Flags().StringVarP(&runOutputFile, "output-file", "o", "", "write the report to a file instead of stdout")
	runCmd.Flags().StringVarP(&runBackendInput, "backend", "b", "", "backend for the input circuit")
	runCmd.Flags().StringVar(&runBackendCompare, "backend-compare", "", "backend for the compare circuit")
	runCmd.Flags().StringVarP(&runRoutingInput, "routing", "r", "", "routing method for the input run")
	runCmd.Flags().StringVar(&runRoutingCompare, "routing-compare", "", "routing method for the compare run")
	runCmd.Flags().IntVar(&runShots, "shots", 0, "shot count for --raw (default from preferences)")
	runCmd.Flags().Float64Var(&runReadoutError, "readout-error", 0, "per-bit readout flip probability for --raw")
	runCmd.Flags().StringSliceVar(&runBasisInput, "basis-input", nil, "basis gate set for input-circuit depth metrics")
	runCmd.Flags().StringSliceVar(&runBasisCompare, "basis-compare", nil, "basis gate set for compare-circuit depth metrics")
	runCmd.Flags().BoolVar(&runShowBackends, "available-backends", false, "print the backend catalog during the run")

	runCmd.Flags().StringArrayVar(&runCountGates, "count-gate", nil, "count occurrences of a gate")
	runCmd.Flags().StringArrayVar(&runDiffGates, "diff-gate", nil, "gate count difference, compare minus input")
	runCmd.Flags().StringArrayVar(&runRatioGates, "ratio-gate", nil, "gate count ratio, compare over input")
	runCmd.Flags().BoolVar(&runCircuitDep, "circuit-depth", false, "circuit depth per bound circuit")
	runCmd.Flags().BoolVar(&runDiffDep, "diff-depth", false, "depth difference, compare minus input")
	runCmd.Flags().BoolVar(&runRatioDep, "ratio-depth", false, "depth ratio, compare over input")
	runCmd.Flags().BoolVar(&runRaw, "raw", false, "raw execution counts on the bound backends")
}

// runSettings is the explicit configuration state threaded through
// queue construction and draining: one named reference per logical slot.
type runSettings struct {
	apiKey      ref.Ref[string]
	inputFile   ref.Ref[string]
	compareFile ref.Ref[string]
	outputFile  ref.Ref[string]

	backendInput   ref.Ref[string]
	backendCompare ref.Ref[string]
	routingInput   ref.Ref[string]
	routingCompare ref.Ref[string]

	inputCircuit   ref.Ref[*circuit.Circuit]
	compareCircuit ref.Ref[*circuit.Circuit]

	backendInputHandle   ref.Ref[backend.Backend]
	backendCompareHandle ref.Ref[backend.Backend]

	shots int
}

// newRunSettings seeds every slot from the persisted preferences.
func newRunSettings() *runSettings {
	s := &runSettings{}
	s.apiKey.Set(config.GetAPIKey(), "API key")
	s.inputFile.Set(config.GetDefaultInputFile(), "input file")
	s.compareFile.Set(config.GetDefaultCompareFile(), "compare file")
	s.outputFile.Set(config.GetDefaultOutputFile(), "output file")
	s.backendInput.Set(config.GetBackendInput(), "input backend")
	s.backendCompare.Set(config.GetBackendCompare(), "compare backend")
	s.routingInput.Set(config.GetRoutingInput(), "input routing")
	s.routingCompare.Set(config.GetRoutingCompare(), "compare routing")
	s.shots = config.GetDefaultShots()
	return s
}

// applyRunFlags overrides preference-seeded slots with any flag that
// was given. The empty string is the unset sentinel throughout.
func applyRunFlags(s *runSettings) {
	if runInputFile != "" {
		s.inputFile.Set(runInputFile, "input file")
	}
	if runCompareFile != "" {
		s.compareFile.Set(runCompareFile, "compare file")
	}
	if runOutputFile != "" {
		s.outputFile.Set(runOutputFile, "output file")
	}
	if runBackendInput != "" {
		s.backendInput.Set(runBackendInput, "input backend")
	}
	if runBackendCompare != "" {
		s.backendCompare.Set(runBackendCompare, "compare backend")
	}
	if runRoutingInput != "" {
		s.routingInput.Set(runRoutingInput, "input routing")
	}
	if runRoutingCompare != "" {
		s.routingCompare.Set(runRoutingCompare, "compare routing")
	}
	if runShots > 0 {
		s.shots = runShots
	}
	if s.shots < 1 {
		s.shots = 1024
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s := newRunSettings()
	applyRunFlags(s)

	for _, routing := range []string{s.routingInput.Get(), s.routingCompare.Get()} {
		if !circuit.ValidRouting(routing) {
			ui.Warnf("Unknown routing method %q. Passing it through unchanged.", routing)
		}
	}

	queue := buildQueue(runArgv, s)

	compareExists := false
	if !s.compareFile.IsEmpty() {
		if s.backendCompare.IsEmpty() {
			ui.Warnf("You've specified a compare file but no compare backend. Using input backend...")
			s.backendCompare.Set(s.backendInput.Get(), "compare backend")
		}
		compareExists = true
	}

	contMetrics := true
	if s.inputFile.IsEmpty() {
		ui.Warnf("No input file has been set.")
		contMetrics = false
	}
	if s.backendInput.IsEmpty() {
		ui.Warnf("No backend has been set.")
		contMetrics = false
	}

	remoteWanted := remoteRequested(s.backendInput.Get()) || remoteRequested(s.backendCompare.Get())

	var provider *backend.Provider
	if remoteWanted && !s.apiKey.IsEmpty() {
		url := config.GetProviderURL()
		if backend.IsAvailable(url) {
			provider = backend.NewProvider(url, s.apiKey.Get())
		} else {
			ui.Warnf("Provider endpoint is not reachable. Using local simulators only.")
		}
	}

	catalog := backend.Catalog(ctx, provider)

	if runShowBackends {
		printCatalog(runOut, catalog)
	}

	if !contMetrics {
		return nil
	}

	if !backend.Available(catalog, s.backendInput.Get(), s.backendCompare.Get()) {
		ui.Errorf("One or both of your selected backends are not available.")
		if remoteWanted && s.apiKey.IsEmpty() {
			ui.Errorf("Your provider API key has not been set.")
		}
		printCatalog(runOut, catalog)
		return nil
	}

	beInput, err := backend.Resolve(s.backendInput.Get(), s.routingInput.Get(), provider)
	if err != nil {
		return err
	}
	s.backendInputHandle.Set(beInput, s.backendInput.Get())
	if compareExists {
		beCompare, err := backend.Resolve(s.backendCompare.Get(), s.routingCompare.Get(), provider)
		if err != nil {
			return err
		}
		s.backendCompareHandle.Set(beCompare, s.backendCompare.Get())
	}

	input, err := circuit.Load(s.inputFile.Get())
	if err != nil {
		return err
	}
	s.inputCircuit.Set(input, s.inputFile.Get())
	if compareExists {
		compare, err := circuit.Load(s.compareFile.Get())
		if err != nil {
			return err
		}
		s.compareCircuit.Set(compare, s.compareFile.Get())
	}

	results := queue.Drain(ctx)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Test Files: %s %s\n", s.inputFile.Get(), s.compareFile.Get())
	fmt.Fprintf(&sb, "Device: %s\n", s.backendInput.Get())
	sb.WriteString(results)
	out := sb.String()

	if !s.outputFile.IsEmpty() {
		if err := os.WriteFile(s.outputFile.Get(), []byte(out), 0644); err != nil {
			fmt.Fprintln(runOut, "Error opening specified output file. Printing to console...")
			fmt.Fprint(runOut, out)
		}
		return nil
	}
	fmt.Fprint(runOut, out)
	return nil
}

// buildQueue maps metric flags onto deferred requests, scanning the raw
// argument vector so requests keep command-line order. Tokens that do
// not name a metric fall through to the default no-op branch.
func buildQueue(argv []string, s *runSettings) *report.Queue {
	q := &report.Queue{}

	var noise *backend.NoiseModel
	if runReadoutError > 0 {
		noise = &backend.NoiseModel{ReadoutError: runReadoutError}
	}

	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if !strings.HasPrefix(tok, "--") {
			continue
		}
		name := strings.TrimPrefix(tok, "--")
		value := ""
		if idx := strings.Index(name, "="); idx >= 0 {
			name, value = name[:idx], name[idx+1:]
		}
		gateArg := func() string {
			if value != "" {
				return value
			}
			if i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
				i++
				return argv[i]
			}
			return ""
		}

		switch name {
		case "count-gate":
			q.Enqueue(report.Request{
				Kind: report.KindCountGate, Gate: gateArg(),
				Input: &s.inputCircuit, Compare: &s.compareCircuit,
			})
		case "diff-gate":
			q.Enqueue(report.Request{
				Kind: report.KindDiffGate, Gate: gateArg(),
				Input: &s.inputCircuit, Compare: &s.compareCircuit,
			})
		case "ratio-gate":
			q.Enqueue(report.Request{
				Kind: report.KindRatioGate, Gate: gateArg(),
				Input: &s.inputCircuit, Compare: &s.compareCircuit,
			})
		case "circuit-depth":
			q.Enqueue(report.Request{
				Kind: report.KindCircuitDepth,
				Input: &s.inputCircuit, Compare: &s.compareCircuit,
				BasisInput: runBasisInput, BasisCompare: runBasisCompare,
			})
		case "diff-depth":
			q.Enqueue(report.Request{
				Kind: report.KindDiffDepth,
				Input: &s.inputCircuit, Compare: &s.compareCircuit,
				BasisInput: runBasisInput, BasisCompare: runBasisCompare,
			})
		case "ratio-depth":
			q.Enqueue(report.Request{
				Kind: report.KindRatioDepth,
				Input: &s.inputCircuit, Compare: &s.compareCircuit,
				BasisInput: runBasisInput, BasisCompare: runBasisCompare,
			})
		case "raw":
			q.Enqueue(report.Request{
				Kind: report.KindRaw, Input: &s.inputCircuit,
				Backend: &s.backendInputHandle, Shots: s.shots, Noise: noise,
			})
			q.Enqueue(report.Request{
				Kind: report.KindRaw, Input: &s.compareCircuit,
				Backend: &s.backendCompareHandle, Shots: s.shots, Noise: noise,
			})
		default:
			// unrecognized instructions are ignored on purpose
		}
	}
	return q
}

// remoteRequested reports whether name requires the remote provider.
func remoteRequested(name string) bool {
	if name == "" {
		return false
	}
	for _, m := range backend.LocalMethods() {
		if m == name {
			return false
		}
	}
	return true
}

func printCatalog(w io.Writer, catalog []string) {
	fmt.Fprintln(w, "Available backends:")
	for _, name := range catalog {
		fmt.Fprintf(w, "\t%s\n", name)
	}
	fmt.Fprintln(w)
}
