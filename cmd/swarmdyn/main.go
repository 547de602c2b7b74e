package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/swarmdyn/internal/config"
	"github.com/san-kum/swarmdyn/internal/dynamo"
	"github.com/san-kum/swarmdyn/internal/scenario"
	"github.com/san-kum/swarmdyn/internal/storage"
	"github.com/san-kum/swarmdyn/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	dataDir    string
	configFile string
	saveRun    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "swarmdyn",
		Short: "multi-agent dynamics lab for decentralized trajectory optimization",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".swarmdyn", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario yaml file")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "roll out a scenario and plot agent trajectories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save run to data directory")

	linearizeCmd := &cobra.Command{
		Use:   "linearize [preset]",
		Short: "print the joint discrete-time jacobians at the initial state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLinearize,
	}

	splitCmd := &cobra.Command{
		Use:   "split [preset]",
		Short: "decompose the roster along the scenario's interaction graph",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSplit,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [preset]",
		Short: "live view of a rolling scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, linearizeCmd, splitCmd, watchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScenario(args []string) (*config.Scenario, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) > 0 {
		cfg, ok := config.Presets[args[0]]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (try 'swarmdyn presets')", args[0])
		}
		return cfg, nil
	}
	return config.Default(), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	reg := scenario.NewRegistry()
	joint, x0, us, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	result, err := scenario.Rollout(context.Background(), joint, x0, us,
		scenario.NewControlEffort(), scenario.NewPathLength())
	if err != nil {
		return err
	}

	plotTrajectories(joint, result)
	printSummary(cfg, joint, result)

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		agents := make([]string, len(joint.Submodels()))
		for i, sub := range joint.Submodels() {
			agents[i] = sub.String()
		}
		runID, err := store.Save(cfg.Name, cfg.Dt, agents, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", runID)
	}
	return nil
}

func plotTrajectories(joint *dynamo.MultiModel, result *scenario.Result) {
	series := make([][]float64, len(joint.Submodels()))
	for i := range series {
		series[i] = make([]float64, len(result.States))
	}

	for t, x := range result.States {
		xs, _, err := joint.Partition(x, make(dynamo.Control, joint.ControlDim()))
		if err != nil {
			return
		}
		for i, xi := range xs {
			series[i][t] = xi[0]
		}
	}

	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(14),
		asciigraph.Caption("agent x-position over time"),
	))
}

func printSummary(cfg *config.Scenario, joint *dynamo.MultiModel, result *scenario.Result) {
	final := result.States[len(result.States)-1]
	xs, _, err := joint.Partition(final, make(dynamo.Control, joint.ControlDim()))
	if err != nil {
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tMODEL\tFINAL STATE")
	for i, sub := range joint.Submodels() {
		fmt.Fprintf(w, "%d\t%s\t%.3f\n", sub.ID(), cfg.Agents[i].Model, xs[i])
	}
	w.Flush()

	keys := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %.4f\n", k, result.Metrics[k])
	}
}

func runLinearize(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	reg := scenario.NewRegistry()
	joint, x0, us, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	A, B, err := dynamo.Linearize(joint, x0, us[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", joint)
	fmt.Printf("A =\n%v\n\n", mat.Formatted(A, mat.Squeeze()))
	fmt.Printf("B =\n%v\n", mat.Formatted(B, mat.Squeeze()))
	return nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}
	if len(cfg.Graph) == 0 {
		return fmt.Errorf("scenario %q has no interaction graph", cfg.Name)
	}

	reg := scenario.NewRegistry()
	joint, _, _, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	subs, err := joint.Split(dynamo.Graph(cfg.Graph))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROBLEM\tAGENTS\tN_X\tN_U")
	for i, problem := range dynamo.Graph(cfg.Graph).Problems() {
		fmt.Fprintf(w, "%d\t%v\t%d\t%d\n", problem, subs[i].IDs(), subs[i].StateDim(), subs[i].ControlDim())
	}
	return w.Flush()
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	reg := scenario.NewRegistry()
	joint, x0, us, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(cfg.Name, joint, x0, us), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tAGENTS\tDT\tHORIZON")
	for _, name := range names {
		cfg := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%g\t%d\n", name, len(cfg.Agents), cfg.Dt, cfg.Horizon)
	}
	return w.Flush()
}
