package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/demo"
	"github.com/zhubert/parley/internal/demo/scenarios"
)

var (
	demoOutput     string
	demoWidth      int
	demoHeight     int
	demoCaptureAll bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate demo recordings of parley",
	Long: `Scripted scenarios drive the real chat with a seeded peer and a fake
clock, so every recording comes out the same.

Available subcommands:
  list      - List available demo scenarios
  run       - Print every captured frame (for checking a scenario)
  play      - Replay a scenario in the terminal with its timing
  generate  - Generate a VHS tape that records "parley demo play"
  cast      - Generate an asciinema cast file`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available demo scenarios:")
		fmt.Fprintln(out)
		for _, s := range scenarios.All() {
			fmt.Fprintf(out, "  %-15s %s\n", s.Name, s.Description)
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Print every captured frame",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

var demoPlayCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Replay a scenario in the terminal with its timing",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoPlay,
}

var demoGenerateCmd = &cobra.Command{
	Use:   "generate <scenario>",
	Short: "Generate a VHS tape file for rendering",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDemoFile(cmd.OutOrStdout(), args[0], ".tape", writeTape)
	},
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Generate an asciinema cast file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDemoFile(cmd.OutOrStdout(), args[0], ".cast", writeCast)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{demoRunCmd, demoPlayCmd, demoGenerateCmd, demoCastCmd} {
		cmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file")
		cmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
		cmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
		cmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every step (for debugging)")
	}

	demoCmd.AddCommand(demoListCmd, demoRunCmd, demoPlayCmd, demoGenerateCmd, demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

func getScenario(name string) (*demo.Scenario, error) {
	scenario := scenarios.Get(name)
	if scenario == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'parley demo list' to see available scenarios", name)
	}

	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}

	return scenario, nil
}

// recordScenario looks up and runs a scenario.
func recordScenario(name string) (*demo.Scenario, []demo.Frame, error) {
	scenario, err := getScenario(name)
	if err != nil {
		return nil, nil, err
	}

	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll

	frames, err := demo.NewExecutor(execCfg).Run(scenario)
	if err != nil {
		return nil, nil, fmt.Errorf("error running scenario: %w", err)
	}
	return scenario, frames, nil
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	_, frames, err := recordScenario(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Captured %d frames (%v)\n", len(frames), demo.Duration(frames))
	for i, f := range frames {
		fmt.Fprintf(out, "\n=== Frame %d, step %d (delay: %v) ===\n", i, f.StepIndex, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(out, "Annotation: %s\n", f.Annotation)
		}
		fmt.Fprintln(out, f.Content)
	}
	return nil
}

func runDemoPlay(cmd *cobra.Command, args []string) error {
	_, frames, err := recordScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := demo.Play(ctx, cmd.OutOrStdout(), frames); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error playing scenario: %w", err)
	}
	return nil
}

// demoWriter renders frames into an output file at path.
type demoWriter func(w io.Writer, path, name string, scenario *demo.Scenario, frames []demo.Frame) (hint string, err error)

// writeDemoFile records a scenario and writes it with write. The file is
// --output, or the scenario name plus ext.
func writeDemoFile(out io.Writer, name, ext string, write demoWriter) error {
	scenario, frames, err := recordScenario(name)
	if err != nil {
		return err
	}

	path := demoOutput
	if path == "" {
		path = name + ext
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	hint, err := write(f, path, name, scenario, frames)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generated %s (%d frames, %v)\n", path, len(frames), demo.Duration(frames))
	fmt.Fprintln(out, hint)
	return nil
}

func writeTape(w io.Writer, path, name string, scenario *demo.Scenario, frames []demo.Frame) (string, error) {
	vhsCfg := demo.DefaultVHSConfig()
	vhsCfg.Output = strings.TrimSuffix(path, ".tape") + ".gif"
	vhsCfg.Width = scenario.Width
	vhsCfg.Height = scenario.Height
	vhsCfg.Command = vhsPlayCommand(name, scenario)

	if err := demo.GenerateVHSTape(w, frames, vhsCfg); err != nil {
		return "", fmt.Errorf("error generating VHS tape: %w", err)
	}
	return "Render with: vhs " + path, nil
}

func writeCast(w io.Writer, path, name string, scenario *demo.Scenario, frames []demo.Frame) (string, error) {
	if err := demo.GenerateASCIICast(w, frames, scenario.Width, scenario.Height); err != nil {
		return "", fmt.Errorf("error generating cast file: %w", err)
	}
	return "Play with: asciinema play " + path, nil
}

// vhsPlayCommand returns the command the tape types to replay the scenario.
func vhsPlayCommand(name string, scenario *demo.Scenario) string {
	return fmt.Sprintf("parley demo play %s -w %d -H %d", name, scenario.Width, scenario.Height)
}
