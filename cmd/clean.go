package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

var (
	skipConfirm bool
	resetConfig bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and optionally reset the config",
	Long: `Removes parley's log files. With --config the config file is deleted
too, so the next run starts from the defaults.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&resetConfig, "config", false, "Also delete the config file")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin, os.Stdout)
}

// runCleanWithReader allows injecting the terminal for testing
func runCleanWithReader(input io.Reader, out io.Writer) error {
	configPath := ""
	if resetConfig {
		path, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("error finding config: %w", err)
		}
		if _, err := os.Stat(path); err == nil {
			configPath = path
		}
	}

	fmt.Fprintln(out, "This will clean:")
	fmt.Fprintln(out, "  - All log files in ~/.parley/logs")
	if configPath != "" {
		fmt.Fprintf(out, "  - The config file %s\n", configPath)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	// The open log file would be recreated on the next write
	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	configRemoved := false
	if configPath != "" {
		if err := os.Remove(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error removing config: %v\n", err)
		} else {
			configRemoved = true
		}
	}

	// Print results
	fmt.Fprintln(out)
	if logsCleared == 0 && !configRemoved {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}
	fmt.Fprintln(out, "Cleaned:")
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	if configRemoved {
		fmt.Fprintln(out, "  - config file removed")
	}

	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
