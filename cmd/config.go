package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit parley's settings",
	Long: `Opens a form to edit the theme, peer name, bubble colors, time layouts,
list settle delays and options. Changes are saved to ~/.parley/config.json.`,
	RunE: runConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// runSettingsForm runs the form interactively, replaced in tests.
var runSettingsForm = func(s *ui.Settings) error {
	return ui.NewSettingsForm(s).Run()
}

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	return editConfig(cfg, os.Stdout)
}

// editConfig runs the settings form over cfg and saves the result.
func editConfig(cfg *config.Config, out io.Writer) error {
	ui.SetThemeByName(cfg.GetTheme())

	settings := ui.SettingsFromConfig(cfg)
	if err := runSettingsForm(settings); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
		return fmt.Errorf("error running settings form: %w", err)
	}

	if err := settings.Apply(cfg); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	fmt.Fprintf(out, "Saved %s\n", cfg.Path())
	return nil
}
