package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	logFile               string
	themeOverride         string
	peerOverride          string
	emptyStart            bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "A terminal chat log with a simulated peer",
	Long: `Parley is a terminal chat log. Messages you send wait in a pending
section until the simulated peer delivers them; failed deliveries can be
retried, and a read marker follows what the peer has seen.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default ~/.parley/logs/parley.log)")

	rootCmd.Flags().StringVar(&themeOverride, "theme", "", "Theme for this run, without saving it")
	rootCmd.Flags().StringVar(&peerOverride, "peer", "", "Peer name for this run, without saving it")
	rootCmd.Flags().BoolVar(&emptyStart, "empty", false, "Start without the sample conversation")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

// openLog routes logging to the --log-file path or the default log file.
func openLog() error {
	path := logFile
	if path == "" {
		var err error
		if path, err = logger.DefaultLogPath(); err != nil {
			return err
		}
	}
	return logger.Init(path)
}

// applyOverrides applies the per-run flags to cfg without saving them.
func applyOverrides(cfg *config.Config) {
	if themeOverride != "" {
		cfg.SetTheme(themeOverride)
	}
	if peerOverride != "" {
		cfg.SetPeerName(peerOverride)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	applyOverrides(cfg)

	if err := openLog(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	// Ensure logger is closed on exit
	defer logger.Close()

	opts := app.DefaultOptions(version)
	opts.Empty = emptyStart

	// Create and run the app
	m := app.New(cfg, opts)
	defer m.Session().Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
