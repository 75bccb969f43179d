package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abelbrown/kiosk/internal/config"
	"github.com/abelbrown/kiosk/internal/fetch"
	"github.com/abelbrown/kiosk/internal/filter"
	"github.com/abelbrown/kiosk/internal/readstate"
	"github.com/abelbrown/kiosk/internal/ui"
	"github.com/abelbrown/kiosk/internal/view"
)

var version = "0.1.0"

// Global flags, bound on the root command.
var (
	flagFeedURL   string
	flagConfig    string
	flagEphemeral bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kiosk",
		Short: "Read your aggregated article feed in the terminal",
		Long: `Kiosk renders a pre-generated article feed document in the terminal:
a sidebar for filters, a list of articles, and a full-screen reader.
Read and saved marks persist across sessions.

The feed URL and other settings live in ~/.kiosk/config.json and can be
overridden with KIOSK_* environment variables or flags.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.SetVersionTemplate("kiosk version {{.Version}}\n")

	root.PersistentFlags().StringVar(&flagFeedURL, "feed-url", "", "feed document URL (overrides config)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.kiosk/config.json)")
	root.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep read and saved marks in memory only")

	root.AddCommand(newListCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newResetCmd())

	return root
}

// runTUI wires the full stack and blocks until the user quits.
func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLog := setupLogging(cfg, false)
	defer closeLog()

	if flagConfig == "" {
		ensureConfigFile()
	}

	st := openStore(cfg)
	defer st.Close()

	tracker := readstate.New(st)
	loader := fetch.NewLoader(cfg.FeedURL, cfg.Timeout())
	vm := view.New(loader, tracker, nil)
	applyConfigSelection(vm, cfg)

	log.WithField("url", cfg.FeedURL).Info("starting")

	app := ui.NewApp(vm, cfg.SidebarSources, cfg.SidebarCategories)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// applyConfigSelection seeds the view from the configured defaults. A bad
// value falls back to the built-in selection rather than failing startup.
func applyConfigSelection(vm *view.Model, cfg *config.Config) {
	if m, err := filter.ParseMode(cfg.DefaultFilter); err == nil {
		vm.SetMode(m)
	} else {
		log.WithError(err).Warn("ignoring configured filter")
	}
	if s, err := filter.ParseSort(cfg.DefaultSort); err == nil {
		vm.SetSort(s)
	} else {
		log.WithError(err).Warn("ignoring configured sort")
	}
}
