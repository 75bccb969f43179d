package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/abelbrown/kiosk/internal/config"
	"github.com/abelbrown/kiosk/internal/fetch"
	"github.com/abelbrown/kiosk/internal/filter"
	"github.com/abelbrown/kiosk/internal/index"
	"github.com/abelbrown/kiosk/internal/kv"
	"github.com/abelbrown/kiosk/internal/readstate"
	"github.com/abelbrown/kiosk/internal/view"
)

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagFeedURL != "" {
		cfg.FeedURL = flagFeedURL
	}
	return cfg, nil
}

// ensureConfigFile writes the defaults to the standard location on first
// run, giving the user a file to edit. Failures are logged and ignored.
func ensureConfigFile() {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return
	}
	if err := config.DefaultConfig().SaveTo(path); err != nil {
		log.WithError(err).Warn("write default config failed")
	}
}

// openStore opens the read-state database. With --ephemeral, or when the
// database cannot be opened, marks live in memory for this run only.
func openStore(cfg *config.Config) kv.Store {
	if flagEphemeral {
		return kv.NewMemory()
	}
	if err := os.MkdirAll(cfg.ResolvedDataDir(), 0755); err != nil {
		log.WithError(err).Warn("create data directory failed, read state will not persist")
		return kv.NewMemory()
	}
	st, err := kv.OpenSQLite(cfg.DBPath())
	if err != nil {
		log.WithError(err).Warn("open database failed, read state will not persist")
		return kv.NewMemory()
	}
	return st
}

// setupLogging configures logrus. The TUI writes JSON lines to
// <data-dir>/kiosk.log so the terminal stays clean; headless commands log
// warnings and errors to stderr. The returned func closes the log file.
func setupLogging(cfg *config.Config, stderr bool) func() {
	if stderr {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.WarnLevel)
		return func() {}
	}

	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if err := os.MkdirAll(cfg.ResolvedDataDir(), 0755); err == nil {
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err == nil {
			log.SetOutput(f)
			return func() { f.Close() }
		}
	}
	log.SetOutput(io.Discard)
	return func() {}
}

// loadView fetches the feed once and returns a ready view model. Headless
// commands share the load path the TUI uses.
func loadView(cfg *config.Config, st kv.Store) (*view.Model, *readstate.Tracker, error) {
	tracker := readstate.New(st)
	loader := fetch.NewLoader(cfg.FeedURL, cfg.Timeout())
	vm := view.New(loader, tracker, nil)

	vm.BeginLoad()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()
	doc, err := loader.Load(ctx)
	vm.ApplyLoad(doc, err)

	if vm.State() == view.StateError {
		return nil, nil, fmt.Errorf("load feed: %w", vm.Err())
	}
	return vm, tracker, nil
}

// resolveSource matches a --source value against the loaded index, by feed
// id first and then by display name.
func resolveSource(idx *index.Index, raw string) (filter.SourceRef, error) {
	for _, b := range idx.AllSources() {
		if string(b.ID) == raw {
			return filter.SourceRef{Type: b.Type, ID: b.ID}, nil
		}
	}
	for _, b := range idx.AllSources() {
		if strings.EqualFold(b.Name, raw) {
			return filter.SourceRef{Type: b.Type, ID: b.ID}, nil
		}
	}
	return filter.SourceRef{}, fmt.Errorf("unknown source %q", raw)
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
