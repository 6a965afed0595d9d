package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/fleetdash/pkg/config"
	"github.com/vanderheijden86/fleetdash/pkg/debug"
	"github.com/vanderheijden86/fleetdash/pkg/export"
	"github.com/vanderheijden86/fleetdash/pkg/loader"
	"github.com/vanderheijden86/fleetdash/pkg/metrics"
	"github.com/vanderheijden86/fleetdash/pkg/ui"
	"github.com/vanderheijden86/fleetdash/pkg/version"
	"github.com/vanderheijden86/fleetdash/pkg/watcher"
)

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

type options struct {
	configPath   string
	scenarioPath string
	layout       string
	noWatch      bool
	debugLog     string
	export       string
	exportDir    string
	version      bool
	help         bool
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("fleetdash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/fleetdash/config.yaml)")
	fs.StringVar(&o.scenarioPath, "scenario", "", "Scenario file, YAML or JSON (default $"+loader.ScenarioEnvVar+" or the built-in scenario)")
	fs.StringVar(&o.layout, "layout", "", "Slide-over layout: pills or sliders")
	fs.BoolVar(&o.noWatch, "no-watch", false, "Do not reload the scenario when it changes on disk")
	fs.StringVar(&o.debugLog, "debug-log", "", "Write debug logs to file")
	fs.StringVar(&o.export, "export", "", "Export the scenario and exit; comma-separated formats (json,svg,png,sqlite,all)")
	fs.StringVar(&o.exportDir, "export-dir", "", "Directory for --export (default from config)")
	fs.BoolVar(&o.version, "version", false, "Show version")
	fs.BoolVar(&o.help, "help", false, "Show help")
	err := fs.Parse(args)
	return o, fs, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.help {
		fmt.Fprintln(stdout, "Usage: fleetdash [options]")
		fmt.Fprintln(stdout, "\nA terminal dashboard for fleet and charging scenarios.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if opts.version {
		fmt.Fprintf(stdout, "fleetdash %s\n", version.Full())
		return 0
	}

	if opts.debugLog != "" {
		f, err := tea.LogToFile(opts.debugLog, "fleetdash")
		if err != nil {
			fmt.Fprintf(stderr, "Could not open debug log: %v\n", err)
			return 1
		}
		defer f.Close()
		debug.SetOutput(f)
		debug.SetEnabled(true)
		defer logTimings()
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		if opts.configPath != "" {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
		// Non-fatal: continue with defaults
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	if opts.layout != "" {
		l, err := config.ParseLayout(opts.layout)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		cfg.UI.Layout = string(l)
	}

	path := opts.scenarioPath
	if path == "" {
		path = cfg.Data.ScenarioPath
	}
	path = loader.ResolvePath(path)

	sc, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading scenario: %v\n", err)
		return 1
	}
	debug.Log("main: loaded scenario %q from %q", sc.Title, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.export != "" {
		dir := opts.exportDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		formats, err := export.ParseFormats(strings.Split(opts.export, ","))
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
		paths, err := export.ExportAll(ctx, export.Options{
			Dir:      dir,
			Formats:  formats,
			Scenario: sc,
			Now:      time.Now(),
		})
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return 1
		}
		for _, p := range paths {
			fmt.Fprintln(stdout, p)
		}
		return 0
	}

	m := ui.NewModel(sc).WithConfig(cfg).WithContext(ctx)
	defer m.Stop()

	if !isTerminal() {
		// Piped or redirected: print one frame and exit.
		fmt.Fprintln(stdout, m.View())
		return 0
	}

	if path != "" {
		if cfg.Data.Watch && !opts.noWatch {
			w, err := startWatcher(ctx, path)
			if err != nil {
				fmt.Fprintf(stderr, "Warning: live reload disabled: %v\n", err)
				m = m.WithScenarioPath(path)
			} else {
				m = m.WithWatcher(w, path)
			}
		} else {
			m = m.WithScenarioPath(path)
		}
	}

	if err := runTUIProgram(m, cfg.UI.Mouse); err != nil {
		fmt.Fprintf(stderr, "Error running fleetdash: %v\n", err)
		return 1
	}
	return 0
}

// logTimings writes the collected timing metrics to the debug log.
func logTimings() {
	for _, s := range metrics.AllTimingStats() {
		debug.Log("metrics: %s count=%d avg=%.2fms max=%.2fms", s.Name, s.Count, s.AvgMs, s.MaxMs)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func startWatcher(ctx context.Context, path string) (*watcher.Watcher, error) {
	w, err := watcher.New(path,
		watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func runTUIProgram(m ui.Model, mouse bool) error {
	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set FLEETDASH_TUI_AUTOCLOSE_MS.
	if d, ok := autoCloseDelay(); ok {
		go func() {
			timer := time.NewTimer(d)
			defer timer.Stop()

			select {
			case <-runDone:
				return
			case <-timer.C:
			}

			p.Quit()

			select {
			case <-runDone:
				return
			case <-time.After(2 * time.Second):
			}

			p.Kill()
		}()
	}

	final, err := p.Run()
	if fm, ok := final.(ui.Model); ok {
		fm.Stop()
	}
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

func autoCloseDelay() (time.Duration, bool) {
	v := os.Getenv("FLEETDASH_TUI_AUTOCLOSE_MS")
	if v == "" {
		return 0, false
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
