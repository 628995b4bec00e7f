package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/plus3/prepositions/host"
	"github.com/plus3/prepositions/internal/config"
	"github.com/plus3/prepositions/internal/logger"
	"github.com/plus3/prepositions/internal/preset"
	"github.com/plus3/prepositions/sketch"
	_ "github.com/plus3/prepositions/sketch/catalog"
)

type options struct {
	sketch     string
	variant    string
	list       bool
	headless   bool
	hz         int
	ticks      uint64
	taps       host.TapList
	scale      float64
	presetDir  string
	configPath string
	logLevel   string
	overlay    bool

	// set holds the names of the flags given on the command line.
	set map[string]bool
}

func parseFlags(args []string, errOut io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("prepositions", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&opts.sketch, "sketch", "", "Preposition to show, e.g. between.")
	fs.StringVar(&opts.variant, "variant", "", "Variant of the preposition (default: the first one).")
	fs.BoolVar(&opts.list, "list", false, "List every sketch and exit.")
	fs.BoolVar(&opts.headless, "headless", false, "Run without a window.")
	fs.IntVar(&opts.hz, "hz", 60, "Tick rate in headless mode.")
	fs.Uint64Var(&opts.ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run until interrupted).")
	fs.Var(&opts.taps, "tap", "Tap at x,y in headless mode; repeat for more taps.")
	fs.Float64Var(&opts.scale, "scale", 0, "Window scale factor.")
	fs.StringVar(&opts.presetDir, "preset-dir", "", "Directory of preset JSON files.")
	fs.StringVar(&opts.configPath, "config", "", "Settings file (default: $XDG_CONFIG_HOME/prepositions/settings.json).")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error.")
	fs.BoolVar(&opts.overlay, "overlay", false, "Show the debug overlay at startup (Tab toggles it).")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// apply overrides settings with the flags given on the command line
func (o *options) apply(s *config.Settings) {
	if o.set["sketch"] {
		s.Sketch = o.sketch
		s.Variant = ""
	}
	if o.set["variant"] {
		s.Variant = o.variant
	}
	if o.set["scale"] {
		s.Scale = o.scale
	}
	if o.set["preset-dir"] {
		s.PresetDir = o.presetDir
	}
	if o.set["log-level"] {
		s.LogLevel = o.logLevel
	}
	if o.set["overlay"] {
		s.ShowOverlay = o.overlay
	}
}

func loadSettings(opts *options, log *logger.Logger) (*config.Settings, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.GetSettingsPath(); err != nil {
			return nil, fmt.Errorf("failed to find settings path: %w", err)
		}
	}
	configLog := log.WithPrefix("config")
	settings, err := config.LoadSettings(path, configLog)
	if err != nil {
		return nil, err
	}
	opts.apply(settings)
	settings.Validate(configLog)
	return settings, nil
}

func newLauncher(settings *config.Settings, log *logger.Logger) (*host.Launcher, error) {
	launcher := &host.Launcher{Log: log.WithPrefix("sketch")}
	if settings.PresetDir != "" {
		presets, err := preset.LoadDir(settings.PresetDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}
		log.Info("loaded %d presets from %s", len(presets), settings.PresetDir)
		launcher.Presets = presets
	}
	if settings.PathScript != "" {
		src, err := os.ReadFile(settings.PathScript)
		if err != nil {
			return nil, fmt.Errorf("failed to read path script: %w", err)
		}
		launcher.Script = string(src)
	}
	return launcher, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := logger.LevelInfo
	if opts.logLevel != "" {
		if level, err = logger.ParseLevel(opts.logLevel); err != nil {
			return err
		}
	}
	log := logger.New(stderr, level, "")

	settings, err := loadSettings(opts, log)
	if err != nil {
		return err
	}
	if !opts.set["log-level"] {
		if level, err := logger.ParseLevel(settings.LogLevel); err == nil {
			log = logger.New(stderr, level, "")
		}
	}

	launcher, err := newLauncher(settings, log)
	if err != nil {
		return err
	}

	if opts.list {
		tuned := map[string]bool{}
		for _, p := range launcher.Presets {
			if def, err := p.Definition(); err == nil {
				tuned[def.Name()] = true
			}
		}
		printCatalog(stdout, tuned)
		return nil
	}

	def, err := sketch.Lookup(settings.Sketch, settings.Variant)
	if err != nil {
		return err
	}

	if opts.headless {
		done := log.Step("headless " + def.Name())
		defer done()
		cfg := host.HeadlessConfig{Hz: opts.hz, Ticks: opts.ticks, Taps: opts.taps}
		_, err := host.RunHeadless(ctx, launcher, def, cfg, log.WithPrefix("headless"))
		return err
	}

	window, err := host.NewWindow(launcher, def, host.NewOverlay(settings.ShowOverlay),
		host.WindowConfig{Scale: settings.Scale, TPS: settings.TPS}, log.WithPrefix("window"))
	if err != nil {
		return err
	}
	return window.Run()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
