package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/screenswap/internal/config"
	"github.com/1broseidon/screenswap/internal/logger"
	"github.com/1broseidon/screenswap/internal/platform"
	"github.com/1broseidon/screenswap/internal/swap"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// newBackend is replaced in tests.
var newBackend = platform.New

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runSwap(nil, stdout, stderr)
	}

	switch args[0] {
	case "swap":
		return runSwap(args[1:], stdout, stderr)
	case "list":
		return runList(args[1:], stdout, stderr)
	case "screens":
		return runScreens(args[1:], stdout, stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMainUsage(stdout)
		return 0
	default:
		if strings.HasPrefix(args[0], "-") {
			return runSwap(args, stdout, stderr)
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: screenswap [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Without a command, swaps windows between the two configured screens.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  swap                Move windows on screen 1 to screen 2 and vice versa")
	fmt.Fprintln(w, "  list                List windows and where a swap would send them")
	fmt.Fprintln(w, "  screens             Show the screen pair and attached displays")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config init         Write the default configuration file")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'screenswap <command> --help' for command-specific options.")
}

// session bundles what every window command needs: config, logger and an
// open backend.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	backend platform.Backend
}

func openSession(configPath string, stderr io.Writer) (*session, error) {
	res, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	cfg := res.Config

	logOpts := cfg.LoggerOptions()
	logOpts.Writer = stderr
	logOpts.NoColor = !isTerminal(stderr)
	log := logger.New(logOpts)
	if res.File != "" {
		log.Debug().Str("path", res.File).Msg("configuration loaded")
	}

	backend, err := newBackend(cfg.BackendOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open window backend: %w", err)
	}
	return &session{cfg: cfg, log: log, backend: backend}, nil
}

// snapshot enumerates windows and logs the ones that could not be read.
func (s *session) snapshot() ([]platform.Window, error) {
	snap, err := s.backend.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}
	for _, skipped := range snap.Skipped {
		s.log.Warn().Err(skipped.Err).Msgf("Error enumerating window with handle %#x", uintptr(skipped.ID))
	}
	return snap.Windows, nil
}

func runSwap(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("swap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: screenswap swap [--dry-run] [--config PATH]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Move every window that is mainly on one screen to the other screen.")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	dryRun := fs.Bool("dry-run", false, "Report planned moves without moving anything")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "swap takes no arguments")
		fs.Usage()
		return 2
	}

	s, err := openSession(*configPath, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer s.backend.Close()

	elevated, err := s.backend.Elevated()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to query process elevation")
		return 1
	}
	if !elevated {
		s.log.Warn().Msg("Not elevated, continuing anyway. May not be able to swap some windows.")
	}

	windows, err := s.snapshot()
	if err != nil {
		s.log.Error().Err(err).Msg("Window enumeration failed")
		return 1
	}

	first, second, err := s.cfg.ResolveScreens(s.backend)
	if err != nil {
		s.log.Error().Err(err).Msg("Could not resolve screens")
		return 1
	}
	s.log.Debug().Stringer("first", first).Stringer("second", second).Int("windows", len(windows)).Msg("swapping screens")

	engine := swap.NewEngine(swap.EngineConfig{
		Mover:  s.backend,
		Logger: s.log,
		DryRun: *dryRun,
	})
	report, err := engine.Run(windows, first, second)
	if err != nil {
		s.log.Error().Err(err).Msg("Swap failed")
		return 1
	}

	printReport(stdout, report, *dryRun)
	return 0
}

func printReport(w io.Writer, report swap.Report, dryRun bool) {
	verb := "moved"
	if dryRun {
		verb = "would move"
	}
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, mv := range report.Moved {
		green.Fprintf(w, "%-10s", verb)
		fmt.Fprintf(w, " %s -> %s  left %d -> %d  %q\n", mv.From, mv.To, mv.Window.Bounds.Left, mv.NewLeft(), mv.Window.Title)
	}
	for _, f := range report.Failed {
		red.Fprintf(w, "%-10s", "failed")
		fmt.Fprintf(w, " %s  %q: %v\n", f.Op, f.Move.Window.Title, f.Err)
	}
	fmt.Fprintf(w, "%d %s, %d failed, %d untouched\n", len(report.Moved), verb, len(report.Failed), len(report.Untouched))
}

func loadConfig(path string) (*config.LoadResult, error) {
	if strings.TrimSpace(path) == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  screenswap config init [--path PATH] [--force]")
		fmt.Fprintln(stderr, "  screenswap config validate [--path PATH]")
		fmt.Fprintln(stderr, "  screenswap config print [--path PATH] [--defaults]")
		fmt.Fprintln(stderr, "  screenswap config explain [--path PATH] <yaml.path>")
		return 2
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("init", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
		force := fs.Bool("force", false, "Overwrite an existing config file")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}

		target := *path
		if strings.TrimSpace(target) == "" {
			p, err := config.DefaultConfigPath()
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			target = p
		}
		if _, err := os.Stat(target); err == nil && !*force {
			fmt.Fprintf(stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		}

		cfg := config.DefaultConfig()
		var err error
		if strings.TrimSpace(*path) == "" {
			err = cfg.Save()
		} else {
			err = cfg.SaveTo(target)
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target)
		return 0

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if res.File == "" {
			fmt.Fprintln(stdout, "OK (no config file, using defaults)")
		} else {
			fmt.Fprintf(stdout, "OK: %s\n", res.File)
		}
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
		defaults := fs.Bool("defaults", false, "Print built-in defaults only")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}

		cfg := config.DefaultConfig()
		if !*defaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			cfg = res.Config
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		stdout.Write(out)
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "explain requires <yaml.path>")
			return 2
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "%s: %v\n", fs.Arg(0), value)
		fmt.Fprintf(stdout, "source: %s\n", formatSource(src))
		return 0

	default:
		fmt.Fprintf(stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	if src.Kind == config.SourceFile && src.File != "" {
		return fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
	}
	return string(src.Kind)
}

