package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/1broseidon/screenswap/internal/platform"
	"github.com/1broseidon/screenswap/internal/swap"
	"github.com/fatih/color"
)

type listEntry struct {
	ID        uintptr       `json:"id"`
	Title     string        `json:"title"`
	Class     string        `json:"class"`
	State     string        `json:"state"`
	Bounds    platform.Rect `json:"bounds"`
	Direction string        `json:"direction"`
}

func runList(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: screenswap list [--json] [--config PATH]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "List actionable windows and where a swap would send each one.")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output as JSON")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	s, err := openSession(*configPath, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer s.backend.Close()

	windows, err := s.snapshot()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	first, second, err := s.cfg.ResolveScreens(s.backend)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	entries := make([]listEntry, 0, len(windows))
	for _, w := range windows {
		entries = append(entries, listEntry{
			ID:        uintptr(w.ID),
			Title:     w.Title,
			Class:     w.Class,
			State:     w.Placement.ShowState.String(),
			Bounds:    w.Bounds,
			Direction: swap.Classify(w.Bounds, first, second).String(),
		})
	}

	if *jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "screens: first=%s second=%s\n", first, second)
	for _, e := range entries {
		directionColor(e.Direction).Fprintf(stdout, "%-10s", e.Direction)
		fmt.Fprintf(stdout, " %#-10x %-9s [%d,%d)  %q\n", e.ID, e.State, e.Bounds.Left, e.Bounds.Right, e.Title)
	}
	return 0
}

func directionColor(direction string) *color.Color {
	switch direction {
	case swap.ToSecond.String():
		return color.New(color.FgCyan)
	case swap.ToFirst.String():
		return color.New(color.FgMagenta)
	default:
		return color.New(color.Faint)
	}
}

func runScreens(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: screenswap screens [--config PATH]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Show the screen pair used for swapping and the attached displays.")
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/screenswap/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "screens takes no arguments")
		fs.Usage()
		return 2
	}

	s, err := openSession(*configPath, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer s.backend.Close()

	first, second, err := s.cfg.ResolveScreens(s.backend)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	source := "config"
	if s.cfg.DetectScreens {
		source = "detected"
	}
	fmt.Fprintf(stdout, "first:  %s (%s)\n", first, source)
	fmt.Fprintf(stdout, "second: %s (%s)\n", second, source)

	displays, err := s.backend.Displays()
	if err != nil {
		s.log.Warn().Err(err).Msg("Could not list displays")
		return 0
	}
	fmt.Fprintln(stdout, "displays:")
	for _, d := range displays {
		fmt.Fprintf(stdout, "  %-10s x=[%d,%d) y=[%d,%d)\n", d.Name, d.Bounds.Left, d.Bounds.Right, d.Bounds.Top, d.Bounds.Bottom)
	}
	return 0
}
