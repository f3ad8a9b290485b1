package swap

import (
	"errors"
	"fmt"

	"github.com/1broseidon/screenswap/internal/platform"
	"github.com/rs/zerolog"
)

// ErrNoMover is returned by Run when the engine has no Mover outside a dry run.
var ErrNoMover = errors.New("swap engine has no mover")

// Mover applies geometry changes to live windows. platform.Backend satisfies it.
type Mover interface {
	SetPosition(id platform.WindowID, x, y int) error
	SetPlacement(id platform.WindowID, p platform.Placement) error
}

// Move is the planned translation of one window from one screen to another.
type Move struct {
	Window    platform.Window
	Direction Direction
	From      Screen
	To        Screen
	// Offset is subtracted from every horizontal coordinate.
	Offset int
	// Bounds and Placement are the window's geometry after the move.
	Bounds    platform.Rect
	Placement platform.Placement
}

// NewLeft is the left edge the window ends up at.
func (m Move) NewLeft() int {
	return m.Bounds.Left
}

// Plan computes the geometry for moving a window from one screen to the
// other. Only horizontal coordinates change.
func Plan(w platform.Window, from, to Screen) Move {
	offset := from.Left - to.Left

	placement := w.Placement
	placement.Normal.Left -= offset
	placement.Normal.Right -= offset

	return Move{
		Window:    w,
		From:      from,
		To:        to,
		Offset:    offset,
		Bounds:    w.Bounds.Translate(-offset),
		Placement: placement,
	}
}

// Operation names the platform call that failed.
type Operation string

const (
	OpSetPosition  Operation = "set-position"
	OpSetPlacement Operation = "set-placement"
)

// Failure records a platform call that failed for one window.
type Failure struct {
	Move Move
	Op   Operation
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %q: %v", f.Op, f.Move.Window.Title, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarizes one run.
type Report struct {
	// Moved holds windows whose moves fully succeeded (or were planned, in a dry run).
	Moved []Move
	// Untouched holds windows that were mainly on neither screen.
	Untouched []platform.Window
	Failed    []Failure
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	Mover  Mover
	Logger zerolog.Logger
	// DryRun plans and reports moves without calling the Mover.
	DryRun bool
}

// Engine swaps windows between two screens.
type Engine struct {
	mover  Mover
	logger zerolog.Logger
	dryRun bool
}

// NewEngine creates an engine. A nil Mover is only valid for dry runs.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		mover:  cfg.Mover,
		logger: cfg.Logger,
		dryRun: cfg.DryRun,
	}
}

// Run processes each window once, in order. A window mainly on the first
// screen moves to the second and vice versa. Per-window failures are logged
// and collected; they never stop the run. Run only returns an error when the
// screens themselves are invalid.
func (e *Engine) Run(windows []platform.Window, first, second Screen) (Report, error) {
	if err := ValidatePair(first, second); err != nil {
		return Report{}, err
	}
	if e.mover == nil && !e.dryRun {
		return Report{}, ErrNoMover
	}

	var report Report
	for _, w := range windows {
		var mv Move
		switch Classify(w.Bounds, first, second) {
		case ToSecond:
			mv = Plan(w, first, second)
			mv.Direction = ToSecond
		case ToFirst:
			mv = Plan(w, second, first)
			mv.Direction = ToFirst
		default:
			e.logger.Debug().Str("title", w.Title).Int("left", w.Bounds.Left).Int("right", w.Bounds.Right).Msg("window not mainly on either screen")
			report.Untouched = append(report.Untouched, w)
			continue
		}

		failures := e.apply(mv)
		if len(failures) > 0 {
			report.Failed = append(report.Failed, failures...)
			continue
		}
		report.Moved = append(report.Moved, mv)
	}
	return report, nil
}

// apply performs the platform calls for a planned move. Maximized windows are
// repositioned explicitly first since updating their placement alone leaves
// them on the original screen. The placement is committed for every window so
// a later restore lands on the destination screen.
func (e *Engine) apply(mv Move) []Failure {
	w := mv.Window
	log := e.logger.With().
		Str("title", w.Title).
		Str("direction", mv.Direction.String()).
		Int("offset", mv.Offset).
		Int("new_left", mv.NewLeft()).
		Bool("maximized", w.Placement.Maximized()).
		Logger()

	if e.dryRun {
		log.Info().Msg("would move window")
		return nil
	}

	var failures []Failure
	if w.Placement.Maximized() {
		if err := e.mover.SetPosition(w.ID, mv.NewLeft(), w.Bounds.Top); err != nil {
			log.Error().Err(err).Msgf("Could not reposition maximized window %q", w.Title)
			failures = append(failures, Failure{Move: mv, Op: OpSetPosition, Err: err})
		}
	}

	if err := e.mover.SetPlacement(w.ID, mv.Placement); err != nil {
		log.Error().Err(err).Msgf("Could not place window %q", w.Title)
		failures = append(failures, Failure{Move: mv, Op: OpSetPlacement, Err: err})
	}

	if len(failures) == 0 {
		log.Debug().Msg("moved window")
	}
	return failures
}
