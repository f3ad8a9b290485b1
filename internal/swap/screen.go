// Package swap moves windows between two side-by-side screens.
//
// A window belongs to a screen when strictly more than half of its width lies
// inside the screen's horizontal span. Windows on the first screen move to the
// second and vice versa; everything else is left alone.
package swap

import (
	"errors"
	"fmt"

	"github.com/1broseidon/screenswap/internal/platform"
)

var (
	ErrInvalidScreen      = errors.New("invalid screen")
	ErrOverlappingScreens = errors.New("screens overlap")
)

// Screen is a horizontal span of the virtual desktop. Left is inclusive,
// Right is exclusive.
type Screen struct {
	Left  int `yaml:"left" json:"left"`
	Right int `yaml:"right" json:"right"`
}

// Width returns the horizontal extent of the screen.
func (s Screen) Width() int {
	return s.Right - s.Left
}

func (s Screen) String() string {
	return fmt.Sprintf("[%d,%d)", s.Left, s.Right)
}

// Validate checks that the screen has a positive width.
func (s Screen) Validate() error {
	if s.Right <= s.Left {
		return fmt.Errorf("%w: right (%d) must be greater than left (%d)", ErrInvalidScreen, s.Right, s.Left)
	}
	return nil
}

// ValidatePair checks both screens and that their spans do not overlap.
func ValidatePair(first, second Screen) error {
	if err := first.Validate(); err != nil {
		return fmt.Errorf("first screen: %w", err)
	}
	if err := second.Validate(); err != nil {
		return fmt.Errorf("second screen: %w", err)
	}
	if first.Left < second.Right && second.Left < first.Right {
		return fmt.Errorf("%w: %s and %s", ErrOverlappingScreens, first, second)
	}
	return nil
}

// ScreenFromDisplay converts a display's horizontal span into a Screen.
func ScreenFromDisplay(d platform.Display) Screen {
	return Screen{Left: d.Bounds.Left, Right: d.Bounds.Right}
}
