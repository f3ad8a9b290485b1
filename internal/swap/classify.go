package swap

import "github.com/1broseidon/screenswap/internal/platform"

// Direction is the outcome of classifying a window against two screens.
type Direction int

const (
	// Stay leaves the window where it is.
	Stay Direction = iota
	// ToSecond moves a window from the first screen to the second.
	ToSecond
	// ToFirst moves a window from the second screen to the first.
	ToFirst
)

func (d Direction) String() string {
	switch d {
	case ToSecond:
		return "to-second"
	case ToFirst:
		return "to-first"
	default:
		return "stay"
	}
}

// BelongsTo reports whether strictly more than half of the window's width
// lies within the screen. An exact 50% split does not count. Vertical
// position is ignored.
func BelongsTo(bounds platform.Rect, screen Screen) bool {
	overlap := min(bounds.Right, screen.Right) - max(bounds.Left, screen.Left)
	return overlap*2 > bounds.Width()
}

// Classify decides where a window should go. The first screen is checked
// first; for non-overlapping screens at most one check can succeed.
func Classify(bounds platform.Rect, first, second Screen) Direction {
	switch {
	case BelongsTo(bounds, first):
		return ToSecond
	case BelongsTo(bounds, second):
		return ToFirst
	default:
		return Stay
	}
}
