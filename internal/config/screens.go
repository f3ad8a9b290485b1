package config

import (
	"fmt"
	"sort"

	"github.com/1broseidon/screenswap/internal/platform"
	"github.com/1broseidon/screenswap/internal/swap"
)

// DisplaySource lists the displays attached to the virtual desktop.
type DisplaySource interface {
	Displays() ([]platform.Display, error)
}

// ResolveScreens returns the screen pair to swap between. With
// detect_screens enabled the two leftmost displays are used.
func (c *Config) ResolveScreens(src DisplaySource) (swap.Screen, swap.Screen, error) {
	if !c.DetectScreens {
		return c.Screens.First, c.Screens.Second, nil
	}

	displays, err := src.Displays()
	if err != nil {
		return swap.Screen{}, swap.Screen{}, fmt.Errorf("failed to list displays: %w", err)
	}
	if len(displays) < 2 {
		return swap.Screen{}, swap.Screen{}, fmt.Errorf("detect_screens needs at least 2 displays, found %d", len(displays))
	}

	sorted := append([]platform.Display(nil), displays...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Bounds.Left < sorted[j].Bounds.Left
	})

	first := swap.ScreenFromDisplay(sorted[0])
	second := swap.ScreenFromDisplay(sorted[1])
	if err := swap.ValidatePair(first, second); err != nil {
		return swap.Screen{}, swap.Screen{}, fmt.Errorf("detected displays %s and %s: %w", sorted[0].Name, sorted[1].Name, err)
	}
	return first, second, nil
}
