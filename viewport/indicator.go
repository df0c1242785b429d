package viewport

import (
	"math"

	"github.com/milk9111/lightswitch/common"
)

const (
	DefaultShownOpacity = 0.7
	defaultFadeRate     = 0.2
)

// Indicator is the "scroll down" hint. It hides while the footer is on
// screen and ignores clicks while hidden.
type Indicator struct {
	ShownOpacity float64
	// FadeRate is the fraction of the remaining distance covered per tick.
	FadeRate float64

	target      float64
	opacity     float64
	interactive bool
}

func NewIndicator(shownOpacity float64) *Indicator {
	return &Indicator{
		ShownOpacity: shownOpacity,
		FadeRate:     defaultFadeRate,
		target:       shownOpacity,
		opacity:      shownOpacity,
		interactive:  true,
	}
}

// SetFooterVisible applies a footer visibility report.
func (i *Indicator) SetFooterVisible(visible bool) {
	if visible {
		i.target = 0
		i.interactive = false
		return
	}
	i.target = i.ShownOpacity
	i.interactive = true
}

// Update eases the drawn opacity towards its target.
func (i *Indicator) Update() {
	rate := i.FadeRate
	if rate <= 0 || rate > 1 {
		rate = 1
	}
	next := float64(common.Lerp(float32(i.opacity), float32(i.target), float32(rate)))
	if math.Abs(next-i.target) < 0.005 {
		next = i.target
	}
	i.opacity = next
}

// Target is the opacity the indicator is heading to: 0 or ShownOpacity.
func (i *Indicator) Target() float64 {
	return i.target
}

func (i *Indicator) Opacity() float64 {
	return i.opacity
}

func (i *Indicator) Interactive() bool {
	return i.interactive
}
