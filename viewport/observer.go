package viewport

// Region is a vertical band of the page in content coordinates.
type Region struct {
	Top    float64
	Height float64
}

func (r Region) Bottom() float64 {
	return r.Top + r.Height
}

// IntersectionRatio returns the fraction of target inside the visible band
// [scroll, scroll+viewHeight].
func IntersectionRatio(target Region, scroll, viewHeight float64) float64 {
	if target.Height <= 0 || viewHeight <= 0 {
		return 0
	}
	top := max(target.Top, scroll)
	bottom := min(target.Bottom(), scroll+viewHeight)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / target.Height
}

// Observer reports when a target crosses a visibility threshold. The first
// Observe always reports; later calls report only on change.
type Observer struct {
	Target    Region
	Threshold float64

	observed bool
	visible  bool
}

func NewObserver(target Region, threshold float64) *Observer {
	return &Observer{Target: target, Threshold: threshold}
}

// Observe checks the target against the current scroll position and returns
// the visibility and whether it changed.
func (o *Observer) Observe(scroll, viewHeight float64) (visible bool, changed bool) {
	ratio := IntersectionRatio(o.Target, scroll, viewHeight)
	visible = ratio > 0 && ratio >= o.Threshold

	changed = !o.observed || visible != o.visible
	o.observed = true
	o.visible = visible
	return visible, changed
}

// Visible returns the last observed visibility.
func (o *Observer) Visible() bool {
	return o.visible
}
