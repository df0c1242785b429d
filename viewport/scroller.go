package viewport

// Scroller keeps the page scroll offset within the content.
type Scroller struct {
	ContentHeight float64
	ViewHeight    float64

	offset float64
}

func NewScroller(contentHeight, viewHeight float64) *Scroller {
	return &Scroller{ContentHeight: contentHeight, ViewHeight: viewHeight}
}

func (s *Scroller) Offset() float64 {
	return s.offset
}

func (s *Scroller) MaxOffset() float64 {
	return max(0, s.ContentHeight-s.ViewHeight)
}

func (s *Scroller) ScrollBy(dy float64) {
	s.ScrollTo(s.offset + dy)
}

func (s *Scroller) ScrollTo(y float64) {
	s.offset = min(max(0, y), s.MaxOffset())
}

// PageDown scrolls by one view height.
func (s *Scroller) PageDown() {
	s.ScrollBy(s.ViewHeight)
}

func (s *Scroller) PageUp() {
	s.ScrollBy(-s.ViewHeight)
}
