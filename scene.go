package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lightswitch/common"
	"github.com/milk9111/lightswitch/config"
	"github.com/milk9111/lightswitch/controller"
	"golang.org/x/image/font/basicfont"
)

const (
	switchWidth  = 220
	switchHeight = 300
	noteSpread   = 260
	indicatorW   = 48
	indicatorH   = 36
	noteRadius   = 7
	noteStem     = 24
)

// SceneState is the per-frame input to Scene.Draw.
type SceneState struct {
	Mode             controller.Mode
	Volume           float64
	Scroll           float64
	IndicatorOpacity float64
	Elapsed          time.Duration
	Year             int
}

type note struct {
	// Offset in [0, 1) scatters the note horizontally and in phase.
	Offset float64
	Slot   int
}

// Scene draws the page: the lamp that acts as the switch, the music notes
// that float while the light is on, the scroll indicator and the footer.
type Scene struct {
	cfg    config.Config
	face   ebtext.Face
	Switch Rect
	Notes  []note
}

func NewScene(cfg config.Config, intn func(n int) int) *Scene {
	notes := make([]note, cfg.Page.Notes)
	for i := range notes {
		notes[i] = note{Offset: float64(intn(1000)) / 1000, Slot: i}
	}
	return &Scene{
		cfg:  cfg,
		face: ebtext.NewGoXFace(basicfont.Face7x13),
		Switch: Rect{
			X:      (common.BaseWidth - switchWidth) / 2,
			Y:      (common.BaseHeight-switchHeight)/2 + 40,
			Width:  switchWidth,
			Height: switchHeight,
		},
		Notes: notes,
	}
}

// IndicatorRect is the scroll indicator in screen coordinates.
func (s *Scene) IndicatorRect() Rect {
	return Rect{
		X:      (common.BaseWidth - indicatorW) / 2,
		Y:      common.BaseHeight - indicatorH - 24,
		Width:  indicatorW,
		Height: indicatorH,
	}
}

func (s *Scene) palette(mode controller.Mode) config.Palette {
	if mode == controller.ModeLight {
		return s.cfg.Palettes.Light
	}
	return s.cfg.Palettes.Dark
}

func (s *Scene) Draw(screen *ebiten.Image, st SceneState) {
	p := s.palette(st.Mode)
	screen.Fill(p.Background.MustColor())

	y := float32(-st.Scroll)
	page := s.cfg.Page

	// hero band
	vector.DrawFilledRect(screen, 0, y, common.BaseWidth, common.BaseHeight, p.Scene.MustColor(), false)
	s.drawText(screen, page.Title, common.BaseWidth/2, float64(y)+80, 3, p.Text.MustColor())
	s.drawText(screen, page.Subtitle, common.BaseWidth/2, float64(y)+130, 1.5, p.Text.MustColor())
	s.drawLamp(screen, st, p, y)
	s.drawNotes(screen, st, p, y)
	s.drawText(screen, page.Hint, common.BaseWidth/2, float64(y)+common.BaseHeight-100, 1, p.Accent.MustColor())

	// footer
	footerTop := float32(page.ContentHeight-page.FooterHeight) + y
	vector.DrawFilledRect(screen, 0, footerTop, common.BaseWidth, float32(page.FooterHeight), p.Scene.MustColor(), false)
	footer := fmt.Sprintf("%s  ·  %d", page.FooterText, st.Year)
	s.drawText(screen, footer, common.BaseWidth/2, float64(footerTop)+page.FooterHeight/2-6, 1, p.Text.MustColor())

	s.drawIndicator(screen, st, p)
}

func (s *Scene) drawLamp(screen *ebiten.Image, st SceneState, p config.Palette, y float32) {
	r := s.Switch
	cx, cy := r.Center()
	top := float32(r.Y) + y

	// cord and shade
	vector.StrokeLine(screen, float32(cx), top, float32(cx), top+90, 3, p.Text.MustColor(), true)
	vector.DrawFilledRect(screen, float32(cx)-70, top+90, 140, 60, p.Accent.MustColor(), true)

	bulb := p.Lamp.MustColor()
	if st.Mode == controller.ModeLight {
		glow := bulb
		glow.A = 0x30
		vector.DrawFilledCircle(screen, float32(cx), float32(cy)+y+40, 130, glow, true)
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy)+y+40, 38, bulb, true)
}

// noteRects returns the bounds of every note, head and stem, in content
// coordinates.
func (s *Scene) noteRects(elapsed time.Duration) []Rect {
	rects := make([]Rect, len(s.Notes))
	cx, cy := s.Switch.Center()
	t := elapsed.Seconds()
	for i, n := range s.Notes {
		slot := float64(n.Slot)/float64(len(s.Notes)) - 0.5
		x := cx + slot*noteSpread*2 + (n.Offset-0.5)*40
		rise := math.Mod(t*30+n.Offset*120, 120)
		y := cy - 120 - rise + math.Sin(t*2+n.Offset*2*math.Pi)*6
		rects[i] = Rect{X: x - noteRadius, Y: y - noteStem, Width: 2 * noteRadius, Height: noteStem + noteRadius}
	}
	return rects
}

// visibleNotes returns the note bounds that overlap the viewport at scroll.
func (s *Scene) visibleNotes(scroll float64, elapsed time.Duration) []Rect {
	view := Rect{Y: scroll, Width: common.BaseWidth, Height: common.BaseHeight}
	var out []Rect
	for _, r := range s.noteRects(elapsed) {
		if view.Intersects(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Scene) drawNotes(screen *ebiten.Image, st SceneState, p config.Palette, y float32) {
	if st.Volume <= 0 || len(s.Notes) == 0 {
		return
	}
	alpha := common.Clamp01(st.Volume / controller.FadeInCeiling)
	c := withAlpha(p.Accent.MustColor(), alpha)

	for _, r := range s.visibleNotes(st.Scroll, st.Elapsed) {
		x := float32(r.X + noteRadius)
		head := float32(r.Y+noteStem) + y
		vector.DrawFilledCircle(screen, x, head, noteRadius, c, true)
		vector.StrokeLine(screen, x+6, head, x+6, head-24, 2, c, true)
	}
}

func (s *Scene) drawIndicator(screen *ebiten.Image, st SceneState, p config.Palette) {
	if st.IndicatorOpacity <= 0 {
		return
	}
	r := s.IndicatorRect()
	c := withAlpha(p.Text.MustColor(), st.IndicatorOpacity)
	cx := float32(r.X + r.Width/2)
	top := float32(r.Y)
	bottom := float32(r.Y + r.Height)
	vector.StrokeLine(screen, float32(r.X), top, cx, bottom, 4, c, true)
	vector.StrokeLine(screen, cx, bottom, float32(r.X+r.Width), top, 4, c, true)
}

func (s *Scene) drawText(screen *ebiten.Image, str string, cx, y, scale float64, c color.NRGBA) {
	if str == "" {
		return
	}
	op := &ebtext.DrawOptions{}
	op.PrimaryAlign = ebtext.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, str, s.face, op)
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * common.Clamp01(alpha))
	return c
}
