package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/lightswitch/config"
	"github.com/milk9111/lightswitch/controller"
	"github.com/milk9111/lightswitch/schedule"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame builds a game without the help overlay, which needs a running
// graphics driver.
func newTestGame(t *testing.T, cfg config.Config) *Game {
	t.Helper()
	clock := schedule.NewClock()
	g := &Game{
		log:   zerolog.Nop(),
		clock: clock,
		ctrl:  controller.New(controller.Options{Clock: clock, Logger: zerolog.Nop()}),
	}
	g.applyConfig(cfg)
	return g
}

func TestClickOnSwitchToggles(t *testing.T) {
	g := newTestGame(t, config.Default())
	x, y := g.scene.Switch.Center()

	g.click(x, y)
	assert.Equal(t, controller.ModeLight, g.ctrl.Mode())
	g.click(x, y)
	assert.Equal(t, controller.ModeDark, g.ctrl.Mode())

	g.click(5, 5)
	assert.Equal(t, controller.ModeDark, g.ctrl.Mode())
}

func TestClickUsesContentCoordinates(t *testing.T) {
	g := newTestGame(t, config.Default())
	x, y := g.scene.Switch.Center()

	g.scroller.ScrollTo(200)
	g.click(x, y-200)
	assert.Equal(t, controller.ModeLight, g.ctrl.Mode())
}

func TestIndicatorFollowsFooter(t *testing.T) {
	g := newTestGame(t, config.Default())
	ind := g.scene.IndicatorRect()
	ix, iy := ind.Center()

	g.observeFooter()
	assert.True(t, g.indicator.Interactive())

	g.click(ix, iy)
	assert.Equal(t, 720.0, g.scroller.Offset(), "indicator scrolls one screen")

	g.scroller.ScrollTo(g.scroller.MaxOffset())
	g.observeFooter()
	assert.False(t, g.indicator.Interactive())
	assert.Equal(t, 0.0, g.indicator.Target())

	before := g.scroller.Offset()
	g.scroller.ScrollTo(before - 10)
	g.observeFooter()
	g.click(ix, iy)
	assert.Equal(t, before-10, g.scroller.Offset(), "hidden indicator ignores clicks")

	g.scroller.ScrollTo(0)
	g.observeFooter()
	assert.True(t, g.indicator.Interactive())
	assert.Equal(t, config.Default().Indicator.ShownOpacity, g.indicator.Target())
}

func TestPollConfigReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("page:\n  notes: 1\n"), 0o644))

	g := newTestGame(t, config.Default())
	g.configPath = path
	g.watcher = &config.Watcher{Events: make(chan string, 1), Errors: make(chan error, 1)}
	g.scroller.ScrollTo(300)
	g.ctrl.Activate()

	g.watcher.Events <- path
	g.pollConfig()
	assert.Len(t, g.scene.Notes, 1)
	assert.Equal(t, 300.0, g.scroller.Offset())
	assert.Equal(t, controller.ModeLight, g.ctrl.Mode())

	require.NoError(t, os.WriteFile(path, []byte("page:\n  notes: -3\n"), 0o644))
	g.watcher.Events <- path
	g.pollConfig()
	assert.Len(t, g.scene.Notes, 1, "invalid reload keeps the previous config")

	close(g.watcher.Events)
	g.pollConfig()
	assert.Nil(t, g.watcher)
}

func TestReloadReappliesWindowAndLogLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)
	g := newTestGame(t, config.Default())
	g.configPath = path
	g.watcher = &config.Watcher{Events: make(chan string, 1), Errors: make(chan error, 1)}
	var applied []config.WindowConfig
	g.applyWindow = func(w config.WindowConfig) { applied = append(applied, w) }

	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\nwindow:\n  title: Study\n"), 0o644))
	g.watcher.Events <- path
	g.pollConfig()
	require.Len(t, applied, 1)
	assert.Equal(t, "Study", applied[0].Title)
	assert.Equal(t, config.Default().Window.Width, applied[0].Width)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.NoError(t, os.WriteFile(path, []byte("log_level: error\nwindow:\n  title: Study\n"), 0o644))
	g.watcher.Events <- path
	g.pollConfig()
	assert.Len(t, applied, 1, "unchanged window settings are not re-applied")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, logLevel("warn", false))
	assert.Equal(t, zerolog.InfoLevel, logLevel("", false))
	assert.Equal(t, zerolog.InfoLevel, logLevel("loud", false))
	assert.Equal(t, zerolog.DebugLevel, logLevel("error", true))
}

func TestNotesCulledOutsideViewport(t *testing.T) {
	cfg := config.Default()
	scene := NewScene(cfg, func(n int) int { return n / 2 })
	require.Len(t, scene.Notes, cfg.Page.Notes)

	all := scene.noteRects(0)
	assert.Equal(t, all, scene.visibleNotes(0, 0), "notes float above the lamp in the first screen")

	maxScroll := cfg.Page.ContentHeight - 720
	assert.Empty(t, scene.visibleNotes(maxScroll, 0))

	// Every note shares one phase, so they leave the viewport together.
	bottom := all[0].Y + all[0].Height
	assert.Len(t, scene.visibleNotes(bottom-1, 0), len(all))
	assert.Empty(t, scene.visibleNotes(bottom, 0))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29, 29))
	assert.False(t, r.Contains(30, 30))
	assert.True(t, r.Intersects(Rect{X: 25, Y: 25, Width: 10, Height: 10}))
	assert.False(t, r.Intersects(Rect{X: 30, Y: 0, Width: 5, Height: 5}))
}
