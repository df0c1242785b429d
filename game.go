package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lightswitch/common"
	"github.com/milk9111/lightswitch/config"
	"github.com/milk9111/lightswitch/controller"
	"github.com/milk9111/lightswitch/schedule"
	"github.com/milk9111/lightswitch/viewport"
	"github.com/rs/zerolog"
)

const (
	wheelStep = 40.0
	arrowStep = 24.0
)

type Game struct {
	cfg    config.Config
	log    zerolog.Logger
	debug  bool
	paused bool
	quit   bool

	clock     *schedule.Clock
	ctrl      *controller.Controller
	scroller  *viewport.Scroller
	footer    *viewport.Observer
	indicator *viewport.Indicator
	scene     *Scene
	help      *ebitenui.UI

	watcher    *config.Watcher
	configPath string

	// applyWindow is nil in tests, which run without a window.
	applyWindow func(config.WindowConfig)
}

type GameOptions struct {
	Config     config.Config
	ConfigPath string
	Logger     zerolog.Logger
	Debug      bool
	Clock      *schedule.Clock
	Opener     controller.TrackOpener
	Synth      controller.ToneSynthesizer
	Watcher    *config.Watcher
}

func NewGame(opts GameOptions) *Game {
	clock := opts.Clock
	if clock == nil {
		clock = schedule.NewClock()
	}

	g := &Game{
		log:        opts.Logger.With().Str("component", "game").Logger(),
		debug:      opts.Debug,
		clock:      clock,
		watcher:    opts.Watcher,
		configPath: opts.ConfigPath,
		ctrl: controller.New(controller.Options{
			Clock:  clock,
			Opener: opts.Opener,
			Synth:  opts.Synth,
			Logger: opts.Logger,
		}),
		applyWindow: func(w config.WindowConfig) {
			ebiten.SetWindowSize(w.Width, w.Height)
			ebiten.SetWindowTitle(w.Title)
		},
	}
	g.applyConfig(opts.Config)
	g.help = NewHelpUI(g)
	return g
}

// applyConfig installs presentation settings. Scroll position and light state
// survive a reload. The window is only resized when its settings changed, so
// a reload does not undo a manual resize.
func (g *Game) applyConfig(cfg config.Config) {
	windowChanged := g.scene == nil || g.cfg.Window != cfg.Window
	g.cfg = cfg
	page := cfg.Page

	zerolog.SetGlobalLevel(logLevel(cfg.LogLevel, g.debug))
	if windowChanged && g.applyWindow != nil {
		g.applyWindow(cfg.Window)
	}

	offset := 0.0
	if g.scroller != nil {
		offset = g.scroller.Offset()
	}
	g.scroller = viewport.NewScroller(page.ContentHeight, common.BaseHeight)
	g.scroller.ScrollTo(offset)

	g.footer = viewport.NewObserver(viewport.Region{
		Top:    page.ContentHeight - page.FooterHeight,
		Height: page.FooterHeight,
	}, page.FooterThreshold)

	g.indicator = viewport.NewIndicator(cfg.Indicator.ShownOpacity)
	g.indicator.FadeRate = cfg.Indicator.FadeRate

	g.scene = NewScene(cfg, rand.IntN)
	if g.help != nil {
		g.help = NewHelpUI(g)
	}
}

// logLevel maps the configured level name to a zerolog level. Debug mode
// always logs at debug; unknown or empty names fall back to info.
func logLevel(name string, debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return level
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.clock.Advance(time.Second / time.Duration(ebiten.TPS()))
	g.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.help.Update()
		return nil
	}

	g.handleInput()
	g.observeFooter()
	return nil
}

// observeFooter hides the scroll indicator while the footer is on screen.
func (g *Game) observeFooter() {
	if visible, changed := g.footer.Observe(g.scroller.Offset(), common.BaseHeight); changed {
		g.indicator.SetFooterVisible(visible)
		g.log.Debug().Bool("footer_visible", visible).Msg("footer visibility")
	}
	g.indicator.Update()
}

func (g *Game) handleInput() {
	// Enter and Space are consumed by the switch and never scroll.
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.Activate()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(float64(x), float64(y))
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scroller.ScrollBy(-dy * wheelStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.scroller.ScrollBy(arrowStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.scroller.ScrollBy(-arrowStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.scroller.PageDown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.scroller.PageUp()
	}
}

// click handles a left click at screen coordinates.
func (g *Game) click(x, y float64) {
	if g.scene.Switch.Contains(x, y+g.scroller.Offset()) {
		g.ctrl.Activate()
		return
	}
	if g.indicator.Interactive() && g.scene.IndicatorRect().Contains(x, y) {
		g.scroller.PageDown()
	}
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case _, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		cfg, err := config.Load(g.configPath)
		if err != nil {
			g.log.Error().Err(err).Msg("reload config; keeping previous")
			return
		}
		g.applyConfig(cfg)
		g.log.Info().Str("path", g.configPath).Msg("config reloaded")
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warn().Err(err).Msg("config watcher")
		}
	default:
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen, SceneState{
		Mode:             g.ctrl.Mode(),
		Volume:           g.ctrl.Volume(),
		Scroll:           g.scroller.Offset(),
		IndicatorOpacity: g.indicator.Opacity(),
		Elapsed:          g.clock.Now(),
		Year:             time.Now().Year(),
	})

	if g.paused {
		g.help.Draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  mode: %s  track: %s  volume: %.3f  fading: %v",
			ebiten.ActualFPS(), g.ctrl.Mode(), g.ctrl.LastTrack(), g.ctrl.Volume(), g.ctrl.Fading()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
