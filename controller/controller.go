package controller

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/milk9111/lightswitch/schedule"
	"github.com/rs/zerolog"
)

// Mode is the page-level visual classification. Exactly one is active.
type Mode string

const (
	ModeDark  Mode = "dark-mode"
	ModeLight Mode = "light-mode"
)

// Tracks are the ambient loops a light-on transition picks from.
var Tracks = [...]string{
	"assets/Birds In The Rain.wav",
	"assets/Rain On The Roof.wav",
	"assets/Water Stream.wav",
}

const (
	FadeInterval  = 25 * time.Millisecond
	FadeInStep    = 0.025
	FadeInCeiling = 0.5
	FadeOutStep   = 0.05

	volumeEpsilon = 1e-9
)

type Options struct {
	Clock  *schedule.Clock
	Opener TrackOpener
	Synth  ToneSynthesizer
	Logger zerolog.Logger
	// Intn returns a uniform value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

// Controller owns the light toggle, the current ambient player and the one
// fade that may be running against it. All methods must be called from the
// goroutine that advances Clock.
type Controller struct {
	clock  *schedule.Clock
	opener TrackOpener
	synth  ToneSynthesizer
	log    zerolog.Logger
	intn   func(n int) int
	tracks []string

	on        bool
	current   AudioPlayer
	fade      *schedule.Task
	lastTrack string
}

func New(opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = schedule.NewClock()
	}
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Controller{
		clock:  clock,
		opener: opts.Opener,
		synth:  opts.Synth,
		log:    opts.Logger.With().Str("component", "controller").Logger(),
		intn:   intn,
		tracks: Tracks[:],
	}
}

// Activate flips the light. Audio failures are logged and never block the
// mode change.
func (c *Controller) Activate() {
	c.on = !c.on
	c.fade.Cancel()
	c.fade = nil

	if c.on {
		c.turnOn()
	} else {
		c.turnOff()
	}

	c.PlayClickSound(c.on)
}

func (c *Controller) turnOn() {
	c.releaseCurrent()

	track := c.pickTrack()
	c.lastTrack = track
	c.log.Debug().Str("track", track).Msg("light on")

	if c.opener == nil {
		return
	}
	player, err := c.opener.Open(track)
	if err != nil {
		c.log.Error().Err(err).Str("track", track).Msg("audio block")
		return
	}
	player.SetVolume(0)
	c.current = player

	if err := player.Play(); err != nil {
		c.log.Error().Err(err).Str("track", track).Msg("audio block")
	}

	c.fade = c.clock.Every(FadeInterval, func() bool {
		v := approach(player.Volume(), FadeInCeiling, FadeInStep)
		player.SetVolume(v)
		return v < FadeInCeiling
	})
}

func (c *Controller) turnOff() {
	c.log.Debug().Msg("light off")
	player := c.current
	if player == nil {
		return
	}

	c.fade = c.clock.Every(FadeInterval, func() bool {
		v := approach(player.Volume(), 0, FadeOutStep)
		player.SetVolume(v)
		if v > 0 {
			return true
		}
		player.Pause()
		return false
	})
}

// releaseCurrent stops, rewinds and discards the current player.
func (c *Controller) releaseCurrent() {
	if c.current == nil {
		return
	}
	player := c.current
	c.current = nil

	player.Pause()
	if err := player.Rewind(); err != nil {
		c.log.Warn().Err(err).Msg("rewind previous track")
	}
	if err := player.Close(); err != nil {
		c.log.Warn().Err(err).Msg("close previous track")
	}
}

// pickTrack picks uniformly, re-rolling while the pick repeats the last track.
func (c *Controller) pickTrack() string {
	if len(c.tracks) == 0 {
		return ""
	}
	for {
		track := c.tracks[c.intn(len(c.tracks))]
		if track != c.lastTrack || len(c.tracks) <= 1 {
			return track
		}
	}
}

// PlayClickSound emits the toggle click, resuming the synthesizer first.
func (c *Controller) PlayClickSound(on bool) {
	if c.synth == nil {
		return
	}
	if err := c.synth.Resume(); err != nil {
		c.log.Warn().Err(err).Msg("resume tone synthesizer")
	}
	if err := c.synth.Play(ClickTone(on)); err != nil {
		c.log.Warn().Err(err).Bool("on", on).Msg("click sound")
	}
}

func (c *Controller) On() bool {
	return c.on
}

func (c *Controller) Mode() Mode {
	if c.on {
		return ModeLight
	}
	return ModeDark
}

func (c *Controller) LastTrack() string {
	return c.lastTrack
}

// Volume returns the current player's volume, or 0 with no player.
func (c *Controller) Volume() float64 {
	if c.current == nil {
		return 0
	}
	return c.current.Volume()
}

// Fading reports whether a fade is still running.
func (c *Controller) Fading() bool {
	return c.fade.Active()
}

// approach moves v one step towards target, snapping onto it instead of
// overshooting or stopping a rounding error short.
func approach(v, target, step float64) float64 {
	if math.Abs(v-target) < volumeEpsilon {
		return target
	}
	if v < target {
		v += step
		if v >= target-volumeEpsilon {
			return target
		}
		return v
	}
	v -= step
	if v <= target+volumeEpsilon {
		return target
	}
	return v
}
