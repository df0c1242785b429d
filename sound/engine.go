package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/lightswitch/assets"
	"github.com/milk9111/lightswitch/controller"
	"github.com/rs/zerolog"
)

const SampleRate = 44100

// ErrNotReady is returned while the audio device has not started yet. Players
// created in that window start as soon as the device comes up.
var ErrNotReady = errors.New("audio context not ready")

// Engine opens looping ambient tracks from the embedded assets.
type Engine struct {
	ctx *audio.Context
	log zerolog.Logger
}

// NewEngine wraps the process audio context. Ebiten allows one context per
// process, so an existing one is reused.
func NewEngine(log zerolog.Logger) *Engine {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	return &Engine{
		ctx: ctx,
		log: log.With().Str("component", "sound").Logger(),
	}
}

// Open implements controller.TrackOpener.
func (e *Engine) Open(track string) (controller.AudioPlayer, error) {
	b, err := assets.LoadAudio(track)
	if err != nil {
		return nil, err
	}

	stream, length, err := decode(e.ctx.SampleRate(), track, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	player, err := e.ctx.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", track, err)
	}
	e.log.Debug().Str("track", track).Int64("bytes", length).Msg("opened track")
	return &Track{ctx: e.ctx, player: player}, nil
}

type decodedStream interface {
	io.ReadSeeker
	Length() int64
}

// decode picks a decoder by file extension and resamples to sampleRate.
func decode(sampleRate int, path string, src io.ReadSeeker) (io.ReadSeeker, int64, error) {
	var (
		stream decodedStream
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, src)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, src)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, src)
	default:
		return nil, 0, fmt.Errorf("decode %q: unsupported audio format", path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("decode %q: %w", path, err)
	}
	return stream, stream.Length(), nil
}

// Track adapts an ebiten player to controller.AudioPlayer.
type Track struct {
	ctx    *audio.Context
	player *audio.Player
}

// Play starts playback. When the device is not up yet playback is queued and
// ErrNotReady is returned so the caller can log it.
func (t *Track) Play() error {
	t.player.Play()
	if !t.ctx.IsReady() {
		return ErrNotReady
	}
	return nil
}

func (t *Track) Pause() {
	t.player.Pause()
}

func (t *Track) Rewind() error {
	return t.player.Rewind()
}

func (t *Track) SetVolume(volume float64) {
	t.player.SetVolume(volume)
}

func (t *Track) Volume() float64 {
	return t.player.Volume()
}

func (t *Track) Close() error {
	return t.player.Close()
}
