package controller

import "time"

// AudioPlayer is a single playable ambient track. Looping is fixed when the
// player is opened.
type AudioPlayer interface {
	Play() error
	Pause()
	Rewind() error
	SetVolume(volume float64)
	Volume() float64
	Close() error
}

// TrackOpener opens a fresh looping player for an asset path.
type TrackOpener interface {
	Open(track string) (AudioPlayer, error)
}

// ToneSynthesizer emits short one-shot tones.
type ToneSynthesizer interface {
	// Resume brings a suspended synthesis context back to running. It is a
	// no-op when the context is already running.
	Resume() error
	Play(tone Tone) error
}

type Waveform int

const (
	WaveformSine Waveform = iota
)

func (w Waveform) String() string {
	switch w {
	case WaveformSine:
		return "sine"
	default:
		return "unknown"
	}
}

// Tone describes a tone whose frequency and gain decay exponentially towards
// their floors over the given ramp durations.
type Tone struct {
	Waveform Waveform

	Frequency      float64
	FrequencyFloor float64
	FrequencyRamp  time.Duration

	Gain      float64
	GainFloor float64
	GainRamp  time.Duration

	Duration time.Duration
}

const (
	clickFrequencyOn  = 600
	clickFrequencyOff = 400
	clickFloor        = 0.01
	clickGain         = 0.1
)

// ClickTone returns the feedback tone for a toggle. Turning on clicks higher
// than turning off.
func ClickTone(on bool) Tone {
	freq := float64(clickFrequencyOff)
	if on {
		freq = clickFrequencyOn
	}
	return Tone{
		Waveform:       WaveformSine,
		Frequency:      freq,
		FrequencyFloor: clickFloor,
		FrequencyRamp:  100 * time.Millisecond,
		Gain:           clickGain,
		GainFloor:      clickFloor,
		GainRamp:       50 * time.Millisecond,
		Duration:       100 * time.Millisecond,
	}
}
