package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/lightswitch/controller"
	"github.com/rs/zerolog"
)

const (
	channels       = 2
	bytesPerSample = 2
)

// Synth renders one-shot tones and plays them on the shared audio context.
type Synth struct {
	ctx  *audio.Context
	log  zerolog.Logger
	live []*audio.Player
}

func NewSynth(engine *Engine) *Synth {
	return &Synth{
		ctx: engine.ctx,
		log: engine.log.With().Str("component", "synth").Logger(),
	}
}

// Resume reports whether the device is up. The device is brought up by the
// first user interaction, so a not-ready result only delays the tone.
func (s *Synth) Resume() error {
	if s.ctx.IsReady() {
		return nil
	}
	return ErrNotReady
}

// Play implements controller.ToneSynthesizer. Finished tone players are
// released on the next call.
func (s *Synth) Play(tone controller.Tone) error {
	s.reap()

	if tone.Waveform != controller.WaveformSine {
		return fmt.Errorf("tone: unsupported waveform %s", tone.Waveform)
	}
	pcm := Render(tone, s.ctx.SampleRate())
	if len(pcm) == 0 {
		return nil
	}

	p := s.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	s.live = append(s.live, p)
	s.log.Debug().Float64("frequency", tone.Frequency).Dur("duration", tone.Duration).Msg("tone")
	return nil
}

func (s *Synth) reap() {
	kept := s.live[:0]
	for _, p := range s.live {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close tone player")
		}
	}
	for i := len(kept); i < len(s.live); i++ {
		s.live[i] = nil
	}
	s.live = kept
}

// Render produces signed 16-bit little-endian stereo PCM for tone.
func Render(tone controller.Tone, sampleRate int) []byte {
	if sampleRate <= 0 || tone.Duration <= 0 {
		return nil
	}
	frames := int(tone.Duration.Seconds() * float64(sampleRate))
	buf := make([]byte, frames*channels*bytesPerSample)

	phase := 0.0
	for i := 0; i < frames; i++ {
		t := time.Duration(float64(i) / float64(sampleRate) * float64(time.Second))
		freq := ExpRamp(tone.Frequency, tone.FrequencyFloor, tone.FrequencyRamp, t)
		gain := ExpRamp(tone.Gain, tone.GainFloor, tone.GainRamp, t)

		v := int16(math.Sin(phase) * gain * math.MaxInt16)
		phase += 2 * math.Pi * freq / float64(sampleRate)
		if phase > 2*math.Pi {
			phase -= 2 * math.Pi
		}

		off := i * channels * bytesPerSample
		binary.LittleEndian.PutUint16(buf[off:], uint16(v))
		binary.LittleEndian.PutUint16(buf[off+bytesPerSample:], uint16(v))
	}
	return buf
}

// ExpRamp is an exponential ramp from start to end over ramp, holding end
// afterwards. Non-positive values cannot ramp exponentially and jump to end.
func ExpRamp(start, end float64, ramp, t time.Duration) float64 {
	if t >= ramp || ramp <= 0 {
		return end
	}
	if start <= 0 || end <= 0 {
		return end
	}
	if t <= 0 {
		return start
	}
	return start * math.Pow(end/start, t.Seconds()/ramp.Seconds())
}
