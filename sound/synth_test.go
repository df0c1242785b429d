package sound

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/milk9111/lightswitch/assets"
	"github.com/milk9111/lightswitch/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpRamp(t *testing.T) {
	ramp := 100 * time.Millisecond
	cases := []struct {
		name string
		t    time.Duration
		want float64
	}{
		{"start", 0, 600},
		{"halfway", 50 * time.Millisecond, 600 * math.Sqrt(0.01/600)},
		{"end", ramp, 0.01},
		{"after_end", time.Second, 0.01},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, ExpRamp(600, 0.01, ramp, c.t), 1e-9)
		})
	}

	assert.Equal(t, 0.01, ExpRamp(0, 0.01, ramp, 10*time.Millisecond))
	assert.Equal(t, 0.5, ExpRamp(1, 0.5, 0, 0))
}

func TestRenderClickTone(t *testing.T) {
	pcm := Render(controller.ClickTone(true), SampleRate)
	frames := SampleRate / 10
	require.Len(t, pcm, frames*channels*bytesPerSample)

	peak := 0.0
	for i := 0; i < frames; i++ {
		off := i * channels * bytesPerSample
		l := int16(binary.LittleEndian.Uint16(pcm[off:]))
		r := int16(binary.LittleEndian.Uint16(pcm[off+bytesPerSample:]))
		assert.Equal(t, l, r, "channels differ at frame %d", i)
		peak = math.Max(peak, math.Abs(float64(l)))
	}
	limit := 0.1 * math.MaxInt16
	assert.LessOrEqual(t, peak, limit+1)
	assert.Greater(t, peak, 0.0)
}

func TestRenderDecays(t *testing.T) {
	pcm := Render(controller.ClickTone(false), SampleRate)
	energy := func(from, to int) float64 {
		sum := 0.0
		for i := from; i < to; i++ {
			v := float64(int16(binary.LittleEndian.Uint16(pcm[i*channels*bytesPerSample:])))
			sum += v * v
		}
		return sum
	}
	quarter := SampleRate / 40
	assert.Greater(t, energy(0, quarter), energy(3*quarter, 4*quarter))
}

func TestRenderEmpty(t *testing.T) {
	assert.Nil(t, Render(controller.Tone{}, SampleRate))
	assert.Nil(t, Render(controller.ClickTone(true), 0))
}

func TestDecodeEmbeddedTracks(t *testing.T) {
	for _, track := range controller.Tracks {
		b, err := assets.LoadAudio(track)
		require.NoError(t, err)

		stream, length, err := decode(SampleRate, track, bytes.NewReader(b))
		require.NoError(t, err, track)
		assert.NotNil(t, stream)
		assert.Positive(t, length)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, _, err := decode(SampleRate, "assets/readme.txt", bytes.NewReader(nil))
	assert.ErrorContains(t, err, "unsupported")
}
