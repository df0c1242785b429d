package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(0), Lerp(0, 1, 0))
	assert.Equal(t, float32(1), Lerp(0, 1, 1))
	assert.Equal(t, float32(0.35), Lerp(0, 0.7, 0.5))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 0.4, Clamp01(0.4))
	assert.Equal(t, 1.0, Clamp01(3))
}
