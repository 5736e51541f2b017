// epson-rom-tools - https://github.com/NaturalTangent/epson-rom-tools
// remap_test.go - Unit tests for physical/logical address remapping
// Dual-licensed under MIT and Apache 2.0

package capsule

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapHalves(t *testing.T) {
	buf := append(bytes.Repeat([]byte{0xAA}, ImageSize/2), bytes.Repeat([]byte{0xBB}, ImageSize/2)...)
	swapHalves(buf)
	assert.Equal(t, bytes.Repeat([]byte{0xBB}, ImageSize/2), buf[:ImageSize/2])
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, ImageSize/2), buf[ImageSize/2:])
}

func TestSwapHalvesInvolution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, ImageSize)
	_, err := rng.Read(buf)
	require.NoError(t, err)

	orig := make([]byte, ImageSize)
	copy(orig, buf)

	swapHalves(buf)
	assert.NotEqual(t, orig, buf)
	swapHalves(buf)
	assert.Equal(t, orig, buf)
}
