package bitfield_test

import (
	"testing"

	"github.com/elektrosoftlab/isotpuds/bitfield"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	data := make([]byte, 4)
	bitfield.Set(0x1234, 8, 16, data)
	require.EqualValues(t, 0x1234, bitfield.Get(data, 8, 16))
}

func TestGetFirstFrameLength(t *testing.T) {
	// a first frame byte0=0x1X, byte1=length-low; the 12-bit length spans
	// the low nibble of byte0 and all of byte1.
	data := []byte{0x14, 0x56}
	require.EqualValues(t, 0x456, bitfield.Get(data, 4, 12))
}

func TestSetDoesNotTouchOtherBits(t *testing.T) {
	data := []byte{0xFF, 0xFF}
	bitfield.Set(0x00, 8, 8, data)
	require.Equal(t, byte(0xFF), data[0])
	require.Equal(t, byte(0x00), data[1])
}
