package slcan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStandardFrame(t *testing.T) {
	f, err := parseStandardFrame("t7DF80201090000000000")
	require.NoError(t, err)
	require.Equal(t, uint32(0x7DF), f.ArbitrationID)
	require.Equal(t, []byte{0x02, 0x01, 0x09, 0x00, 0x00, 0x00, 0x00, 0x00}, f.Data)
}

func TestParseStandardFrameShort(t *testing.T) {
	f, err := parseStandardFrame("t7E8303410C")
	require.NoError(t, err)
	require.Equal(t, uint32(0x7E8), f.ArbitrationID)
	require.Equal(t, []byte{0x03, 0x41, 0x0C}, f.Data)
}

func TestParseStandardFrameTruncated(t *testing.T) {
	_, err := parseStandardFrame("t7E")
	require.Error(t, err)
}

func TestParseExtendedFrame(t *testing.T) {
	f, err := parseExtendedFrame("T1FFFFFFF20102")
	require.NoError(t, err)
	require.True(t, f.Extended)
	require.Equal(t, uint32(0x1FFFFFFF), f.ArbitrationID)
	require.Equal(t, []byte{0x01, 0x02}, f.Data)
}
