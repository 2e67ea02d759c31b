package isotp_test

import (
	"testing"

	"github.com/elektrosoftlab/isotpuds/isotp"
	"github.com/stretchr/testify/require"
)

func TestReceiveSingleFrame(t *testing.T) {
	shims := &isotp.Shims{}
	h := isotp.Receive(0x108, 0x100)
	msg := h.ContinueReceive(shims, 0x108, []byte{0x02, 0x43, 0x23})
	require.True(t, msg.Completed)
	require.False(t, msg.MultiFrame)
	require.Equal(t, []byte{0x43, 0x23}, msg.Payload)
}

func TestReceiveIgnoresOtherArbitrationID(t *testing.T) {
	shims := &isotp.Shims{}
	h := isotp.Receive(0x108, 0x100)
	msg := h.ContinueReceive(shims, 0x100, []byte{0x02, 0x43, 0x23})
	require.False(t, msg.Completed)
}

func TestReceiveMultiFrameVIN(t *testing.T) {
	var sent []isotp.Frame
	shims := &isotp.Shims{
		SendCAN: func(arbID uint32, data []byte) bool {
			sent = append(sent, isotp.Frame{ArbitrationID: arbID, Data: append([]byte(nil), data...)})
			return true
		},
	}
	h := isotp.Receive(0x108, 0x100)

	msg := h.ContinueReceive(shims, 0x108, []byte{0x10, 0x14, 0x49, 0x02, 0x01, 0x31, 0x46, 0x4D})
	require.False(t, msg.Completed)
	require.True(t, msg.MultiFrame)
	require.Len(t, sent, 1)
	require.Equal(t, uint32(0x100), sent[0].ArbitrationID)
	require.Equal(t, byte(0x30), sent[0].Data[0])

	msg = h.ContinueReceive(shims, 0x108, []byte{0x21, 0x43, 0x55, 0x39, 0x4A, 0x39, 0x34, 0x48})
	require.False(t, msg.Completed)

	msg = h.ContinueReceive(shims, 0x108, []byte{0x22, 0x55, 0x41, 0x30, 0x34, 0x35, 0x32, 0x34})
	require.True(t, msg.Completed)
	require.Equal(t, 20, msg.Size)
	require.Equal(t, []byte{
		0x49, 0x02, 0x01, 0x31, 0x46, 0x4D, 0x43, 0x55, 0x39,
		0x4A, 0x39, 0x34, 0x48, 0x55, 0x41, 0x30, 0x34, 0x35, 0x32, 0x34,
	}, msg.Payload)
}

func TestSendSingleFrameCompletesImmediately(t *testing.T) {
	var gotArb uint32
	var gotData []byte
	shims := &isotp.Shims{
		SendCAN: func(arbID uint32, data []byte) bool {
			gotArb, gotData = arbID, data
			return true
		},
	}
	h := isotp.Send(shims, 0x100, []byte{0x03}, 0x108)
	require.True(t, h.Completed)
	require.True(t, h.Success)
	require.Equal(t, uint32(0x100), gotArb)
	require.Equal(t, []byte{0x01, 0x03}, gotData)
}

func TestSendSingleFrameFailurePropagates(t *testing.T) {
	shims := &isotp.Shims{SendCAN: func(uint32, []byte) bool { return false }}
	h := isotp.Send(shims, 0x100, []byte{0x03}, 0x108)
	require.True(t, h.Completed)
	require.False(t, h.Success)
}

func TestSendPadsToEightBytes(t *testing.T) {
	var gotData []byte
	shims := &isotp.Shims{
		FramePadding: true,
		SendCAN: func(arbID uint32, data []byte) bool {
			gotData = data
			return true
		},
	}
	isotp.Send(shims, 0x100, []byte{0x01, 0x02}, 0x108)
	require.Len(t, gotData, 8)
}

func TestMultiFrameSendDrainsOnFlowControl(t *testing.T) {
	var frames [][]byte
	shims := &isotp.Shims{
		SendCAN: func(arbID uint32, data []byte) bool {
			frames = append(frames, append([]byte(nil), data...))
			return true
		},
	}
	payload := make([]byte, 10)
	for i := range payload {
		payload[i] = byte(i)
	}
	h := isotp.Send(shims, 0x100, payload, 0x108)
	require.False(t, h.Completed)
	require.Len(t, frames, 1)

	h.ContinueSend(shims, 0x108, []byte{0x30, 0x00, 0x00})
	require.True(t, h.Completed)
	require.True(t, h.Success)
	require.Len(t, frames, 2)
	require.Equal(t, byte(0x21), frames[1][0])
}
