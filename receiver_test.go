package uds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenReceiveHandlesBroadcastOpensEightSlots(t *testing.T) {
	handles := openReceiveHandles(&Request{ArbitrationID: FunctionalBroadcastID})
	require.Len(t, handles, FunctionalResponseCount)
}

func TestOpenReceiveHandlesPhysicalOpensOneSlot(t *testing.T) {
	handles := openReceiveHandles(&Request{ArbitrationID: 0x7E0})
	require.Len(t, handles, 1)
}
