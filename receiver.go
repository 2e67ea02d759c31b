package uds

import "github.com/elektrosoftlab/isotpuds/isotp"

// openReceiveHandles opens the ISO-TP reassemblers a request's responses
// will arrive on: all 8 functional response IDs for a functional broadcast,
// or just the one physical response ID otherwise.
func openReceiveHandles(request *Request) []*isotp.ReceiveHandle {
	if request.ArbitrationID == FunctionalBroadcastID {
		handles := make([]*isotp.ReceiveHandle, FunctionalResponseCount)
		for i := 0; i < FunctionalResponseCount; i++ {
			handles[i] = isotp.Receive(FunctionalResponseStart+uint32(i), request.ArbitrationID)
		}
		return handles
	}
	return []*isotp.ReceiveHandle{
		isotp.Receive(request.ArbitrationID+physicalResponseOffset, request.ArbitrationID),
	}
}
