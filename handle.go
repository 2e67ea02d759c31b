package uds

import (
	"github.com/elektrosoftlab/isotpuds/isotp"
	"github.com/google/uuid"
)

// RequestHandle tracks a single in-flight (or completed) diagnostic request,
// including the ISO-TP send/receive machinery backing it.
type RequestHandle struct {
	Request   Request
	Completed bool
	Success   bool
	// CorrelationID is a random UUID set by GenerateRequest so callers can
	// tell handles apart; it has no on-wire meaning. The package does not
	// write it into log lines or metrics.
	CorrelationID uuid.UUID

	callback func(*Response)

	isotpShims     isotp.Shims
	sendHandle     *isotp.SendHandle
	receiveHandles []*isotp.ReceiveHandle
}

func buildIsotpShims(shims Shims, request *Request) isotp.Shims {
	return isotp.Shims{
		Log:          shims.Log,
		SendCAN:      shims.SendCAN,
		FramePadding: !request.NoFramePadding,
	}
}

// GenerateRequest builds a RequestHandle for request without sending
// anything on the bus yet. Call StartRequest to actually begin
// transmission, or use SendRequest to do both in one step.
func GenerateRequest(shims Shims, request Request, callback func(*Response)) *RequestHandle {
	return &RequestHandle{
		Request:       request,
		CorrelationID: uuid.New(),
		callback:      callback,
		isotpShims:    buildIsotpShims(shims, &request),
	}
}

func (h *RequestHandle) sendDiagnosticRequest(shims Shims) {
	payload := EncodePayload(&h.Request)
	h.sendHandle = isotp.Send(&h.isotpShims, h.Request.ArbitrationID, payload,
		h.Request.ArbitrationID+physicalResponseOffset)

	if h.sendHandle.Completed && !h.sendHandle.Success {
		h.Completed = true
		h.Success = false
		shims.logf("%v: %s", ErrSendFailed, RequestToString(&h.Request))
		shims.observeSent(false)
		return
	}
	shims.logf("Sending diagnostic request: %s", RequestToString(&h.Request))
	shims.observeSent(true)
}

// StartRequest transmits the request payload held by handle and, if it
// wasn't rejected outright, opens the receive handles for its response(s).
func StartRequest(shims Shims, handle *RequestHandle) {
	handle.Success = false
	handle.Completed = false
	handle.sendDiagnosticRequest(shims)
	if !handle.Completed {
		handle.receiveHandles = openReceiveHandles(&handle.Request)
	}
}

// SendRequest generates and immediately starts a request, the combined
// operation most callers want.
func SendRequest(shims Shims, request Request, callback func(*Response)) *RequestHandle {
	handle := GenerateRequest(shims, request, callback)
	StartRequest(shims, handle)
	return handle
}

// RequestPID issues a request for a single OBD-II parameter ID to
// arbitrationID (FunctionalBroadcastID for a functional broadcast), either as
// a standard mode 0x01 PID with a 1-byte PID field or an enhanced (mode 0x22)
// PID with a 2-byte PID field.
func RequestPID(shims Shims, kind PIDKind, arbitrationID uint32, pid uint16, callback func(*Response)) *RequestHandle {
	request := Request{
		ArbitrationID: arbitrationID,
		HasPID:        true,
		PID:           pid,
	}
	if kind == EnhancedPID {
		request.Mode = ModeEnhancedDiagnosticRequest
		request.PIDLength = 2
	} else {
		request.Mode = ModePowertrainDiagnosticRequest
		request.PIDLength = 1
	}
	return SendRequest(shims, request, callback)
}

// RequestSent reports whether the initial request frame has finished
// transmitting (true for both success and outright send failure).
func RequestSent(handle *RequestHandle) bool {
	return handle.sendHandle != nil && handle.sendHandle.Completed
}

// ReceiveCANFrame feeds one inbound CAN frame to handle. While the request
// is still transmitting (a multi-frame send awaiting flow control), the
// frame is offered to the send handle instead of the receive handles.
//
// A handle that has already completed ignores further frames entirely: it
// returns a fresh, non-completed Response and never touches the handle or
// invokes its callback again.
//
// When several receive handles are open (functional broadcast), each is
// polled in order on every call; the loop always records the most recently
// observed MultiFrame state, and stops at the first handle whose ISO-TP
// message is Completed — even an empty or mismatched one — exactly as the
// original single-ECU-at-a-time receive loop does. A zero-length completed
// message, or one that is neither a recognized negative nor positive
// response (e.g. a different ECU's unrelated answer), is logged as a
// malformed/unrelated frame and does not complete the handle, leaving it
// open so later frames still can.
func ReceiveCANFrame(shims Shims, handle *RequestHandle, arbitrationID uint32, data []byte) Response {
	response := Response{ArbitrationID: arbitrationID}

	if handle.Completed {
		shims.logf("%v", ErrHandleCompleted)
		return response
	}

	if handle.sendHandle != nil && !handle.sendHandle.Completed {
		handle.sendHandle.ContinueSend(&handle.isotpShims, arbitrationID, data)
		return response
	}

	for _, rh := range handle.receiveHandles {
		message := rh.ContinueReceive(&handle.isotpShims, arbitrationID, data)
		response.MultiFrame = message.MultiFrame

		if message.Completed {
			matched := false
			if message.Size > 0 {
				response.Mode = Mode(message.Payload[0])
				matched = classifyNegativeResponse(&message, &response) ||
					classifyPositiveResponse(&handle.Request, &message, &response)
			}

			if matched {
				shims.logf("Diagnostic response received: %s", ResponseToString(&response))
				handle.Success = true
				handle.Completed = true
				shims.observeResponse(&response)
			} else {
				shims.logf("%v on arb ID 0x%x", ErrMalformedFrame, response.ArbitrationID)
			}

			if handle.Completed && handle.callback != nil {
				handle.callback(&response)
			}
			break
		}
	}
	return response
}
