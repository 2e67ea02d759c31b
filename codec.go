package uds

import (
	"github.com/elektrosoftlab/isotpuds/bitfield"
	"github.com/elektrosoftlab/isotpuds/isotp"
)

const (
	modeByteIndex             = 0
	pidByteIndex              = 1
	negativeResponseMode      = 0x7F
	modeResponseOffset        = 0x40
	negativeResponseModeIndex = 1
	negativeResponseNRCIndex  = 2
)

// autosetPIDLength mirrors the original library's heuristic: modes at or
// below the last OBD-II service, plus the UDS ReadDataByIdentifier mode
// 0x3E, always take a 1-byte PID; anything else takes 2 bytes unless the PID
// value itself fits in a byte.
func autosetPIDLength(mode Mode, pid uint16, pidLength uint8) uint8 {
	if pidLength != 0 {
		return pidLength
	}
	if mode <= 0x0A || mode == 0x3E {
		return 1
	}
	if pid&0xFF00 > 0 {
		return 2
	}
	return 1
}

// EncodePayload assembles the ISO-TP payload bytes (mode, optional PID, raw
// payload) for a request, resolving request.PIDLength in place when it was
// left at 0 for auto-detection.
func EncodePayload(request *Request) []byte {
	payload := make([]byte, maxSingleFrameDiagnosticPayload)
	payload[modeByteIndex] = byte(request.Mode)

	pidLength := 0
	if request.HasPID {
		request.PIDLength = autosetPIDLength(request.Mode, request.PID, request.PIDLength)
		bitfield.Set(uint32(request.PID), pidByteIndex*8, int(request.PIDLength)*8, payload)
		pidLength = int(request.PIDLength)
	}

	if request.PayloadLength > 0 {
		copy(payload[pidByteIndex+pidLength:], request.Payload[:request.PayloadLength])
	}

	total := 1 + int(request.PayloadLength) + pidLength
	if total > len(payload) {
		total = len(payload)
	}
	return payload[:total]
}

// classifyNegativeResponse reports whether message looks like a UDS negative
// response (mode byte 0x7F) and, if so, fills in response's echoed mode and
// NRC.
func classifyNegativeResponse(message *isotp.Message, response *Response) bool {
	if response.Mode != negativeResponseMode {
		return false
	}
	if message.Size > negativeResponseModeIndex {
		response.Mode = Mode(message.Payload[negativeResponseModeIndex])
	}
	if message.Size > negativeResponseNRCIndex {
		response.NegativeResponseCode = NegativeResponseCode(message.Payload[negativeResponseNRCIndex])
	}
	response.Success = false
	response.Completed = true
	return true
}

// classifyPositiveResponse reports whether message is a positive response to
// request (mode echoed with the 0x40 response bit and, if the request had a
// PID, a matching PID echo). A mode match with a mismatched PID is NOT a
// positive response: it returns false so the caller keeps scanning other
// receive slots, matching the original multi-ECU functional-broadcast
// behavior.
func classifyPositiveResponse(request *Request, message *isotp.Message, response *Response) bool {
	if response.Mode != request.Mode+modeResponseOffset {
		return false
	}

	response.Mode = request.Mode
	response.HasPID = false
	if request.HasPID && message.Size > 1 {
		response.HasPID = true
		if request.PIDLength == 2 {
			response.PID = uint16(bitfield.Get(message.Payload, pidByteIndex*8, 16))
		} else {
			response.PID = uint16(message.Payload[pidByteIndex])
		}
	}

	if (!request.HasPID && !response.HasPID) || (response.HasPID && response.PID == request.PID) {
		response.Success = true
		response.Completed = true

		payloadIndex := 1
		if request.HasPID {
			payloadIndex += int(request.PIDLength)
		}
		length := message.Size - payloadIndex
		if length < 0 {
			length = 0
		}
		if length > len(response.Payload) {
			length = len(response.Payload)
		}
		response.PayloadLength = uint8(length)
		if length > 0 {
			copy(response.Payload[:], message.Payload[payloadIndex:payloadIndex+length])
		}
		return true
	}
	return false
}
