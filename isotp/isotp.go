// Package isotp implements the transport layer from ISO 15765-2: framing and
// reassembly of payloads larger than a single 8-byte CAN frame using
// single-frame, first-frame, consecutive-frame and flow-control PCI bytes.
//
// The diagnostic layer (package uds) treats this package as an injected
// capability — spec.md calls ISO-TP reassembly, CAN transmission and timer
// scheduling "external collaborators" — but a usable end-to-end module needs
// a real implementation behind that boundary, so it lives here rather than
// as an interface with no default.
package isotp

import "github.com/elektrosoftlab/isotpuds/bitfield"

const (
	pciTypeSingleFrame       = 0x0
	pciTypeFirstFrame        = 0x1
	pciTypeConsecutiveFrame  = 0x2
	pciTypeFlowControl       = 0x3
	flowStatusContinueToSend = 0x0
	flowStatusWait           = 0x1
	flowStatusOverflow       = 0x2

	maxSingleFrameData      = 7
	firstFrameDataBytes     = 6
	consecutiveFrameDataMax = 7
	canFrameLength          = 8
)

// Frame is a single CAN frame as delivered by the underlying bus.
type Frame struct {
	ArbitrationID uint32
	Data          []byte
}

// Shims are the capabilities ISO-TP needs from the wider system: sending a
// raw CAN frame and, optionally, logging. FramePadding controls whether
// outgoing CAN frames are padded out to 8 bytes.
type Shims struct {
	Log          func(format string, args ...interface{})
	SendCAN      func(arbitrationID uint32, data []byte) bool
	FramePadding bool
}

func (s *Shims) logf(format string, args ...interface{}) {
	if s.Log != nil {
		s.Log(format, args...)
	}
}

func (s *Shims) send(arbitrationID uint32, data []byte) bool {
	if s.FramePadding {
		padded := make([]byte, canFrameLength)
		copy(padded, data)
		data = padded
	}
	if s.SendCAN == nil {
		return false
	}
	return s.SendCAN(arbitrationID, data)
}

// Message is a fully or partially reassembled ISO-TP payload.
type Message struct {
	Completed  bool
	MultiFrame bool
	Payload    []byte
	Size       int
}

// SendHandle drives transmission of a single ISO-TP payload, including
// consuming flow-control frames for multi-frame sends.
type SendHandle struct {
	Completed bool
	Success   bool

	arbitrationID uint32
	remaining     []byte
	sequence      uint8
	responseID    uint32
}

// Send starts transmitting payload on arbitrationID. If payload fits in a
// single frame, the handle is completed (success reflecting the CAN send
// result) before Send returns. Otherwise the first frame is sent and the
// handle waits for a flow-control frame via ContinueSend. responseID is the
// arbitration ID flow-control frames are expected on (the ECU's physical
// response ID), used only to scope multi-frame sends.
func Send(shims *Shims, arbitrationID uint32, payload []byte, responseID uint32) *SendHandle {
	h := &SendHandle{arbitrationID: arbitrationID, responseID: responseID}
	if len(payload) <= maxSingleFrameData {
		frame := make([]byte, 1+len(payload))
		frame[0] = byte(pciTypeSingleFrame<<4) | byte(len(payload))
		copy(frame[1:], payload)
		h.Completed = true
		h.Success = shims.send(arbitrationID, frame)
		return h
	}

	length := len(payload)
	frame := make([]byte, 8)
	frame[0] = byte(pciTypeFirstFrame<<4) | byte((length>>8)&0xF)
	frame[1] = byte(length & 0xFF)
	n := copy(frame[2:], payload[:min(firstFrameDataBytes, length)])
	h.remaining = payload[n:]
	h.sequence = 1
	h.Success = shims.send(arbitrationID, frame)
	if !h.Success {
		h.Completed = true
	}
	return h
}

// ContinueSend feeds an inbound CAN frame to an in-progress multi-frame
// send, consuming flow-control frames and emitting consecutive frames.
func (h *SendHandle) ContinueSend(shims *Shims, arbitrationID uint32, data []byte) {
	if h.Completed || arbitrationID != h.responseID || len(data) == 0 {
		return
	}
	pciType := data[0] >> 4
	if pciType != pciTypeFlowControl {
		return
	}
	switch data[0] & 0xF {
	case flowStatusOverflow:
		h.Completed = true
		h.Success = false
	case flowStatusWait:
		// no timer-driven retry in this layer (spec Non-goals); the caller
		// may simply send again later.
	case flowStatusContinueToSend:
		for len(h.remaining) > 0 {
			n := min(consecutiveFrameDataMax, len(h.remaining))
			frame := make([]byte, 1+n)
			frame[0] = byte(pciTypeConsecutiveFrame<<4) | (h.sequence & 0xF)
			copy(frame[1:], h.remaining[:n])
			if !shims.send(h.arbitrationID, frame) {
				h.Completed = true
				h.Success = false
				return
			}
			h.remaining = h.remaining[n:]
			h.sequence++
		}
		h.Completed = true
		h.Success = true
	}
}

// ReceiveHandle reassembles a single ISO-TP message arriving on one
// arbitration ID.
type ReceiveHandle struct {
	arbitrationID uint32
	requestID     uint32
	buffer        []byte
	size          int
	received      int
	sequence      uint8
	multiFrame    bool
}

// Receive opens a reassembler for messages arriving on arbitrationID.
// requestID is the arbitration ID flow-control frames are sent back on (the
// original request's arbitration ID).
func Receive(arbitrationID, requestID uint32) *ReceiveHandle {
	return &ReceiveHandle{arbitrationID: arbitrationID, requestID: requestID}
}

// ContinueReceive feeds an inbound CAN frame to the reassembler. Frames on
// any other arbitration ID are ignored.
func (h *ReceiveHandle) ContinueReceive(shims *Shims, arbitrationID uint32, data []byte) Message {
	if arbitrationID != h.arbitrationID || len(data) == 0 {
		return Message{}
	}

	pciType := data[0] >> 4
	switch pciType {
	case pciTypeSingleFrame:
		length := int(data[0] & 0xF)
		if length > len(data)-1 {
			length = len(data) - 1
		}
		return Message{Completed: true, Payload: append([]byte(nil), data[1:1+length]...), Size: length}

	case pciTypeFirstFrame:
		if len(data) < 2 {
			shims.logf("isotp: truncated first frame")
			return Message{}
		}
		length := int(bitfield.Get(data[:2], 4, 12))
		h.buffer = make([]byte, length)
		h.size = length
		h.sequence = 1
		h.multiFrame = true
		n := copy(h.buffer, data[2:min(len(data), 2+firstFrameDataBytes)])
		h.received = n
		shims.send(h.requestID, []byte{byte(pciTypeFlowControl<<4) | flowStatusContinueToSend, 0x00, 0x00})
		if h.received >= h.size {
			return h.complete()
		}
		return Message{MultiFrame: true}

	case pciTypeConsecutiveFrame:
		if h.size == 0 {
			return Message{}
		}
		seq := data[0] & 0xF
		if seq != h.sequence&0xF {
			shims.logf("isotp: unexpected consecutive frame sequence number %d (expected %d)", seq, h.sequence&0xF)
			return Message{MultiFrame: true}
		}
		n := copy(h.buffer[h.received:], data[1:])
		h.received += n
		h.sequence++
		if h.received >= h.size {
			return h.complete()
		}
		return Message{MultiFrame: true}

	default:
		return Message{}
	}
}

func (h *ReceiveHandle) complete() Message {
	return Message{Completed: true, MultiFrame: h.multiFrame, Payload: h.buffer, Size: h.size}
}
