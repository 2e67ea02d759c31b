package uds

import "fmt"

// NegativeResponseCode explains why an ECU refused a request. Values outside
// the recognized enumeration are passed through opaquely as their raw byte.
type NegativeResponseCode uint8

// Recognized negative response codes (see canbushack.com's NRC list, the
// same source the original library credits).
const (
	NRCSuccess                    NegativeResponseCode = 0x00
	NRCServiceNotSupported        NegativeResponseCode = 0x11
	NRCSubFunctionNotSupported    NegativeResponseCode = 0x12
	NRCIncorrectLengthOrFormat    NegativeResponseCode = 0x13
	NRCConditionsNotCorrect       NegativeResponseCode = 0x22
	NRCRequestOutOfRange          NegativeResponseCode = 0x31
	NRCSecurityAccessDenied       NegativeResponseCode = 0x33
	NRCInvalidKey                 NegativeResponseCode = 0x35
	NRCTooManyAttempts            NegativeResponseCode = 0x36
	NRCTimeDelayNotExpired        NegativeResponseCode = 0x37
	NRCResponsePending            NegativeResponseCode = 0x78
)

// String renders known codes by name and unrecognized ones as a raw byte,
// never clamping or zeroing an unknown value.
func (c NegativeResponseCode) String() string {
	switch c {
	case NRCSuccess:
		return "success"
	case NRCServiceNotSupported:
		return "service not supported"
	case NRCSubFunctionNotSupported:
		return "sub-function not supported"
	case NRCIncorrectLengthOrFormat:
		return "incorrect length or format"
	case NRCConditionsNotCorrect:
		return "conditions not correct"
	case NRCRequestOutOfRange:
		return "request out of range"
	case NRCSecurityAccessDenied:
		return "security access denied"
	case NRCInvalidKey:
		return "invalid key"
	case NRCTooManyAttempts:
		return "too many attempts"
	case NRCTimeDelayNotExpired:
		return "time delay not expired"
	case NRCResponsePending:
		return "response pending"
	default:
		return fmt.Sprintf("0x%02x", uint8(c))
	}
}

// Response is a partially or fully assembled reply to a Request. Callers
// must check Completed before acting on the rest of the fields.
type Response struct {
	Completed            bool
	Success              bool
	MultiFrame            bool
	ArbitrationID         uint32
	Mode                  Mode
	HasPID                bool
	PID                   uint16
	NegativeResponseCode  NegativeResponseCode
	Payload               [maxResponsePayloadLength]byte
	PayloadLength         uint8
}


// PayloadToInteger interprets the entire response payload as a single
// big-endian integer.
func PayloadToInteger(r *Response) uint64 {
	var v uint64
	for i := 0; i < int(r.PayloadLength); i++ {
		v = v<<8 | uint64(r.Payload[i])
	}
	return v
}
