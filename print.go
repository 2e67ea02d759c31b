package uds

import (
	"fmt"
	"strings"
)

// RequestToString renders request for logging: arbitration ID, mode,
// optional PID, and payload bytes (or "no payload").
func RequestToString(request *Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "arb_id: 0x%x, mode: 0x%x, ", request.ArbitrationID, uint8(request.Mode))
	if request.HasPID {
		fmt.Fprintf(&b, "pid: 0x%x, ", request.PID)
	}
	if request.PayloadLength > 0 {
		b.WriteString("payload: 0x")
		for _, by := range request.Payload[:request.PayloadLength] {
			fmt.Fprintf(&b, "%02x", by)
		}
	} else {
		b.WriteString("no payload")
	}
	return b.String()
}

// ResponseToString renders response for logging: arbitration ID, mode,
// optional PID, the negative response code when unsuccessful, and payload
// bytes (or "no payload").
func ResponseToString(response *Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "arb_id: 0x%x, mode: 0x%x, ", response.ArbitrationID, uint8(response.Mode))
	if response.HasPID {
		fmt.Fprintf(&b, "pid: 0x%x, ", response.PID)
	}
	if !response.Success {
		fmt.Fprintf(&b, "nrc: 0x%x (%s), ", uint8(response.NegativeResponseCode), response.NegativeResponseCode)
	}
	if response.PayloadLength > 0 {
		b.WriteString("payload: 0x")
		for _, by := range response.Payload[:response.PayloadLength] {
			fmt.Fprintf(&b, "%02x", by)
		}
	} else {
		b.WriteString("no payload")
	}
	return b.String()
}
