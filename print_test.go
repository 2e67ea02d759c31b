package uds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestToStringWithPIDAndPayload(t *testing.T) {
	req := &Request{ArbitrationID: 0x7E0, Mode: ModeEnhancedDiagnosticRequest, HasPID: true, PID: 0x0105}
	req.PayloadLength = 2
	req.Payload[0] = 0xAA
	req.Payload[1] = 0xBB
	s := RequestToString(req)
	require.Contains(t, s, "arb_id: 0x7e0")
	require.Contains(t, s, "mode: 0x22")
	require.Contains(t, s, "pid: 0x105")
	require.Contains(t, s, "payload: 0xaabb")
}

func TestRequestToStringNoPayload(t *testing.T) {
	req := &Request{ArbitrationID: 0x7DF, Mode: ModeEmissionsDTCClear}
	require.Contains(t, RequestToString(req), "no payload")
}

func TestResponseToStringNegative(t *testing.T) {
	resp := &Response{
		ArbitrationID:        0x7E8,
		Mode:                 ModePowertrainDiagnosticRequest,
		Success:              false,
		NegativeResponseCode: NRCRequestOutOfRange,
	}
	s := ResponseToString(resp)
	require.Contains(t, s, "nrc: 0x31 (request out of range)")
}

func TestResponseToStringPositive(t *testing.T) {
	resp := &Response{ArbitrationID: 0x7E8, Mode: ModePowertrainDiagnosticRequest, Success: true}
	resp.PayloadLength = 1
	resp.Payload[0] = 0x64
	s := ResponseToString(resp)
	require.NotContains(t, s, "nrc:")
	require.Contains(t, s, "payload: 0x64")
}
