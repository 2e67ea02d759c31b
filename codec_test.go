package uds

import (
	"testing"

	"github.com/elektrosoftlab/isotpuds/isotp"
	"github.com/stretchr/testify/require"
)

func TestAutosetPIDLength(t *testing.T) {
	require.EqualValues(t, 1, autosetPIDLength(ModePowertrainDiagnosticRequest, 0x0C, 0))
	require.EqualValues(t, 1, autosetPIDLength(ModeEnhancedDiagnosticRequest, 0x00FF, 0))
	require.EqualValues(t, 2, autosetPIDLength(ModeEnhancedDiagnosticRequest, 0x0100, 0))
	require.EqualValues(t, 2, autosetPIDLength(ModeEnhancedDiagnosticRequest, 0x0100, 2), "explicit length is never overridden")
}

func TestEncodePayloadStandardPID(t *testing.T) {
	req := &Request{Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0C}
	payload := EncodePayload(req)
	require.Equal(t, []byte{0x01, 0x0C}, payload)
	require.EqualValues(t, 1, req.PIDLength)
}

func TestEncodePayloadEnhancedPID(t *testing.T) {
	req := &Request{Mode: ModeEnhancedDiagnosticRequest, HasPID: true, PID: 0x0105}
	payload := EncodePayload(req)
	require.Equal(t, []byte{0x22, 0x01, 0x05}, payload)
	require.EqualValues(t, 2, req.PIDLength)
}

func TestEncodePayloadWithBody(t *testing.T) {
	req := &Request{Mode: ModeEmissionsDTCClear}
	req.PayloadLength = 2
	req.Payload[0] = 0xAA
	req.Payload[1] = 0xBB
	payload := EncodePayload(req)
	require.Equal(t, []byte{0x04, 0xAA, 0xBB}, payload)
}

func TestClassifyNegativeResponse(t *testing.T) {
	msg := isotp.Message{Size: 3, Payload: []byte{0x7F, 0x01, 0x12}}
	response := &Response{Mode: Mode(msg.Payload[0])}
	matched := classifyNegativeResponse(&msg, response)
	require.True(t, matched)
	require.Equal(t, ModePowertrainDiagnosticRequest, response.Mode)
	require.Equal(t, NRCSubFunctionNotSupported, response.NegativeResponseCode)
	require.True(t, response.Completed)
	require.False(t, response.Success)
}

func TestClassifyPositiveResponseWithMatchingPID(t *testing.T) {
	request := &Request{Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0C, PIDLength: 1}
	msg := isotp.Message{Size: 4, Payload: []byte{0x41, 0x0C, 0x1A, 0xF8}}
	response := &Response{Mode: Mode(msg.Payload[0])}
	matched := classifyPositiveResponse(request, &msg, response)
	require.True(t, matched)
	require.True(t, response.Completed)
	require.True(t, response.Success)
	require.EqualValues(t, 2, response.PayloadLength)
	require.Equal(t, []byte{0x1A, 0xF8}, response.Payload[:response.PayloadLength])
}

func TestClassifyPositiveResponseMismatchedPIDKeepsScanning(t *testing.T) {
	request := &Request{Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0C, PIDLength: 1}
	msg := isotp.Message{Size: 3, Payload: []byte{0x41, 0x0D, 0x32}}
	response := &Response{Mode: Mode(msg.Payload[0])}
	matched := classifyPositiveResponse(request, &msg, response)
	require.False(t, matched)
	require.False(t, response.Completed)
}

func TestClassifyPositiveResponseWrongMode(t *testing.T) {
	request := &Request{Mode: ModePowertrainDiagnosticRequest}
	msg := isotp.Message{Size: 1, Payload: []byte{0x51}}
	response := &Response{Mode: Mode(msg.Payload[0])}
	require.False(t, classifyPositiveResponse(request, &msg, response))
}
