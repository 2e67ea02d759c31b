package uds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestEqual(t *testing.T) {
	a := &Request{ArbitrationID: 0x7E0, Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0C}
	b := &Request{ArbitrationID: 0x7E0, Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0C}
	require.True(t, RequestEqual(a, b))

	c := &Request{ArbitrationID: 0x7E0, Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0D}
	require.False(t, RequestEqual(a, c))

	d := &Request{ArbitrationID: 0x7E1, Mode: ModePowertrainDiagnosticRequest, HasPID: true, PID: 0x0C}
	require.False(t, RequestEqual(a, d))
}
