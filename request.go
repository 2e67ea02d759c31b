package uds

// Mode is the UDS service identifier, the first byte of a request.
type Mode uint8

// Friendly names for the OBD-II modes, carried over from the original
// library's DiagnosticMode enum.
const (
	ModePowertrainDiagnosticRequest  Mode = 0x01
	ModePowertrainFreezeFrameRequest Mode = 0x02
	ModeEmissionsDTCRequest          Mode = 0x03
	ModeEmissionsDTCClear            Mode = 0x04
	ModeTestResults                  Mode = 0x06
	ModeDriveCycleDTCRequest         Mode = 0x07
	ModeControl                      Mode = 0x08
	ModeVehicleInformation           Mode = 0x09
	ModePermanentDTCRequest          Mode = 0x0A
	ModeEnhancedDiagnosticRequest    Mode = 0x22
)

const (
	// FunctionalBroadcastID is the sentinel arbitration ID soliciting a
	// response from any ECU on the bus.
	FunctionalBroadcastID uint32 = 0x7DF
	// FunctionalResponseStart is the first of the 8 arbitration IDs ECUs
	// reply to a functional broadcast on.
	FunctionalResponseStart uint32 = 0x7E8
	// FunctionalResponseCount is the number of functional response IDs.
	FunctionalResponseCount = 8
	// physicalResponseOffset is added to a physical request's arbitration
	// ID to get the ECU's response ID.
	physicalResponseOffset uint32 = 0x08

	maxRequestPayloadLength  = 7
	maxResponsePayloadLength = 127
	// maxSingleFrameDiagnosticPayload bounds mode+pid+payload for a request
	// that must fit a single ISO-TP frame.
	maxSingleFrameDiagnosticPayload = 6
)

// PIDKind selects between the two common PID addressing conventions used by
// RequestPID.
type PIDKind int

const (
	// StandardPID uses mode 0x01 and a 1-byte PID.
	StandardPID PIDKind = iota
	// EnhancedPID uses mode 0x22 and a 2-byte PID.
	EnhancedPID
)

// Request describes a single diagnostic request to send to the bus. The
// zero value is usable provided ArbitrationID and Mode are set.
type Request struct {
	ArbitrationID  uint32
	Mode           Mode
	HasPID         bool
	PID            uint16
	// PIDLength is 0 (auto-derive), 1 or 2. Ignored if HasPID is false.
	PIDLength      uint8
	Payload        [maxRequestPayloadLength]byte
	PayloadLength  uint8
	NoFramePadding bool
}

// RequestEqual reports whether two requests have the same "fingerprint":
// arbitration ID, mode, and PID (or lack of one).
func RequestEqual(a, b *Request) bool {
	if a.ArbitrationID != b.ArbitrationID || a.Mode != b.Mode || a.HasPID != b.HasPID {
		return false
	}
	return a.PID == b.PID
}
