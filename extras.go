package uds

// DiagnosticTroubleCodeGroup is the system a DTC belongs to, encoded in its
// first character (P, C, B or U).
type DiagnosticTroubleCodeGroup int

const (
	GroupPowertrain DiagnosticTroubleCodeGroup = iota
	GroupChassis
	GroupBody
	GroupNetwork
)

// DiagnosticTroubleCode is a single decoded DTC.
type DiagnosticTroubleCode struct {
	Group    DiagnosticTroubleCodeGroup
	GroupNum uint8
	Code     uint8
}

// DTCType selects which mode a trouble-code request targets.
type DTCType int

const (
	DTCEmissions DTCType = iota
	DTCDriveCycle
	DTCPermanent
)

// The following helpers mirror extras.c in the original library, which
// stakes out the shape of VIN retrieval, DTC listing/clearing, MIL status
// and PID enumeration but never implements any of it ("TODO everything
// below here is for future work"). This port preserves that boundary rather
// than inventing semantics with nothing upstream to ground them against:
// every one of them reports ErrUnsupported instead of returning a
// zero-value handle that looks like it did something.

// RequestMalfunctionIndicatorStatus would decode the MIL bit from mode 0x01
// PID 0x01. Not implemented upstream; always returns ErrUnsupported.
func RequestMalfunctionIndicatorStatus(shims Shims, callback func(on bool)) (*RequestHandle, error) {
	return nil, ErrUnsupported
}

// RequestVIN would request and reassemble the vehicle identification number
// (mode 0x09 PID 0x02). Not implemented upstream; always returns
// ErrUnsupported.
func RequestVIN(shims Shims, callback func(vin string)) (*RequestHandle, error) {
	return nil, ErrUnsupported
}

// RequestDTC would request and parse the trouble-code list for dtcType. Not
// implemented upstream; always returns ErrUnsupported.
func RequestDTC(shims Shims, dtcType DTCType, callback func([]DiagnosticTroubleCode)) (*RequestHandle, error) {
	return nil, ErrUnsupported
}

// ClearDTC would issue the mode 0x04 clear-codes request. Not implemented
// upstream; always returns ErrUnsupported.
func ClearDTC(shims Shims) error {
	return ErrUnsupported
}

// EnumeratePIDs would request PID 0x00 and split the supported-PID bitmask
// response into individual PID values. Not implemented upstream; always
// returns ErrUnsupported.
func EnumeratePIDs(shims Shims, request Request, callback func(*Response, []uint16)) (*RequestHandle, error) {
	return nil, ErrUnsupported
}
