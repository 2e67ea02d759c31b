package uds

import "errors"

// Sentinel errors of this package. Callers should compare with errors.Is
// rather than switching on the error's text. ErrUnsupported is returned by
// the extras helpers; the other three are written to the Shims.Log sink where
// they are detected and are not returned by any function.
var (
	// ErrSendFailed means the injected SendCAN shim reported failure.
	ErrSendFailed = errors.New("uds: send failed")
	// ErrHandleCompleted means an operation was attempted on a RequestHandle
	// that has already finished.
	ErrHandleCompleted = errors.New("uds: request handle already completed")
	// ErrMalformedFrame means a received CAN frame could not be interpreted
	// as part of a diagnostic response.
	ErrMalformedFrame = errors.New("uds: malformed frame")
	// ErrUnsupported is returned by the extras helpers that the original
	// library never implemented (see extras.go).
	ErrUnsupported = errors.New("uds: operation not supported")
)
