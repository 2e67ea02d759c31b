package uds

// Shims bundles the capabilities the diagnostic layer needs from the wider
// system: a log sink, a way to push a raw CAN frame onto the bus, and a
// timer scheduler, which the core does not call. Any field may be left nil;
// the library null-checks before use.
type Shims struct {
	// Log is a printf-style sink. May be nil.
	Log func(format string, args ...interface{})
	// SendCAN pushes a raw CAN frame and reports whether it was enqueued.
	SendCAN func(arbitrationID uint32, data []byte) bool
	// SetTimer is plumbing for a future multi-frame-send retry path. Not
	// exercised by the core today; may be nil.
	SetTimer func(ms uint16, callback func())
	// Metrics, if set, is notified of request handle lifecycle events.
	Metrics *Metrics
}

// InitShims builds a Shims bundle from the three capability functions. Any
// of them may be nil. Metrics instrumentation can be attached afterward by
// setting the Metrics field directly.
func InitShims(log func(format string, args ...interface{}), sendCAN func(arbitrationID uint32, data []byte) bool, setTimer func(ms uint16, callback func())) Shims {
	return Shims{Log: log, SendCAN: sendCAN, SetTimer: setTimer}
}

func (s *Shims) observeSent(success bool) {
	if s != nil && s.Metrics != nil {
		s.Metrics.ObserveSent(success)
	}
}

func (s *Shims) observeResponse(response *Response) {
	if s != nil && s.Metrics != nil {
		s.Metrics.ObserveResponse(response)
	}
}

func (s *Shims) logf(format string, args ...interface{}) {
	if s != nil && s.Log != nil {
		s.Log(format, args...)
	}
}
