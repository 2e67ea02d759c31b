// Package obd2 decodes the numeric Mode 0x01 PIDs defined by SAE J1979 into
// engineering units, on top of the generic request/response machinery in
// the root package.
package obd2

import "github.com/elektrosoftlab/isotpuds"

// Standard mode 0x01 PIDs. Decode has a dedicated formula for some of them;
// the others fall back to the raw big-endian payload integer.
const (
	PIDFuelSystemStatus           = 0x03
	PIDEngineLoad                 = 0x04
	PIDCoolantTemp                = 0x05
	PIDShortTermFuelTrimBank1     = 0x06
	PIDIntakeManifoldPressure     = 0x0B
	PIDEngineRPM                  = 0x0C
	PIDVehicleSpeed               = 0x0D
	PIDTimingAdvance              = 0x0E
	PIDIntakeAirTemp              = 0x0F
	PIDMassAirFlow                = 0x10
	PIDThrottlePosition           = 0x11
	PIDDistanceWithMIL            = 0x21
	PIDFuelRailPressure           = 0x22
	PIDCommandedEGR               = 0x2C
	PIDFuelLevel                  = 0x2F
	PIDCatalystTempBank1Sensor1   = 0x3C
	PIDRelativeThrottle           = 0x45
	PIDAmbientAirTemp             = 0x46
	PIDAbsoluteThrottleB          = 0x47
	PIDAcceleratorPedalD          = 0x49
	PIDAcceleratorPedalE          = 0x4A
	PIDCommandedThrottleActuator  = 0x4C
	PIDFuelType                   = 0x51
	PIDEthanolFuelPercent         = 0x52
	PIDOilTemp                    = 0x5C
	PIDFuelInjectionTiming        = 0x5D
	PIDEngineFuelRate             = 0x5E
	PIDHybridBatteryRemaining     = 0x5B
	PIDRelativeAcceleratorPedal   = 0x5A
	PIDAbsoluteBarometricPressure = 0x33
	PIDControlModuleVoltage       = 0x42
	PIDAbsoluteLoad               = 0x43
	PIDCommandedEquivRatio        = 0x44
	PIDTimeSinceEngineStart       = 0x1F
	PIDWarmupsSinceCodesCleared   = 0x30
	PIDDistanceSinceCodesCleared  = 0x31
	PIDEvapSystemVaporPressure    = 0x32
	PIDOxygenSensor1FuelTrim      = 0x62
)

// Decode converts a positive Mode 0x01 response into engineering units
// according to the formulas in SAE J1979 Table 1, falling back to the raw
// big-endian payload integer for PIDs with no special-cased scaling (either
// because the value is bit-encoded rather than numeric, or it just isn't in
// this table yet).
//
// A response shorter than a formula expects is treated as zero-padded
// rather than rejected, the same way the original C implementation reads
// past a short response into the rest of its statically-sized payload
// buffer.
func Decode(response *uds.Response) float64 {
	return decodeByPID(response.PID, response.Payload, response.PayloadLength)
}

func decodeByPID(pid uint16, payload [127]byte, length uint8) float64 {
	byte0 := func() float64 {
		if length > 0 {
			return float64(payload[0])
		}
		return 0
	}
	byte1 := func() float64 {
		if length > 1 {
			return float64(payload[1])
		}
		return 0
	}

	switch pid {
	case 0x0A: // fuel pressure
		return byte0() * 3
	case PIDEngineRPM:
		return (byte0()*256 + byte1()) / 4.0
	case PIDVehicleSpeed, PIDIntakeManifoldPressure, PIDAbsoluteBarometricPressure:
		return byte0()
	case PIDMassAirFlow:
		return (byte0()*256 + byte1()) / 100.0
	case PIDEngineLoad, PIDThrottlePosition, PIDFuelLevel, PIDRelativeThrottle,
		PIDCommandedThrottleActuator, PIDEthanolFuelPercent, PIDRelativeAcceleratorPedal:
		return byte0() * 100.0 / 255.0
	case PIDAmbientAirTemp, PIDOilTemp, PIDIntakeAirTemp, PIDCoolantTemp:
		return byte0() - 40
	case PIDOxygenSensor1FuelTrim:
		return byte0() - 125
	default:
		var v uint64
		for _, b := range payload[:length] {
			v = v<<8 | uint64(b)
		}
		return float64(v)
	}
}
