package dlc

import (
	"errors"
	"fmt"
)

var (
	ErrWavelengthUnsupported  = errors.New("cannot use wavelength setpoint: laser has no wavelength setting")
	ErrTemperatureUnsupported = errors.New("cannot use diode temperature setpoint: laser has no temperature setting")
	ErrFileExists             = errors.New("file already exists")
	ErrInvalidChannel         = errors.New("invalid channel")
	ErrInvalidRemoteUnit      = errors.New("invalid remote unit")
	ErrNoCalibration          = errors.New("no scan calibration set")
	ErrClosed                 = errors.New("controller is closed")
)

// OutOfRangeError reports a value rejected by local validation before any
// write reached the device. For scan offset/amplitude the rejected value is
// the resulting scan window.
type OutOfRangeError struct {
	Parameter string
	Value     float64
	Window    *Range
	Range     Range
}

func (e *OutOfRangeError) Error() string {
	if e.Window != nil {
		return fmt.Sprintf("%s is not within the permitted %s range %s", e.Window, e.Parameter, e.Range)
	}
	return fmt.Sprintf("%g is not within the permitted %s range %s", e.Value, e.Parameter, e.Range)
}

// IsOutOfRange reports whether err is an OutOfRangeError.
func IsOutOfRange(err error) bool {
	var oor *OutOfRangeError
	return errors.As(err, &oor)
}
