package decop

import (
	"errors"
	"fmt"
)

// Transport-level errors.
var (
	// ErrConnection is returned when the controller cannot be reached or the
	// link drops mid-exchange.
	ErrConnection = errors.New("decop: connection failed")

	// ErrClosed is returned by operations on a closed client.
	ErrClosed = errors.New("decop: client closed")

	// ErrMalformedReply is returned when a reply cannot be decoded.
	ErrMalformedReply = errors.New("decop: malformed reply")

	// ErrUnsupportedValue is returned when a Go value has no command-line encoding.
	ErrUnsupportedValue = errors.New("decop: unsupported value type")
)

// DeviceError is an error reported by the controller firmware. It is passed
// through to callers unchanged.
type DeviceError struct {
	Code    int
	Message string
}

func (e *DeviceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("device error %d", e.Code)
	}
	return fmt.Sprintf("device error %d: %s", e.Code, e.Message)
}

// IsDeviceError reports whether err originated on the controller rather than
// in the transport.
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
