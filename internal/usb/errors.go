package usb

import "errors"

// Domain errors for the usb package.
var (
	// ErrBusUnavailable is returned when a bus session cannot be established
	// or the attached-device list cannot be read. It fails the current
	// authentication attempt closed; per-device probe failures never surface
	// as errors.
	ErrBusUnavailable = errors.New("usb: bus unavailable")

	// ErrSessionClosed is returned when Devices is called on a closed
	// reusable session.
	ErrSessionClosed = errors.New("usb: session closed")
)
