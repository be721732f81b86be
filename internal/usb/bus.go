package usb

import (
	"context"

	"github.com/nerrad567/usbgate/internal/device"
)

// Bus produces a snapshot of the currently attached USB devices.
//
// Implementations must treat the snapshot as valid only for the duration of
// one call: no device handles may outlive Devices. An empty bus is a nil or
// empty slice with a nil error; ErrBusUnavailable is reserved for failures to
// reach the bus at all.
type Bus interface {
	Devices(ctx context.Context) ([]device.Attributes, error)
}
