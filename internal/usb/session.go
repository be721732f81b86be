package usb

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/gousb"

	"github.com/nerrad567/usbgate/internal/device"
	"github.com/nerrad567/usbgate/internal/infrastructure/logging"
)

// MaxSerialLength is the read bound for serial-number string descriptors, in
// bytes. Longer serials are truncated, never overrun, and the truncation is
// reported on the device attributes rather than hidden.
const MaxSerialLength = 256

// Options configures a Session.
type Options struct {
	// ReuseSession keeps one libusb context open for the lifetime of the
	// Session instead of acquiring and releasing one per Devices call.
	// Default false: each authentication attempt sees the live bus through a
	// fresh session and holds no USB state between attempts.
	ReuseSession bool
}

// Session is the libusb-backed Bus implementation.
//
// The zero value is not usable; create one with NewSession. A Session is safe
// for sequential use; authentication attempts are single-threaded by design.
type Session struct {
	opts Options
	log  *logging.Logger

	mu     sync.Mutex
	shared *gousb.Context // non-nil only when ReuseSession is set and acquired
	closed bool
}

// Session implements Bus.
var _ Bus = (*Session)(nil)

// NewSession creates a Session with the given options.
func NewSession(opts Options) *Session {
	return &Session{opts: opts, log: logging.Default()}
}

// SetLogger sets the logger for probe diagnostics.
func (s *Session) SetLogger(log *logging.Logger) {
	s.log = log.With("component", "usb")
}

// Devices enumerates the bus and probes every attached device.
//
// The bus session is acquired and released within this call (unless the
// session is reused), on every exit path. Failure to establish the session
// or list devices returns ErrBusUnavailable; an attached device that cannot
// be opened or read degrades to partial attributes instead of failing the
// enumeration.
func (s *Session) Devices(ctx context.Context) ([]device.Attributes, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBusUnavailable, err)
	}

	usbCtx, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	// The opener callback sees every attached device's descriptor, opened or
	// not, so vendor/product survive open failures.
	var descs []*gousb.DeviceDesc
	opened, openErr := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		descs = append(descs, desc)
		return true
	})

	if openErr != nil {
		if len(descs) == 0 {
			// Listing itself failed; nothing to probe.
			for _, dev := range opened {
				_ = dev.Close()
			}
			return nil, fmt.Errorf("%w: listing devices: %v", ErrBusUnavailable, openErr)
		}
		// Some devices refused to open. They still match on vendor/product.
		s.log.Debug("some devices could not be opened", "error", openErr)
	}

	serials := make(map[*gousb.DeviceDesc]probedSerial, len(opened))
	for _, dev := range opened {
		if sn := s.probeSerial(dev); sn != nil {
			serials[dev.Desc] = *sn
		}
		if closeErr := dev.Close(); closeErr != nil {
			s.log.Debug("closing device handle", "error", closeErr)
		}
	}

	attrs := make([]device.Attributes, 0, len(descs))
	for _, desc := range descs {
		a := device.Attributes{
			Vendor:  device.ID(desc.Vendor),
			Product: device.ID(desc.Product),
		}
		if sn, ok := serials[desc]; ok {
			value := sn.value
			a.Serial = &value
			a.SerialTruncated = sn.truncated
		}
		attrs = append(attrs, a)
	}

	return attrs, nil
}

// Close releases a reused bus session. It is a no-op for per-call sessions.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.shared == nil {
		return nil
	}
	ctx := s.shared
	s.shared = nil
	if err := ctx.Close(); err != nil {
		return fmt.Errorf("closing usb context: %w", err)
	}
	return nil
}

// probedSerial is a serial read result: the (possibly truncated) value and
// whether truncation occurred.
type probedSerial struct {
	value     string
	truncated bool
}

// probeSerial reads one device's serial-number string descriptor. A missing,
// empty, or failed read yields nil: absent, not an error.
func (s *Session) probeSerial(dev *gousb.Device) *probedSerial {
	sn, err := dev.SerialNumber()
	if err != nil {
		s.log.Debug("serial read failed",
			"vendor", dev.Desc.Vendor.String(),
			"product", dev.Desc.Product.String(),
			"error", err,
		)
		return nil
	}
	if sn == "" {
		return nil
	}
	value, truncated := boundSerial(sn)
	return &probedSerial{value: value, truncated: truncated}
}

// boundSerial enforces MaxSerialLength on a serial string, reporting whether
// it was cut short.
func boundSerial(sn string) (string, bool) {
	if len(sn) <= MaxSerialLength {
		return sn, false
	}
	return sn[:MaxSerialLength], true
}

// acquire returns a libusb context and its release function. For per-call
// sessions the release closes the context; for reused sessions it is a no-op
// and Close owns the context.
func (s *Session) acquire() (*gousb.Context, func(), error) {
	if !s.opts.ReuseSession {
		ctx, err := newContext()
		if err != nil {
			return nil, nil, err
		}
		return ctx, func() {
			if err := ctx.Close(); err != nil {
				s.log.Debug("closing usb context", "error", err)
			}
		}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, nil, ErrSessionClosed
	}
	if s.shared == nil {
		ctx, err := newContext()
		if err != nil {
			return nil, nil, err
		}
		s.shared = ctx
	}
	return s.shared, func() {}, nil
}

// newContext initialises a libusb context. gousb panics when libusb_init
// fails, so the panic is converted into ErrBusUnavailable here.
func newContext() (usbCtx *gousb.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			usbCtx = nil
			err = fmt.Errorf("%w: initialising libusb: %v", ErrBusUnavailable, r)
		}
	}()
	return gousb.NewContext(), nil
}
