// Package usb enumerates the host's USB bus and probes attached devices for
// their identifying attributes.
//
// The package exposes two things:
//
//   - Bus: the small interface the authenticator consumes. Anything that can
//     produce a snapshot of attached devices satisfies it, which is how tests
//     substitute a stub for real hardware.
//   - Session: the libusb-backed implementation (via github.com/google/gousb).
//
// A Session acquires a libusb context, lists the attached devices, probes
// each one, and releases everything before Devices returns; success, empty
// bus, and failure all release the session. With Options.ReuseSession the
// context is instead held for the lifetime of the Session and released by
// Close, for callers that perform many attempts in one process.
//
// Probing is fail-soft: a device that cannot be opened still
// contributes its vendor and product ids from the descriptor; only its serial
// is absent. A failed or empty serial read is never an error. Serial strings
// are bounded to MaxSerialLength bytes and carry an explicit truncation flag
// when cut short.
//
// The bus is consumed read-only: descriptor reads only, no interface
// claiming, no device state changes.
package usb
