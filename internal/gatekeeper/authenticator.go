package gatekeeper

import (
	"context"
	"fmt"

	"github.com/nerrad567/usbgate/internal/device"
	"github.com/nerrad567/usbgate/internal/infrastructure/logging"
	"github.com/nerrad567/usbgate/internal/profile"
	"github.com/nerrad567/usbgate/internal/usb"
)

// Authenticator decides login attempts against a profile model and the live
// USB bus.
type Authenticator struct {
	bus usb.Bus
	log *logging.Logger
}

// New creates an Authenticator backed by the given bus.
func New(bus usb.Bus) *Authenticator {
	return &Authenticator{
		bus: bus,
		log: logging.Default(),
	}
}

// SetLogger sets the logger for decision diagnostics.
func (a *Authenticator) SetLogger(log *logging.Logger) {
	a.log = log.With("component", "gatekeeper")
}

// Authenticate reports whether a device matching one of the login's
// fingerprints is currently attached.
//
// An unknown login returns false without touching the bus. A bus failure
// returns false together with the error; the boolean alone already encodes
// the fail-closed outcome. Fingerprints are tried in profile order, devices
// in enumeration order, and the first match wins.
func (a *Authenticator) Authenticate(ctx context.Context, model *profile.Model, login string) (bool, error) {
	user, ok := model.Lookup(login)
	if !ok {
		a.log.Debug("login not in profiles", "login", login)
		return false, nil
	}
	if len(user.Fingerprints) == 0 {
		a.log.Debug("login has no fingerprints", "login", login)
		return false, nil
	}

	for _, fp := range user.Fingerprints {
		if fp.IsUnrestricted() {
			a.log.Warn("profile fingerprint matches any device",
				"login", login,
				"fingerprint", fp.String(),
			)
		}
	}

	devices, err := a.bus.Devices(ctx)
	if err != nil {
		return false, fmt.Errorf("enumerating bus: %w", err)
	}
	a.log.Debug("bus enumerated", "login", login, "devices", len(devices))

	for _, fp := range user.Fingerprints {
		for _, dev := range devices {
			if device.Match(fp, dev) {
				a.log.Debug("device matched",
					"login", login,
					"fingerprint", fp.String(),
					"device", dev.String(),
				)
				return true, nil
			}
		}
	}

	return false, nil
}

// Decide runs one authentication attempt and maps it onto the host boundary:
// a found device is Allow, everything else is Deny.
func (a *Authenticator) Decide(ctx context.Context, model *profile.Model, login string) Decision {
	ok, err := a.Authenticate(ctx, model, login)
	if err != nil {
		a.log.Error("authentication attempt failed closed", "login", login, "error", err)
		return Deny
	}
	if !ok {
		a.log.Info("access denied", "login", login)
		return Deny
	}
	a.log.Info("access allowed", "login", login)
	return Allow
}
