package profile

import (
	"fmt"

	"github.com/nerrad567/usbgate/internal/device"
)

// FromRecord validates a profiles record and builds the authorisation model.
//
// The whole load is rejected with an error matching ErrConfigInvalid when:
//   - the record has no top-level user list
//   - a user entry has no login key
//   - a user entry has no device list
//   - a device entry is missing any of the vid/pid/serial keys
//   - two user entries share a login
//
// The vid/pid/serial keys must exist syntactically; wildcard values (zero id,
// empty serial) are accepted and become absent fingerprint fields. On any
// failure no partial model is returned.
func FromRecord(rec Record) (*Model, error) {
	if rec.Users == nil {
		return nil, fmt.Errorf("%w: no users list", ErrConfigInvalid)
	}

	users := make(map[string]User, len(rec.Users))
	for i, ur := range rec.Users {
		if ur.Login == nil {
			return nil, fmt.Errorf("%w: user entry %d has no login", ErrConfigInvalid, i)
		}
		login := *ur.Login
		if ur.Devices == nil {
			return nil, fmt.Errorf("%w: user %q has no devices list", ErrConfigInvalid, login)
		}
		if _, exists := users[login]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLogin, login)
		}

		fingerprints := make([]device.Fingerprint, 0, len(ur.Devices))
		for j, dr := range ur.Devices {
			if dr.VendorID == nil {
				return nil, fmt.Errorf("%w: user %q device %d has no vid", ErrConfigInvalid, login, j)
			}
			if dr.ProductID == nil {
				return nil, fmt.Errorf("%w: user %q device %d has no pid", ErrConfigInvalid, login, j)
			}
			if dr.Serial == nil {
				return nil, fmt.Errorf("%w: user %q device %d has no serial", ErrConfigInvalid, login, j)
			}
			fingerprints = append(fingerprints,
				device.NewFingerprint(*dr.VendorID, *dr.ProductID, *dr.Serial))
		}

		users[login] = User{Login: login, Fingerprints: fingerprints}
	}

	return &Model{users: users}, nil
}
