package device

import "fmt"

// ID is a 16-bit USB vendor or product identifier.
type ID uint16

// String returns the identifier in the conventional four-digit hex form.
func (id ID) String() string {
	return fmt.Sprintf("%04x", uint16(id))
}

// Fingerprint is one authorised device descriptor from a user's profile.
//
// A nil field is a wildcard and imposes no constraint on the corresponding
// device attribute. A Fingerprint with all three fields nil therefore matches
// every attached device, a legal but dangerous profile entry; loaders keep
// it as-is and callers are expected to warn about it rather than reject it.
//
// Fingerprints are constructed once at profile-load time and are immutable
// thereafter.
type Fingerprint struct {
	Vendor  *ID
	Product *ID
	Serial  *string
}

// NewFingerprint builds a Fingerprint from the legacy wire encoding, where a
// zero vendor/product id and an empty serial mean "any". The zero values are
// translated into absent fields here so the rest of the engine never has to
// treat zero specially.
func NewFingerprint(vendor, product uint16, serial string) Fingerprint {
	var fp Fingerprint
	if vendor != 0 {
		v := ID(vendor)
		fp.Vendor = &v
	}
	if product != 0 {
		p := ID(product)
		fp.Product = &p
	}
	if serial != "" {
		s := serial
		fp.Serial = &s
	}
	return fp
}

// IsUnrestricted reports whether every field is a wildcard, i.e. the
// fingerprint matches any attached device.
func (f Fingerprint) IsUnrestricted() bool {
	return f.Vendor == nil && f.Product == nil && f.Serial == nil
}

// String renders the fingerprint for logs, with "*" for wildcard fields.
// Serials are included verbatim; they are device identifiers, not secrets.
func (f Fingerprint) String() string {
	vendor, product, serial := "*", "*", "*"
	if f.Vendor != nil {
		vendor = f.Vendor.String()
	}
	if f.Product != nil {
		product = f.Product.String()
	}
	if f.Serial != nil {
		serial = *f.Serial
	}
	return fmt.Sprintf("%s:%s serial=%s", vendor, product, serial)
}

// Attributes is a snapshot of one attached device's identifying attributes.
//
// It is produced by the bus enumerator during a single enumeration pass and
// must not be retained across authentication attempts. A nil Serial means the
// device could not be opened, has no serial descriptor, or the read failed;
// that is a soft degradation, not an error.
type Attributes struct {
	Vendor  ID
	Product ID
	Serial  *string

	// SerialTruncated is set when the serial string descriptor exceeded the
	// enumerator's read bound and was cut short. The truncated value still
	// participates in matching; the flag exists so operators can see why an
	// exact-serial fingerprint fails against such a device.
	SerialTruncated bool
}

// String renders the device attributes for logs.
func (a Attributes) String() string {
	serial := "-"
	if a.Serial != nil {
		serial = *a.Serial
		if a.SerialTruncated {
			serial += " (truncated)"
		}
	}
	return fmt.Sprintf("%s:%s serial=%s", a.Vendor, a.Product, serial)
}
