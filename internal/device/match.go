package device

// Match reports whether one attached device satisfies a profile fingerprint.
//
// The function is pure and total: it never fails, and it imposes exactly the
// constraints the fingerprint sets:
//
//   - A set vendor id must equal the device's vendor id.
//   - A set product id must equal the device's product id.
//   - A set serial must be byte-equal to the device's serial, but only when
//     the device actually exposes one. A device with no readable serial is
//     not rejected on the serial check alone; it can still be excluded by a
//     vendor or product mismatch.
//
// The permissive treatment of absent serials mirrors the long-standing
// behaviour of existing deployments: devices that refuse descriptor reads
// keep matching on vendor/product alone. Profiles that must pin an exact
// serial should pair it with vendor and product ids.
func Match(f Fingerprint, a Attributes) bool {
	if f.Vendor != nil && *f.Vendor != a.Vendor {
		return false
	}
	if f.Product != nil && *f.Product != a.Product {
		return false
	}
	if f.Serial != nil && a.Serial != nil && *f.Serial != *a.Serial {
		return false
	}
	return true
}
