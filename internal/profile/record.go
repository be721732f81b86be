package profile

// Record is the already-parsed structured form of the profiles configuration,
// as produced by a Source. It deliberately uses pointer fields so that a key
// that is absent from the source can be told apart from a key whose value is
// the wildcard zero/empty: the loader requires the keys to exist, not their
// values to be non-wildcard.
type Record struct {
	// Users is the top-level user list. A nil slice means the source had no
	// user list at all, which the loader rejects; an empty slice is a valid
	// configuration that authenticates nobody.
	Users []UserRecord `yaml:"users"`
}

// UserRecord is one user entry in the profiles record.
type UserRecord struct {
	// Login is the login name this entry authorises. Nil when the source
	// entry lacks a login key.
	Login *string `yaml:"login"`

	// Devices is the user's authorised device list, in profile order. A nil
	// slice means the entry lacked a device list; an empty slice is a valid
	// entry that authenticates nothing.
	Devices []DeviceRecord `yaml:"devices"`
}

// DeviceRecord is one device entry in the profiles record. All three keys
// must be present; zero/empty values mean "any".
type DeviceRecord struct {
	VendorID  *uint16 `yaml:"vid"`
	ProductID *uint16 `yaml:"pid"`
	Serial    *string `yaml:"serial"`
}
