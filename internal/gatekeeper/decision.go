package gatekeeper

// Decision is the host-framework outcome of one authentication attempt.
type Decision string

const (
	// Allow means a device matching one of the login's fingerprints is
	// attached to the bus.
	Allow Decision = "allow"

	// Deny is every other outcome: unknown login, unavailable bus, invalid
	// profiles, or simply no matching device. The reasons are deliberately
	// indistinguishable to the caller.
	Deny Decision = "deny"
)
