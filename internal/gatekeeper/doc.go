// Package gatekeeper makes the authentication decision: is a USB device
// authorised for this login physically present right now?
//
// One attempt is a single synchronous pass: look the login up in the profile
// model, enumerate the bus, and compare every fingerprint against every
// attached device, short-circuiting on the first match. There is no retry,
// no caching of devices between attempts, and no cooperative suspension.
//
// The host-facing operation is Decide, which collapses every outcome into
// Allow or Deny. A missing login, an unreachable bus, an invalid profile set,
// and a plain no-match all look identical to the caller (Deny), so an
// unauthenticated party learns nothing about why access was refused.
package gatekeeper
