// Package device defines the identity model for USB device authentication.
//
// It contains the two data types the whole engine revolves around, plus the
// matching rule that connects them:
//
//   - Fingerprint: an authorised device descriptor from a user's profile
//     (vendor id, product id, serial), where each field may be a wildcard.
//   - Attributes: a transient snapshot of one attached device's identifying
//     attributes, produced by the bus enumerator and valid only for the
//     current authentication attempt.
//   - Match: the pure comparison of one Fingerprint against one Attributes
//     under wildcard semantics.
//
// Wildcards are represented as explicitly absent values (nil pointers), never
// as zero. The profile loaders translate the legacy zero-means-any encoding
// into absent fields at load time, so a legitimately assigned vendor id of
// zero cannot be confused with "any vendor" inside the engine.
//
// The package is pure data and logic: no I/O, no logging, no failure modes.
package device
