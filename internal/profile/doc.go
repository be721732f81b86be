// Package profile builds the per-login authorisation model consumed by the
// authenticator.
//
// The flow is source -> record -> model:
//
//   - A Source (YAML file or SQLite) produces a Record, the structured form
//     of the profiles configuration: a list of user entries, each with a
//     login and a list of device entries (vid, pid, serial).
//   - FromRecord validates the record and builds the immutable Model mapping
//     each login to its ordered fingerprint list.
//
// Validation is all-or-nothing: any malformed entry aborts the whole load
// with ErrConfigInvalid and no partial model is returned, so a misconfigured
// system fails closed rather than authenticating against half a profile set.
//
// The record keeps "key absent" distinct from "value is the wildcard
// zero/empty" by using pointer fields. All three device keys must be present
// syntactically; their values may be wildcards. Duplicate logins are rejected
// at load time rather than silently resolved.
//
// The Model is read-only after construction. It may be rebuilt fresh for each
// authentication attempt or cached between attempts; either way no locking is
// required because loads are the only mutation and they produce a new value.
package profile
