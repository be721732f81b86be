// Package config loads the USB Gatekeeper application configuration.
//
// Configuration comes from a YAML file with three layers: hardcoded
// defaults, file values, and USBGATE_* environment variable overrides, each
// layer overriding the previous one. Load returns a validated *Config or an
// error; callers must treat a failed load as fatal and fail closed.
//
// Note the split between this package and package profile: this is the
// application's own configuration (where profiles live, how to talk to the
// bus, how to log). The per-login device profiles themselves are loaded by
// the profile sources.
package config
