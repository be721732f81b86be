package profile

import (
	"errors"
	"fmt"
)

// Domain errors for the profile package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, profile.ErrConfigInvalid) {
//	    // fail closed
//	}
var (
	// ErrConfigInvalid is returned when the profiles record is malformed or
	// incomplete. The load aborts as a whole; no partial model is returned.
	ErrConfigInvalid = errors.New("profile: invalid configuration")

	// ErrDuplicateLogin is returned when two user entries share a login.
	// It matches ErrConfigInvalid under errors.Is.
	ErrDuplicateLogin = fmt.Errorf("%w: duplicate login", ErrConfigInvalid)
)
