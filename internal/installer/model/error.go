package model

import (
	"errors"
	"fmt"
)

// ErrVersion is the error kind for version resolution failures. Nothing
// returns it yet; callers may test for it with errors.Is.
var ErrVersion = errors.New("version error")

// ErrInvalidTableName is returned when a configured prefix would produce an
// unsafe identifier.
var ErrInvalidTableName = errors.New("invalid table name")

// VersionError carries the version a failure relates to.
type VersionError struct {
	Version string
	Reason  string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("version %q: %s", e.Version, e.Reason)
}

func (e *VersionError) Is(target error) bool { return target == ErrVersion }
