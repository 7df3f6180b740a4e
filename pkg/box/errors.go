package box

import "errors"

var (
	ErrLockedOut = errors.New("no tries left")
	ErrNoTargets = errors.New("no targets configured")
)
