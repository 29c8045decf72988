package service

import "errors"

// ErrNoActiveProgram is returned when a student has no active enrollment to
// evaluate against.
var ErrNoActiveProgram = errors.New("no active program")

// ErrAlreadyConferred is returned when a degree was already conferred on the
// enrollment being checked.
var ErrAlreadyConferred = errors.New("degree already conferred")
