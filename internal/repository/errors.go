package repository

import "errors"

// ErrStateNotFound is returned when no provisioning run has been recorded yet.
var ErrStateNotFound = errors.New("provision state not found")
