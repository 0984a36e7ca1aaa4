package repository

import "errors"

// ErrDuplicateKey is returned when an insert or upsert violates a
// unique index (e.g. users.email, userorgs userId+orgId). Concurrent
// registrations for the same email surface here rather than through
// the application-level existence check.
var ErrDuplicateKey = errors.New("duplicate key")
