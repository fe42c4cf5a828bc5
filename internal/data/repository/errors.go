package repository

import "errors"

// ErrNotFound is returned by writes that target a row which does not exist.
// Reads return a nil record with a nil error instead.
var ErrNotFound = errors.New("record not found")
