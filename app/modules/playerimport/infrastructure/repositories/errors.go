package importdb

import "errors"

// ErrNotFound is returned when an import audit does not exist or does not
// belong to the requesting club.
var ErrNotFound = errors.New("import not found")
