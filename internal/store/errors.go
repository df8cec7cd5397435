package store

import "errors"

// Error kinds returned by the store. Callers match them with errors.Is;
// the wrapped message carries the diagnostic detail.
var (
	ErrSourceMissing         = errors.New("source missing")
	ErrDestinationUnwritable = errors.New("destination unwritable")
	ErrEnumerationFailed     = errors.New("enumeration failed")
	ErrDeleteFailed          = errors.New("delete failed")
)
