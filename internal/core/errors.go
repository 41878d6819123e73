package core

import "errors"

// StorageError marks a failure of the underlying store (unopenable file, full
// disk, failed statement) as opposed to a domain outcome.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageFailure reports whether err was caused by the store itself.
func IsStorageFailure(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
