package repository

import "fmt"

// StoreError wraps any underlying storage failure with the operation and
// collection it happened on. It is always propagated; orchestrators catch
// it at the unit-of-work boundary.
type StoreError struct {
	Op         string
	Collection string
	Detail     string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s on %s failed: %s", e.Op, e.Collection, e.Detail)
}

func storeErr(op, collection string, err error) *StoreError {
	return &StoreError{Op: op, Collection: collection, Detail: err.Error()}
}
