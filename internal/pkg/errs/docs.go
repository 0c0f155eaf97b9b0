// Package errs holds the error types shared by the workshop engine.
//
// Every type follows the same shape: a sentinel (ErrX), a struct carrying the
// details, NewX constructors, Error and Unwrap. Callers classify errors with
// errors.Is against the sentinel or errors.As against the struct.
//
// Validation problems use ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError. Lifecycle problems use InvalidStateTransitionError,
// OrderLockedError and InsufficientStockError. Lookups that miss return
// ObjectNotFoundError, and a stale order version returns VersionIsInvalidError.
package errs
