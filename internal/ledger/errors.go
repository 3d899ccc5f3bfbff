package ledger

import (
	"errors"
	"fmt"
)

// Sentinel outcomes of CreateTransaction that are not validation failures.
var (
	// ErrWritesDisabled means the operator-controlled write gate is closed.
	// It is a temporary unavailability, not a client error.
	ErrWritesDisabled = errors.New("ledger writes are disabled")

	// ErrDuplicateTransaction means a transaction with the same external_ref
	// has already been posted for this household.
	ErrDuplicateTransaction = errors.New("transaction with this external_ref already exists")
)

// InvalidAmountError reports an entry whose amount is not a positive integer.
type InvalidAmountError struct {
	Index       int
	AmountMinor int64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("entry %d: amount_minor must be positive, got %d", e.Index, e.AmountMinor)
}

// UnbalancedError reports entries whose debits and credits do not net to
// zero. Residual is the nonzero signed sum in minor units (debits positive).
type UnbalancedError struct {
	Residual int64
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("transaction entries must balance (debits = credits), got %d", e.Residual)
}

// CurrencyMismatchError reports a transaction whose entries carry more than
// one currency code. Such entries can net to zero arithmetically while being
// economically meaningless; conversion belongs upstream of the ledger.
type CurrencyMismatchError struct {
	Want string
	Got  string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("mixed currencies in one transaction: %s and %s", e.Want, e.Got)
}

// PersistenceError wraps a storage-layer failure. The cause is opaque to the
// core and no retries happen here; callers decide on retry policy.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "ledger persistence failed: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidationError reports whether err belongs to the client-input class of
// the taxonomy (invalid amount, unbalanced, currency mismatch).
func IsValidationError(err error) bool {
	var ia *InvalidAmountError
	var ub *UnbalancedError
	var cm *CurrencyMismatchError
	return errors.As(err, &ia) || errors.As(err, &ub) || errors.As(err, &cm)
}
