// Package ledger holds the double-entry core: the balance invariant every
// persisted transaction must satisfy, and the writer that enforces it in
// front of storage.
package ledger

import "household-ledger/internal/models"

// BalanceOf returns the signed sum of the entries in minor units, counting
// debits positive and credits negative. A valid transaction sums to exactly
// zero. All arithmetic is int64; there is no floating point and no division,
// so the result is exact at any transaction size.
func BalanceOf(entries []models.LedgerEntry) int64 {
	var sum int64
	for _, e := range entries {
		sum += e.Signed()
	}
	return sum
}

// Validate checks that a candidate transaction's entries are well-formed:
// every amount is a positive integer, all entries share one currency, and
// debits equal credits. It is pure and side-effect free; calling it any
// number of times is safe. A nil return guarantees the transaction is
// arithmetically balanced to the minor unit.
func Validate(entries []models.LedgerEntry) error {
	currency := ""
	for i, e := range entries {
		if e.AmountMinor <= 0 {
			return &InvalidAmountError{Index: i, AmountMinor: e.AmountMinor}
		}
		if currency == "" {
			currency = e.Currency
		} else if e.Currency != currency {
			return &CurrencyMismatchError{Want: currency, Got: e.Currency}
		}
	}
	if residual := BalanceOf(entries); residual != 0 {
		return &UnbalancedError{Residual: residual}
	}
	return nil
}
