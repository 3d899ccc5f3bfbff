package models

import "time"

// Direction marks which side of the books a ledger entry sits on.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// IsValid reports whether d is one of the two known directions.
func (d Direction) IsValid() bool {
	return d == Debit || d == Credit
}

// TransactionStatus is the lifecycle state of a transaction. The core only
// ever writes posted transactions; corrections are new transactions.
type TransactionStatus string

const StatusPosted TransactionStatus = "posted"

// Transaction is an atomic financial event owning a non-empty set of ledger
// entries. Once persisted it is immutable; there is no update or delete path.
type Transaction struct {
	ID          string            `json:"id"`
	HouseholdID string            `json:"household_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Description string            `json:"description"`
	ExternalRef string            `json:"external_ref,omitempty"` // idempotency / reconciliation key
	CreatedBy   string            `json:"created_by,omitempty"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	Entries     []LedgerEntry     `json:"entries"`
}
