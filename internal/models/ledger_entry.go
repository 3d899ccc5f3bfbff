package models

// LedgerEntry is one debit or credit leg of a transaction against a specific
// account. Amounts are integers in currency minor units (cents); the amount
// itself is always positive and Direction encodes the sign.
type LedgerEntry struct {
	AccountID   string    `json:"account_id"`
	UserID      string    `json:"user_id,omitempty"`
	Category    string    `json:"category,omitempty"`
	Direction   Direction `json:"direction"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"` // ISO 4217, uppercase
}

// Signed returns the entry amount with debit positive and credit negative.
func (e LedgerEntry) Signed() int64 {
	if e.Direction == Debit {
		return e.AmountMinor
	}
	return -e.AmountMinor
}
