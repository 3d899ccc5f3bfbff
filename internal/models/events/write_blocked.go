package events

import "time"

// WriteBlocked is the audit payload recorded whenever the write gate rejects
// an otherwise processable ledger write. It is published best-effort; losing
// one of these must never change the outcome the caller sees.
type WriteBlocked struct {
	HouseholdID string    `json:"household_id"`
	UserID      string    `json:"user_id"`
	RequestID   string    `json:"request_id"`
	Path        string    `json:"path"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}
