package server

import (
	"time"

	"household-ledger/internal/models"
)

// CreateTransactionReq is the JSON body of POST /ledger/transactions. The
// binding layer enforces shape (at least two entries, known direction,
// three-letter uppercase currency); the arithmetic invariants live in the
// ledger core.
type CreateTransactionReq struct {
	HouseholdID string     `json:"household_id" binding:"required"`
	OccurredAt  time.Time  `json:"occurred_at" binding:"required"`
	Description string     `json:"description" binding:"required"`
	ExternalRef string     `json:"external_ref"`
	CreatedBy   string     `json:"created_by"`
	Entries     []EntryReq `json:"entries" binding:"required,min=2,dive"`
}

type EntryReq struct {
	AccountID   string `json:"account_id" binding:"required"`
	UserID      string `json:"user_id"`
	Category    string `json:"category"`
	Direction   string `json:"direction" binding:"required,oneof=debit credit"`
	AmountMinor int64  `json:"amount_minor" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3,uppercase"`
}

func (r CreateTransactionReq) toEntries() []models.LedgerEntry {
	entries := make([]models.LedgerEntry, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = models.LedgerEntry{
			AccountID:   e.AccountID,
			UserID:      e.UserID,
			Category:    e.Category,
			Direction:   models.Direction(e.Direction),
			AmountMinor: e.AmountMinor,
			Currency:    e.Currency,
		}
	}
	return entries
}

// SummaryResp carries the household KPIs derived from stored balances and
// transfers, in whole major units.
type SummaryResp struct {
	NetWorth         int64 `json:"net_worth"`
	TransferOutflows int64 `json:"transfer_outflows_minor"`
	AccountCount     int   `json:"account_count"`
}
