package models

// Account is a read-only view of a household account. The core never creates
// or mutates accounts; they are referenced by opaque id from ledger entries.
type Account struct {
	ID          string `json:"id"`
	HouseholdID string `json:"household_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
	IsPersonal  bool   `json:"is_personal"`
	OwnerUserID string `json:"owner_user_id,omitempty"`
}

// BalanceRow is a materialized per-account balance snapshot produced by the
// storage layer (a SQL aggregate view). The core treats it as already correct
// and never recomputes balances from entries itself.
type BalanceRow struct {
	AccountID    string `json:"account_id"`
	BalanceMinor int64  `json:"balance_minor"`
	Currency     string `json:"currency,omitempty"`
}

// Transfer is a signed movement between a personal and a shared context, in
// minor units. Negative means an outflow from the context being measured.
type Transfer struct {
	AmountMinor int64 `json:"amount_minor"`
}
