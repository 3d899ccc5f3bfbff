package interfaces

import (
	"context"

	"household-ledger/internal/models"
)

// LedgerStore is the persistence port for the ledger core. Implementations
// must make SaveTransactionWithEntries all-or-nothing: either the header and
// every entry become observable together, or nothing does.
type LedgerStore interface {
	// TransactionExists reports whether a transaction with the given
	// external_ref has already been persisted for the household.
	TransactionExists(ctx context.Context, householdID, externalRef string) (bool, error)

	// SaveTransactionWithEntries persists tx.Entries under tx's header in a
	// single atomic unit of work. The header row is written first so entries
	// can reference its id.
	SaveTransactionWithEntries(ctx context.Context, tx models.Transaction) error

	GetAccounts(ctx context.Context, householdID, ownerUserID string) ([]models.Account, error)

	// GetBalances returns the materialized per-account balances for a
	// household, one row per account.
	GetBalances(ctx context.Context, householdID string) ([]models.BalanceRow, error)

	// GetTransfers returns the signed personal<->shared movements for a
	// household, precomputed by the storage layer.
	GetTransfers(ctx context.Context, householdID string) ([]models.Transfer, error)

	GetEntriesByAccount(ctx context.Context, accountID string) ([]models.LedgerEntry, error)
}
