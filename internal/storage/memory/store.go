// Package memory is an in-memory implementation of interfaces.LedgerStore.
// It backs tests and broker-less local runs, and honors the same atomicity
// contract as the SQL store: a failed save leaves no partial state behind.
package memory

import (
	"context"
	"errors"
	"sync"

	"household-ledger/internal/interfaces"
	"household-ledger/internal/models"
)

type entryRow struct {
	transactionID string
	entry         models.LedgerEntry
}

type MemoryLedgerStore struct {
	mu           sync.Mutex
	transactions map[string]models.Transaction // keyed by transaction id
	entries      []entryRow
	accounts     []models.Account
	transfers    []models.Transfer

	// FailEntryAt, when >= 0, makes SaveTransactionWithEntries fail while
	// inserting the entry at that index. Used to exercise the rollback
	// contract in tests.
	FailEntryAt int
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		transactions: make(map[string]models.Transaction),
		FailEntryAt:  -1,
	}
}

func (m *MemoryLedgerStore) TransactionExists(ctx context.Context, householdID, externalRef string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range m.transactions {
		if tx.HouseholdID == householdID && tx.ExternalRef == externalRef {
			return true, nil
		}
	}
	return false, nil
}

// SaveTransactionWithEntries stages every row before touching shared state,
// so a simulated mid-entry failure leaves neither header nor entries behind.
func (m *MemoryLedgerStore) SaveTransactionWithEntries(ctx context.Context, tx models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := make([]entryRow, 0, len(tx.Entries))
	for i, e := range tx.Entries {
		if m.FailEntryAt == i {
			return errors.New("simulated entry insert failure")
		}
		staged = append(staged, entryRow{transactionID: tx.ID, entry: e})
	}

	m.transactions[tx.ID] = tx
	m.entries = append(m.entries, staged...)
	return nil
}

func (m *MemoryLedgerStore) GetAccounts(ctx context.Context, householdID, ownerUserID string) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.Account
	for _, a := range m.accounts {
		if a.HouseholdID != householdID {
			continue
		}
		if ownerUserID != "" && a.OwnerUserID != ownerUserID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// GetBalances folds the stored entries into one balance row per account,
// standing in for the SQL aggregate view.
func (m *MemoryLedgerStore) GetBalances(ctx context.Context, householdID string) ([]models.BalanceRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sums := make(map[string]int64)
	currencies := make(map[string]string)
	var order []string
	for _, row := range m.entries {
		tx, ok := m.transactions[row.transactionID]
		if !ok || tx.HouseholdID != householdID {
			continue
		}
		if _, seen := sums[row.entry.AccountID]; !seen {
			order = append(order, row.entry.AccountID)
		}
		sums[row.entry.AccountID] += row.entry.Signed()
		currencies[row.entry.AccountID] = row.entry.Currency
	}

	balances := make([]models.BalanceRow, 0, len(order))
	for _, accountID := range order {
		balances = append(balances, models.BalanceRow{
			AccountID:    accountID,
			BalanceMinor: sums[accountID],
			Currency:     currencies[accountID],
		})
	}
	return balances, nil
}

func (m *MemoryLedgerStore) GetTransfers(ctx context.Context, householdID string) ([]models.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Transfer, len(m.transfers))
	copy(copied, m.transfers)
	return copied, nil
}

func (m *MemoryLedgerStore) GetEntriesByAccount(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []models.LedgerEntry
	for _, row := range m.entries {
		if row.entry.AccountID == accountID {
			result = append(result, row.entry)
		}
	}
	return result, nil
}

// SeedAccounts and SeedTransfers load fixture data for tests and local runs.
func (m *MemoryLedgerStore) SeedAccounts(accounts ...models.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append(m.accounts, accounts...)
}

func (m *MemoryLedgerStore) SeedTransfers(transfers ...models.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers = append(m.transfers, transfers...)
}

// EntryCount reports how many entry rows are persisted, across all
// transactions.
func (m *MemoryLedgerStore) EntryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// TransactionCount reports how many transaction headers are persisted.
func (m *MemoryLedgerStore) TransactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
