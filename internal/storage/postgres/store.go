// Package postgres implements the ledger store on PostgreSQL via database/sql
// and lib/pq. Table layout follows the app schema: a transactions header
// table, a ledger_entries table referencing it, and aggregate views for
// balances and transfers.
package postgres

import (
	"context"
	"database/sql"

	"household-ledger/internal/interfaces"
	"household-ledger/internal/models"
)

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{db: db}
}

func (p *PostgresLedgerStore) TransactionExists(ctx context.Context, householdID, externalRef string) (bool, error) {
	const query = `SELECT 1 FROM app.transactions WHERE household_id = $1 AND external_ref = $2 LIMIT 1`

	var one int
	err := p.db.QueryRowContext(ctx, query, householdID, externalRef).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveTransactionWithEntries writes the header and all entries inside one
// database transaction. The header goes first so entries can reference its
// id; any failure rolls the whole unit back, so a partial transaction is
// never observable.
func (p *PostgresLedgerStore) SaveTransactionWithEntries(ctx context.Context, tx models.Transaction) error {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	err = p.saveHeader(ctx, dbTx, tx)
	if err != nil {
		return err
	}

	for _, entry := range tx.Entries {
		err = p.saveEntry(ctx, dbTx, tx.ID, entry)
		if err != nil {
			return err
		}
	}

	err = dbTx.Commit()
	return err
}

func (p *PostgresLedgerStore) saveHeader(ctx context.Context, dbTx *sql.Tx, tx models.Transaction) error {
	const query = `INSERT INTO app.transactions (id, household_id, occurred_at, description, external_ref, created_by, status, created_at)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`

	_, err := dbTx.ExecContext(ctx, query,
		tx.ID, tx.HouseholdID, tx.OccurredAt, tx.Description, tx.ExternalRef, tx.CreatedBy, string(tx.Status), tx.CreatedAt)
	return err
}

func (p *PostgresLedgerStore) saveEntry(ctx context.Context, dbTx *sql.Tx, txID string, entry models.LedgerEntry) error {
	const query = `INSERT INTO app.ledger_entries (transaction_id, account_id, user_id, category, direction, amount_minor, currency)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)`

	_, err := dbTx.ExecContext(ctx, query,
		txID, entry.AccountID, entry.UserID, entry.Category, string(entry.Direction), entry.AmountMinor, entry.Currency)
	return err
}

func (p *PostgresLedgerStore) GetAccounts(ctx context.Context, householdID, ownerUserID string) ([]models.Account, error) {
	query := `SELECT id, household_id, name, type, currency, is_personal, COALESCE(owner_user_id, '')
	FROM app.accounts WHERE household_id = $1`
	args := []any{householdID}
	if ownerUserID != "" {
		query += ` AND owner_user_id = $2`
		args = append(args, ownerUserID)
	}
	query += ` ORDER BY name`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.HouseholdID, &a.Name, &a.Type, &a.Currency, &a.IsPersonal, &a.OwnerUserID); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetBalances reads the materialized per-account balances from the
// app.get_balances view. The core never recomputes these from entries.
func (p *PostgresLedgerStore) GetBalances(ctx context.Context, householdID string) ([]models.BalanceRow, error) {
	const query = `SELECT account_id, balance_minor::bigint, currency FROM app.get_balances($1)`

	rows, err := p.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []models.BalanceRow
	for rows.Next() {
		var b models.BalanceRow
		if err := rows.Scan(&b.AccountID, &b.BalanceMinor, &b.Currency); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// GetTransfers reads signed personal<->shared movements, negative meaning an
// outflow from the measured context.
func (p *PostgresLedgerStore) GetTransfers(ctx context.Context, householdID string) ([]models.Transfer, error) {
	const query = `SELECT amount_minor::bigint FROM app.get_transfers($1)`

	rows, err := p.db.QueryContext(ctx, query, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []models.Transfer
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.AmountMinor); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

func (p *PostgresLedgerStore) GetEntriesByAccount(ctx context.Context, accountID string) ([]models.LedgerEntry, error) {
	const query = `SELECT account_id, COALESCE(user_id, ''), COALESCE(category, ''), direction, amount_minor, currency
	FROM app.ledger_entries WHERE account_id = $1`

	rows, err := p.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.AccountID, &e.UserID, &e.Category, &e.Direction, &e.AmountMinor, &e.Currency); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
