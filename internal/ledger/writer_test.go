package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"household-ledger/internal/interfaces"
	"household-ledger/internal/metrics"
	"household-ledger/internal/models"
	"household-ledger/internal/storage/memory"
)

// capturePublisher records published events; optionally fails every publish.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func validInput() CreateTransactionInput {
	return CreateTransactionInput{
		HouseholdID: "hh-1",
		OccurredAt:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Description: "groceries settle-up",
		CreatedBy:   "user-1",
		RequestID:   "req-1",
		Entries: []models.LedgerEntry{
			{AccountID: "checking", Direction: models.Debit, AmountMinor: 800000, Currency: "EUR"},
			{AccountID: "shared", Direction: models.Credit, AmountMinor: 800000, Currency: "EUR"},
		},
	}
}

func newTestWriter(store interfaces.LedgerStore, audit interfaces.EventPublisher, enabled bool) *Writer {
	return NewWriter(store, audit, interfaces.StaticWritePolicy(enabled), zap.NewNop())
}

func TestCreateTransactionPersistsAtomically(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	w := newTestWriter(store, &capturePublisher{}, true)

	id, err := w.CreateTransaction(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Equal(t, 1, store.TransactionCount())
	assert.Equal(t, 2, store.EntryCount())

	// The change shows up in balances exactly once.
	balances, err := store.GetBalances(context.Background(), "hh-1")
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, int64(0), metrics.NetWorth(balances))

	checking, err := store.GetEntriesByAccount(context.Background(), "checking")
	require.NoError(t, err)
	require.Len(t, checking, 1)
	assert.Equal(t, int64(800000), checking[0].AmountMinor)
}

func TestCreateTransactionPropagatesValidationErrors(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	w := newTestWriter(store, &capturePublisher{}, true)

	input := validInput()
	input.Entries[1].AmountMinor = 799999

	_, err := w.CreateTransaction(context.Background(), input)
	require.Error(t, err)

	var unbalanced *UnbalancedError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, int64(1), unbalanced.Residual)
	assert.Equal(t, 0, store.TransactionCount())
	assert.Equal(t, 0, store.EntryCount())
}

func TestCreateTransactionWhenGateClosed(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	audit := &capturePublisher{}
	w := newTestWriter(store, audit, false)

	_, err := w.CreateTransaction(context.Background(), validInput())
	require.ErrorIs(t, err, ErrWritesDisabled)

	// Zero ledger rows, exactly one audit record.
	assert.Equal(t, 0, store.TransactionCount())
	assert.Equal(t, 0, store.EntryCount())
	require.Equal(t, 1, audit.count())
	assert.Equal(t, TopicWriteBlocked, audit.topics[0])
}

func TestCreateTransactionGateClosedAuditFailureStillDisabled(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	audit := &capturePublisher{err: errors.New("broker down")}
	w := newTestWriter(store, audit, false)

	// Audit is best-effort; its failure must not replace the outcome.
	_, err := w.CreateTransaction(context.Background(), validInput())
	require.ErrorIs(t, err, ErrWritesDisabled)
	assert.Equal(t, 0, store.TransactionCount())
}

func TestCreateTransactionDuplicateExternalRef(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	w := newTestWriter(store, &capturePublisher{}, true)

	input := validInput()
	input.ExternalRef = "bank-stmt-42"

	_, err := w.CreateTransaction(context.Background(), input)
	require.NoError(t, err)

	_, err = w.CreateTransaction(context.Background(), input)
	require.ErrorIs(t, err, ErrDuplicateTransaction)
	assert.Equal(t, 1, store.TransactionCount())
}

func TestCreateTransactionPersistenceFailureIsAtomic(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	store.FailEntryAt = 1 // fail while inserting the second entry
	w := newTestWriter(store, &capturePublisher{}, true)

	_, err := w.CreateTransaction(context.Background(), validInput())
	require.Error(t, err)

	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.False(t, IsValidationError(err))

	// Neither the header nor any entry survived.
	assert.Equal(t, 0, store.TransactionCount())
	assert.Equal(t, 0, store.EntryCount())
}

func TestCreateTransactionConcurrentCallers(t *testing.T) {
	store := memory.NewMemoryLedgerStore()
	w := newTestWriter(store, &capturePublisher{}, true)

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = w.CreateTransaction(context.Background(), validInput())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, n, store.TransactionCount())
	assert.Equal(t, 2*n, store.EntryCount())
}
