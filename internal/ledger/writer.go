package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"household-ledger/internal/interfaces"
	"household-ledger/internal/models"
	"household-ledger/internal/models/events"
)

// TopicWriteBlocked is where blocked-write audit events are published.
const TopicWriteBlocked = "ledger.write_blocked"

// CreateTransactionInput is the writer's request shape. Entries must already
// be deserialized; authorization of HouseholdID against the caller happens
// upstream.
type CreateTransactionInput struct {
	HouseholdID string
	OccurredAt  time.Time
	Description string
	ExternalRef string
	CreatedBy   string
	RequestID   string
	Entries     []models.LedgerEntry
}

// Writer turns validated transactions into persisted ledger rows. It owns the
// ordering and atomicity contract of a write: validate, check the gate, then
// persist header plus entries as one unit of work. It holds no state between
// calls, so concurrent use needs no coordination here.
type Writer struct {
	store  interfaces.LedgerStore
	audit  interfaces.EventPublisher
	policy interfaces.WritePolicy
	logger *zap.Logger
}

func NewWriter(store interfaces.LedgerStore, audit interfaces.EventPublisher, policy interfaces.WritePolicy, logger *zap.Logger) *Writer {
	return &Writer{
		store:  store,
		audit:  audit,
		policy: policy,
		logger: logger,
	}
}

// CreateTransaction validates input, enforces the write gate, and persists
// the transaction atomically. On success it returns the generated id.
//
// Validation errors propagate unchanged so the invariant failure is never
// hidden from the caller. When the gate is closed the ledger tables are not
// touched at all: an audit event is published best-effort and the caller gets
// ErrWritesDisabled. Storage failures come back wrapped in PersistenceError;
// no retries happen here.
func (w *Writer) CreateTransaction(ctx context.Context, input CreateTransactionInput) (string, error) {
	if err := Validate(input.Entries); err != nil {
		return "", err
	}

	if !w.policy.WritesEnabled() {
		w.auditBlocked(ctx, input)
		return "", ErrWritesDisabled
	}

	if input.ExternalRef != "" {
		exists, err := w.store.TransactionExists(ctx, input.HouseholdID, input.ExternalRef)
		if err != nil {
			return "", &PersistenceError{Err: err}
		}
		if exists {
			return "", ErrDuplicateTransaction
		}
	}

	tx := models.Transaction{
		ID:          uuid.New().String(),
		HouseholdID: input.HouseholdID,
		OccurredAt:  input.OccurredAt,
		Description: input.Description,
		ExternalRef: input.ExternalRef,
		CreatedBy:   input.CreatedBy,
		Status:      models.StatusPosted,
		CreatedAt:   time.Now().UTC(),
		Entries:     input.Entries,
	}

	if err := w.store.SaveTransactionWithEntries(ctx, tx); err != nil {
		return "", &PersistenceError{Err: err}
	}

	w.logger.Info("transaction posted",
		zap.String("transaction_id", tx.ID),
		zap.String("household_id", tx.HouseholdID),
		zap.Int("entries", len(tx.Entries)),
	)
	return tx.ID, nil
}

// auditBlocked records a blocked write attempt. Best-effort: a failed publish
// is logged and swallowed so it never masks the WritesDisabled outcome.
func (w *Writer) auditBlocked(ctx context.Context, input CreateTransactionInput) {
	event := events.WriteBlocked{
		HouseholdID: input.HouseholdID,
		UserID:      input.CreatedBy,
		RequestID:   input.RequestID,
		Path:        "/ledger/transactions",
		Reason:      "ledger writes disabled by operator",
		OccurredAt:  time.Now().UTC(),
	}
	if err := w.audit.Publish(ctx, TopicWriteBlocked, event); err != nil {
		w.logger.Warn("blocked-write audit publish failed",
			zap.String("household_id", input.HouseholdID),
			zap.String("request_id", input.RequestID),
			zap.Error(err),
		)
	}
}
