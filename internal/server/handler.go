package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"household-ledger/internal/interfaces"
	"household-ledger/internal/ledger"
	"household-ledger/internal/metrics"
)

// LedgerHandler maps HTTP requests onto the ledger writer and the KPI
// aggregator. Authentication happens upstream; the household scope arrives
// in the X-Household-ID header.
type LedgerHandler struct {
	writer *ledger.Writer
	store  interfaces.LedgerStore
}

func NewLedgerHandler(writer *ledger.Writer, store interfaces.LedgerStore) *LedgerHandler {
	return &LedgerHandler{writer: writer, store: store}
}

func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/ledger")
	{
		group.GET("/accounts", h.GetAccounts)
		group.GET("/balances", h.GetBalances)
		group.GET("/summary", h.GetSummary)
		group.POST("/transactions", h.PostTransaction)
	}
}

func householdID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Household-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_household", "message": "X-Household-ID header is required"})
		return "", false
	}
	return id, true
}

func (h *LedgerHandler) GetAccounts(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	accounts, err := h.store.GetAccounts(c.Request.Context(), hid, c.Query("owner_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": accounts})
}

func (h *LedgerHandler) GetBalances(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	balances, err := h.store.GetBalances(c.Request.Context(), hid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": balances})
}

// GetSummary derives household KPIs from stored state. The aggregator is
// pure; this handler just feeds it.
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	balances, err := h.store.GetBalances(c.Request.Context(), hid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	transfers, err := h.store.GetTransfers(c.Request.Context(), hid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": SummaryResp{
		NetWorth:         metrics.Consolidate(balances),
		TransferOutflows: metrics.TransferOutflows(transfers),
		AccountCount:     len(balances),
	}})
}

func (h *LedgerHandler) PostTransaction(c *gin.Context) {
	hid, ok := householdID(c)
	if !ok {
		return
	}

	var req CreateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if req.HouseholdID != hid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_mismatch"})
		return
	}

	requestID := c.GetString("requestID")
	id, err := h.writer.CreateTransaction(c.Request.Context(), ledger.CreateTransactionInput{
		HouseholdID: req.HouseholdID,
		OccurredAt:  req.OccurredAt,
		Description: req.Description,
		ExternalRef: req.ExternalRef,
		CreatedBy:   req.CreatedBy,
		RequestID:   requestID,
		Entries:     req.toEntries(),
	})
	if err != nil {
		h.writeError(c, err, requestID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": id}})
}

// writeError translates the core's error taxonomy into HTTP statuses. A
// closed write gate is deliberately distinct from a validation failure.
func (h *LedgerHandler) writeError(c *gin.Context, err error, requestID string) {
	switch {
	case ledger.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation_error",
			"message":    err.Error(),
			"request_id": requestID,
		})
	case errors.Is(err, ledger.ErrDuplicateTransaction):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "duplicate_transaction",
			"message":    err.Error(),
			"request_id": requestID,
		})
	case errors.Is(err, ledger.ErrWritesDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      "ledger_write_disabled",
			"message":    "Writing to the ledger is currently disabled.",
			"request_id": requestID,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "internal_error",
			"request_id": requestID,
		})
	}
}
