// Package metrics derives headline KPIs from already-consistent ledger state.
// Every function is pure and order-insensitive over its input collection.
//
// Minor-unit sums are computed in int64 and converted to major units exactly
// once, at the end, rounding half away from zero. Guards against non-positive
// denominators return zero instead of failing, so consumers never need their
// own NaN handling.
package metrics

import (
	"github.com/shopspring/decimal"

	"household-ledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// minorToMajor converts an exact minor-unit sum to whole major units,
// rounding half away from zero. This is the only place rounding happens;
// rounding sub-sums would accumulate drift.
func minorToMajor(sumMinor int64) int64 {
	return decimal.NewFromInt(sumMinor).Div(hundred).Round(0).IntPart()
}

// NetWorth sums per-account balances and converts to major units. An empty
// list is worth 0.
func NetWorth(balances []models.BalanceRow) int64 {
	var sum int64
	for _, b := range balances {
		sum += b.BalanceMinor
	}
	return minorToMajor(sum)
}

// Consolidate is NetWorth over a household's accounts rather than a single
// person's. Same arithmetic, distinct name for distinct caller intent; the
// caller guarantees one row per account so nothing is double counted.
func Consolidate(balances []models.BalanceRow) int64 {
	return NetWorth(balances)
}

// CashFlow is income minus expenses in major units. It is not floored at
// zero; a negative cash flow is meaningful.
func CashFlow(income, expenses decimal.Decimal) decimal.Decimal {
	return income.Sub(expenses)
}

// SavingsRate is the saved share of income as a percentage. Non-positive
// income yields 0 rather than a division failure.
func SavingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred)
}

// TransferOutflows totals the absolute value of negative transfers. Inflows
// contribute nothing, so a personal-to-shared contribution is counted once,
// never on both sides.
func TransferOutflows(transfers []models.Transfer) int64 {
	var total int64
	for _, t := range transfers {
		if t.AmountMinor < 0 {
			total += -t.AmountMinor
		}
	}
	return total
}

// CashFlowChangePercent relates current cash flow to current expenses as a
// percentage. Non-positive expenses yield 0.
func CashFlowChangePercent(cashFlowNow, expensesNow decimal.Decimal) decimal.Decimal {
	if expensesNow.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return cashFlowNow.Div(expensesNow).Mul(hundred)
}
