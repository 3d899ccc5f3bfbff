package metrics

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"household-ledger/internal/models"
)

func TestNetWorth(t *testing.T) {
	tests := []struct {
		name     string
		balances []models.BalanceRow
		want     int64
	}{
		{name: "empty", balances: nil, want: 0},
		{
			name:     "single row rounds half away from zero",
			balances: []models.BalanceRow{{AccountID: "a", BalanceMinor: 12345}},
			want:     123,
		},
		{
			name:     "tie rounds up",
			balances: []models.BalanceRow{{AccountID: "a", BalanceMinor: 12350}},
			want:     124,
		},
		{
			name:     "negative tie rounds away from zero",
			balances: []models.BalanceRow{{AccountID: "a", BalanceMinor: -12350}},
			want:     -124,
		},
		{
			name: "mixed rows round once on the total",
			balances: []models.BalanceRow{
				{AccountID: "a", BalanceMinor: 49},
				{AccountID: "b", BalanceMinor: 49},
				{AccountID: "c", BalanceMinor: 49},
			},
			// per-row rounding would give 0+0+0; the total 147 rounds to 1
			want: 1,
		},
		{
			name: "debts offset assets",
			balances: []models.BalanceRow{
				{AccountID: "checking", BalanceMinor: 500000},
				{AccountID: "loan", BalanceMinor: -200000},
			},
			want: 3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetWorth(tt.balances))
			assert.Equal(t, tt.want, Consolidate(tt.balances))
		})
	}
}

func TestNetWorthOrderInvariant(t *testing.T) {
	balances := []models.BalanceRow{
		{AccountID: "a", BalanceMinor: 12345},
		{AccountID: "b", BalanceMinor: -678},
		{AccountID: "c", BalanceMinor: 999999},
	}
	want := NetWorth(balances)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]models.BalanceRow, len(balances))
		copy(shuffled, balances)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, NetWorth(shuffled))
	}
}

func TestCashFlow(t *testing.T) {
	got := CashFlow(decimal.NewFromInt(3000), decimal.NewFromInt(2500))
	assert.True(t, got.Equal(decimal.NewFromInt(500)))

	// not floored at zero
	negative := CashFlow(decimal.NewFromInt(1000), decimal.NewFromInt(1500))
	assert.True(t, negative.Equal(decimal.NewFromInt(-500)))
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		expenses int64
		want     string
	}{
		{name: "zero income guards division", income: 0, expenses: 1234, want: "0"},
		{name: "negative income guards division", income: -100, expenses: 50, want: "0"},
		{name: "half saved", income: 3000, expenses: 1500, want: "50"},
		{name: "overspending goes negative", income: 1000, expenses: 1500, want: "-50"},
		{name: "nothing spent", income: 2000, expenses: 0, want: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SavingsRate(decimal.NewFromInt(tt.income), decimal.NewFromInt(tt.expenses))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestTransferOutflows(t *testing.T) {
	tests := []struct {
		name      string
		transfers []models.Transfer
		want      int64
	}{
		{name: "empty", transfers: nil, want: 0},
		{
			name: "only negative amounts contribute",
			transfers: []models.Transfer{
				{AmountMinor: -800000},
				{AmountMinor: -700000},
				{AmountMinor: 500000},
				{AmountMinor: 200000},
			},
			want: 1500000,
		},
		{
			name:      "all inflows",
			transfers: []models.Transfer{{AmountMinor: 100}, {AmountMinor: 200}},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransferOutflows(tt.transfers))
		})
	}
}

func TestCashFlowChangePercent(t *testing.T) {
	zero := CashFlowChangePercent(decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, zero.Equal(decimal.Zero))

	negative := CashFlowChangePercent(decimal.NewFromInt(500), decimal.NewFromInt(-10))
	assert.True(t, negative.Equal(decimal.Zero))

	got := CashFlowChangePercent(decimal.NewFromInt(500), decimal.NewFromInt(2000))
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
}
