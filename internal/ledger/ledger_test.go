package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCredit(t *testing.T) {
	l := New()

	require.NoError(t, l.Credit("BTC", dec("10")))
	require.NoError(t, l.Credit("BTC", dec("2.5")))
	require.NoError(t, l.Credit("USDT", dec("0")))

	balances := l.Balances()
	assert.Equal(t, "12.5", balances["BTC"].String())
	assert.Equal(t, "0", balances["USDT"].String())
}

func TestCredit_NegativeAmount(t *testing.T) {
	l := New()

	err := l.Credit("BTC", dec("-1"))
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Empty(t, l.Balances())
}

func TestDebit(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit("BTC", dec("10")))

	assert.True(t, l.Debit("BTC", dec("4")))
	assert.Equal(t, "6", l.Balances()["BTC"].String())

	// Down to exactly zero is allowed.
	assert.True(t, l.Debit("BTC", dec("6")))
	assert.Equal(t, "0", l.Balances()["BTC"].String())
}

func TestDebit_Refusals(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit("BTC", dec("1")))

	assert.False(t, l.Debit("BTC", dec("-1")), "negative amount")
	assert.False(t, l.Debit("ETH", dec("1")), "unknown currency")
	assert.False(t, l.Debit("BTC", dec("1.00000001")), "insufficient balance")

	// A refused debit must leave the balance untouched.
	assert.Equal(t, "1", l.Balances()["BTC"].String())
}

func TestHasFunds_TracksRunningBalance(t *testing.T) {
	l := New()

	assert.False(t, l.HasFunds("BTC", dec("0")), "unknown currency has no funds")

	require.NoError(t, l.Credit("BTC", dec("3")))
	assert.True(t, l.HasFunds("BTC", dec("3")))
	assert.False(t, l.HasFunds("BTC", dec("3.1")))

	l.Debit("BTC", dec("1"))
	assert.True(t, l.HasFunds("BTC", dec("2")))
	assert.False(t, l.HasFunds("BTC", dec("2.5")))
}

func TestBalances_Snapshot(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit("BTC", dec("1")))

	snapshot := l.Balances()
	snapshot["BTC"] = dec("999")

	assert.Equal(t, "1", l.Balances()["BTC"].String())
}

func TestCurrenciesAndString(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit("USDT", dec("100000")))
	require.NoError(t, l.Credit("BTC", dec("10")))

	assert.Equal(t, []string{"BTC", "USDT"}, l.Currencies())
	assert.Equal(t, "BTC : 10\nUSDT : 100000\n", l.String())
}
