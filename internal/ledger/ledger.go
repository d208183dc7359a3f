package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("negative amount")
	ErrNotEnoughFunds = errors.New("not enough funds")
	ErrNotSettleable  = errors.New("record is not a trade")
)

// Ledger holds the participant's balance per currency code. Balances never
// go negative: every debit is checked in full before any mutation, there
// is no partial debit and no compensating rollback.
type Ledger struct {
	balances map[string]decimal.Decimal
}

func New() *Ledger {
	return &Ledger{balances: make(map[string]decimal.Decimal)}
}

// Credit adds to a currency's balance, creating the entry at zero if
// absent. A negative amount is a caller bug and is rejected.
func (l *Ledger) Credit(currency string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: credit %s %s", ErrNegativeAmount, amount, currency)
	}
	l.balances[currency] = l.balances[currency].Add(amount)
	return nil
}

// Debit subtracts from a currency's balance. Reports false, leaving the
// balance untouched, on a negative amount, an unknown currency or an
// insufficient balance.
func (l *Ledger) Debit(currency string, amount decimal.Decimal) bool {
	if amount.IsNegative() {
		return false
	}
	if !l.HasFunds(currency, amount) {
		return false
	}
	l.balances[currency] = l.balances[currency].Sub(amount)
	return true
}

// HasFunds reports whether the currency is known and its balance covers
// amount.
func (l *Ledger) HasFunds(currency string, amount decimal.Decimal) bool {
	balance, ok := l.balances[currency]
	return ok && balance.GreaterThanOrEqual(amount)
}

// Balances returns a snapshot of the ledger. Mutating it does not touch
// the ledger.
func (l *Ledger) Balances() map[string]decimal.Decimal {
	snapshot := make(map[string]decimal.Decimal, len(l.balances))
	for currency, balance := range l.balances {
		snapshot[currency] = balance
	}
	return snapshot
}

// Currencies returns the known currency codes, sorted.
func (l *Ledger) Currencies() []string {
	currencies := make([]string, 0, len(l.balances))
	for currency := range l.balances {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	return currencies
}

func (l *Ledger) String() string {
	var sb strings.Builder
	for _, currency := range l.Currencies() {
		fmt.Fprintf(&sb, "%s : %s\n", currency, l.balances[currency])
	}
	return sb.String()
}
