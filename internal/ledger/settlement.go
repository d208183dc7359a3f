package ledger

import (
	"fmt"

	"mimir/internal/book"
)

// Settlement applies the participant's orders and trades to a Ledger. It
// is a policy over the Ledger's public contract only; it holds no balance
// state of its own.
type Settlement struct {
	ledger      *Ledger
	participant string
}

func NewSettlement(l *Ledger, participant string) *Settlement {
	return &Settlement{ledger: l, participant: participant}
}

// CanFulfill reports whether the ledger covers a new order: an ask needs
// the base currency in the order's amount, a bid needs the quote currency
// at amount times price.
func (s *Settlement) CanFulfill(order book.Record) (bool, error) {
	base, quote, err := order.Pair()
	if err != nil {
		return false, err
	}
	switch order.Kind {
	case book.KindAsk:
		return s.ledger.HasFunds(base, order.Amount), nil
	case book.KindBid:
		return s.ledger.HasFunds(quote, order.Amount.Mul(order.Price)), nil
	}
	return false, nil
}

// Settle posts one trade's currency movements. An ask trade gives up the
// base asset and receives the quote proceeds; a bid trade is the reverse.
// Sufficiency was established when the order was admitted; the debit here
// still goes through the Ledger's guarded path, so a trade that would
// overdraw is refused instead of applied.
func (s *Settlement) Settle(trade book.Record) error {
	base, quote, err := trade.Pair()
	if err != nil {
		return err
	}
	proceeds := trade.Amount.Mul(trade.Price)
	switch trade.Kind {
	case book.KindAskTrade:
		if !s.ledger.Debit(base, trade.Amount) {
			return fmt.Errorf("%w: %s %s", ErrNotEnoughFunds, trade.Amount, base)
		}
		return s.ledger.Credit(quote, proceeds)
	case book.KindBidTrade:
		if !s.ledger.Debit(quote, proceeds) {
			return fmt.Errorf("%w: %s %s", ErrNotEnoughFunds, proceeds, quote)
		}
		return s.ledger.Credit(base, trade.Amount)
	}
	return fmt.Errorf("%w: %v", ErrNotSettleable, trade.Kind)
}
