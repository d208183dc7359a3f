package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimir/internal/book"
)

const participant = "simuser"

func fundedSettlement(t *testing.T, balances map[string]string) (*Settlement, *Ledger) {
	t.Helper()
	l := New()
	for currency, balance := range balances {
		require.NoError(t, l.Credit(currency, dec(balance)))
	}
	return NewSettlement(l, participant), l
}

func order(kind book.Kind, product, price, amount string) book.Record {
	return book.Record{
		Price:   dec(price),
		Amount:  dec(amount),
		Product: product,
		Kind:    kind,
		Owner:   participant,
	}
}

func TestCanFulfill_Ask(t *testing.T) {
	s, _ := fundedSettlement(t, map[string]string{"ETH": "1.5"})

	// Selling 2 ETH while holding 1.5 is refused.
	ok, err := s.CanFulfill(order(book.KindAsk, "ETH/USDT", "100", "2"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.CanFulfill(order(book.KindAsk, "ETH/USDT", "100", "1.5"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanFulfill_Bid(t *testing.T) {
	s, _ := fundedSettlement(t, map[string]string{"USDT": "1000"})

	// A bid needs amount * price of the quote currency.
	ok, err := s.CanFulfill(order(book.KindBid, "ETH/USDT", "200", "5"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CanFulfill(order(book.KindBid, "ETH/USDT", "200", "5.1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanFulfill_MalformedProduct(t *testing.T) {
	s, _ := fundedSettlement(t, nil)

	_, err := s.CanFulfill(order(book.KindAsk, "ETHUSDT", "100", "1"))
	assert.ErrorIs(t, err, book.ErrMalformedProduct)
}

func TestCanFulfill_NonOrderKind(t *testing.T) {
	s, _ := fundedSettlement(t, map[string]string{"ETH": "10", "USDT": "10000"})

	ok, err := s.CanFulfill(order(book.KindAskTrade, "ETH/USDT", "1", "1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettle_AskTrade(t *testing.T) {
	s, l := fundedSettlement(t, map[string]string{"BTC": "10", "USDT": "100000"})

	// Sold 0.5 BTC at 10000: base out, quote proceeds in.
	require.NoError(t, s.Settle(order(book.KindAskTrade, "BTC/USDT", "10000", "0.5")))

	balances := l.Balances()
	assert.Equal(t, "9.5", balances["BTC"].String())
	assert.Equal(t, "105000", balances["USDT"].String())
}

func TestSettle_BidTrade(t *testing.T) {
	s, l := fundedSettlement(t, map[string]string{"BTC": "10", "USDT": "100000"})

	// Bought 0.5 BTC at 10000: quote out, base in.
	require.NoError(t, s.Settle(order(book.KindBidTrade, "BTC/USDT", "10000", "0.5")))

	balances := l.Balances()
	assert.Equal(t, "10.5", balances["BTC"].String())
	assert.Equal(t, "95000", balances["USDT"].String())
}

func TestSettle_RefusesOverdraw(t *testing.T) {
	s, l := fundedSettlement(t, map[string]string{"BTC": "0.1", "USDT": "100"})

	err := s.Settle(order(book.KindAskTrade, "BTC/USDT", "10000", "0.5"))
	assert.ErrorIs(t, err, ErrNotEnoughFunds)

	// Nothing moved.
	balances := l.Balances()
	assert.Equal(t, "0.1", balances["BTC"].String())
	assert.Equal(t, "100", balances["USDT"].String())
}

func TestSettle_NonTradeKind(t *testing.T) {
	s, _ := fundedSettlement(t, map[string]string{"BTC": "10", "USDT": "100000"})

	err := s.Settle(order(book.KindAsk, "BTC/USDT", "10000", "0.5"))
	assert.ErrorIs(t, err, ErrNotSettleable)
}

func TestSettle_MalformedProduct(t *testing.T) {
	s, _ := fundedSettlement(t, nil)

	err := s.Settle(order(book.KindAskTrade, "BTCUSDT", "1", "1"))
	assert.ErrorIs(t, err, book.ErrMalformedProduct)
}
