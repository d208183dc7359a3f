package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitProduct(t *testing.T) {
	base, quote, err := SplitProduct("ETH/USDT")
	require.NoError(t, err)
	assert.Equal(t, "ETH", base)
	assert.Equal(t, "USDT", quote)
}

func TestSplitProduct_Malformed(t *testing.T) {
	for _, product := range []string{"", "ETH", "ETH/", "/USDT", "ETH/USDT/BTC"} {
		_, _, err := SplitProduct(product)
		assert.ErrorIs(t, err, ErrMalformedProduct, "product %q", product)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bid", KindBid.String())
	assert.Equal(t, "ask", KindAsk.String())
	assert.Equal(t, "ask-trade", KindAskTrade.String())
	assert.Equal(t, "bid-trade", KindBidTrade.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
