package book

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformedProduct = errors.New("malformed product")

// MarketOwner marks resting interest that belongs to the anonymous dataset
// rather than the simulated participant.
const MarketOwner = "market"

// Kind classifies a record: resting interest on either side of the book,
// or the terminal trade records emitted when the two sides cross.
type Kind int

const (
	KindUnknown Kind = iota
	KindBid
	KindAsk
	KindAskTrade
	KindBidTrade
)

func (k Kind) String() string {
	switch k {
	case KindBid:
		return "bid"
	case KindAsk:
		return "ask"
	case KindAskTrade:
		return "ask-trade"
	case KindBidTrade:
		return "bid-trade"
	}
	return "unknown"
}

// Record is one entry in the book, or one trade produced by matching.
// Amount is the remaining quantity and is reduced in place by the matching
// engine; every other field is fixed at creation. Trade-kind records never
// enter the book: they are consumed once by settlement.
type Record struct {
	ID        string          // Tracked uuid, empty for trade records
	Price     decimal.Decimal //
	Amount    decimal.Decimal // Remaining quantity
	Timestamp string          // Opaque sortable timestamp
	Product   string          // BASE/QUOTE currency pair
	Kind      Kind            // Record kind
	Owner     string          // Who owns this record

	seq uint64 // Arrival order, assigned by the book on insert
}

// SplitProduct splits a BASE/QUOTE product string into its two currency
// codes.
func SplitProduct(product string) (base, quote string, err error) {
	parts := strings.Split(product, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedProduct, product)
	}
	return parts[0], parts[1], nil
}

// Pair returns the record's base and quote currency codes.
func (r Record) Pair() (base, quote string, err error) {
	return SplitProduct(r.Product)
}

func (r Record) String() string {
	return fmt.Sprintf(
		`Product:   %s
Kind:      %v
Price:     %s
Amount:    %s
Timestamp: %s
Owner:     %s`,
		r.Product,
		r.Kind,
		r.Price,
		r.Amount,
		r.Timestamp,
		r.Owner,
	)
}
