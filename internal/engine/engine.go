// Package engine crosses resting asks against resting bids for a single
// product at a single timestamp. It is the sole mutator of the matched
// records' amounts during a pass; everything else it leaves alone.
package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"mimir/internal/book"
)

type Engine struct {
	// The simulated participant. Trades touching their resting orders are
	// attributed to them; everything else settles nowhere and is reported
	// as market activity.
	participant string
}

func New(participant string) *Engine {
	return &Engine{participant: participant}
}

// MatchAsksToBids crosses the given asks and bids and returns the trades
// in emission order. Each trade executes at the ask's price. Matched
// records are reduced in place; a fully consumed record ends at amount
// zero and is skipped, without error, by any further pass.
//
// The scan is ask-major in ascending price, bid-minor in descending
// price, with stable sorts so arrival order breaks price ties. A bid
// priced below the current ask is skipped rather than ending the scan.
func (e *Engine) MatchAsksToBids(product, timestamp string, asks, bids []*book.Record) []book.Record {
	sort.SliceStable(asks, func(i, j int) bool {
		return asks[i].Price.LessThan(asks[j].Price)
	})
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Price.GreaterThan(bids[j].Price)
	})

	var trades []book.Record
	for _, ask := range asks {
		if !ask.Amount.IsPositive() {
			continue
		}
		for _, bid := range bids {
			if bid.Price.LessThan(ask.Price) {
				continue
			}

			trade := book.Record{
				Price:     ask.Price,
				Timestamp: timestamp,
				Product:   product,
				Kind:      book.KindAskTrade,
				Owner:     book.MarketOwner,
			}
			// Bid attribution first, ask attribution second: when both
			// sides are the participant's own orders, the ask side wins.
			if bid.Owner == e.participant {
				trade.Owner = e.participant
				trade.Kind = book.KindBidTrade
			}
			if ask.Owner == e.participant {
				trade.Owner = e.participant
				trade.Kind = book.KindAskTrade
			}

			if bid.Amount.Equal(ask.Amount) {
				trade.Amount = ask.Amount
				trades = append(trades, trade)
				ask.Amount = decimal.Zero
				bid.Amount = decimal.Zero
				break
			}
			if bid.Amount.GreaterThan(ask.Amount) {
				trade.Amount = ask.Amount
				trades = append(trades, trade)
				bid.Amount = bid.Amount.Sub(ask.Amount)
				ask.Amount = decimal.Zero
				break
			}
			if bid.Amount.IsPositive() {
				// Bid smaller than the ask: consume the bid and keep
				// scanning further bids against the remainder.
				trade.Amount = bid.Amount
				trades = append(trades, trade)
				ask.Amount = ask.Amount.Sub(bid.Amount)
				bid.Amount = decimal.Zero
			}
			// A zero-amount bid was consumed earlier in the scan; move on.
		}
	}
	return trades
}
