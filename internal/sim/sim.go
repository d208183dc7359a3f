// Package sim owns the simulation state machine: one book, one ledger,
// one clock, advanced a discrete time step at a time. Everything here is
// strictly sequential; a step is matched and settled to completion before
// the clock moves.
package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"mimir/internal/book"
	"mimir/internal/engine"
	"mimir/internal/ledger"
)

type Simulator struct {
	participant string
	book        *book.Book
	ledger      *ledger.Ledger
	settlement  *ledger.Settlement
	engine      *engine.Engine
	clock       *Clock
	log         zerolog.Logger
}

// New wires a simulator around an already seeded book and ledger. The
// book must hold at least one record so the clock has somewhere to start.
func New(participant string, b *book.Book, l *ledger.Ledger, log zerolog.Logger) (*Simulator, error) {
	clock, err := NewClock(b)
	if err != nil {
		return nil, fmt.Errorf("starting clock: %w", err)
	}
	return &Simulator{
		participant: participant,
		book:        b,
		ledger:      l,
		settlement:  ledger.NewSettlement(l, participant),
		engine:      engine.New(participant),
		clock:       clock,
		log:         log,
	}, nil
}

func (s *Simulator) Now() string {
	return s.clock.Now()
}

// Submit admits a participant order at the current timestamp. The order
// is funds-checked first and rejected outright, not queued, if the ledger
// cannot cover it.
func (s *Simulator) Submit(kind book.Kind, product string, price, amount decimal.Decimal) error {
	order := &book.Record{
		ID:        uuid.New().String(),
		Price:     price,
		Amount:    amount,
		Timestamp: s.clock.Now(),
		Product:   product,
		Kind:      kind,
		Owner:     s.participant,
	}

	ok, err := s.settlement.CanFulfill(*order)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s %s @ %s",
			ledger.ErrNotEnoughFunds, kind, product, amount, price)
	}

	s.book.Insert(order)
	s.log.Info().
		Str("id", order.ID).
		Stringer("kind", kind).
		Str("product", product).
		Str("price", price.String()).
		Str("amount", amount.String()).
		Msg("order admitted")
	return nil
}

// Step runs one matching pass over every known product at the current
// time, settles the trades owned by the participant, then advances the
// clock. All emitted trades are returned for reporting, the market-owned
// ones included.
func (s *Simulator) Step() ([]book.Record, error) {
	now := s.clock.Now()

	var all []book.Record
	for _, product := range s.book.KnownProducts() {
		asks := s.book.OrdersFor(book.KindAsk, product, now)
		bids := s.book.OrdersFor(book.KindBid, product, now)

		trades := s.engine.MatchAsksToBids(product, now, asks, bids)
		for _, trade := range trades {
			s.log.Info().
				Str("product", trade.Product).
				Stringer("kind", trade.Kind).
				Str("price", trade.Price.String()).
				Str("amount", trade.Amount.String()).
				Str("owner", trade.Owner).
				Msg("trade")

			if trade.Owner != s.participant {
				continue
			}
			if err := s.settlement.Settle(trade); err != nil {
				return all, fmt.Errorf("settling %s trade: %w", trade.Product, err)
			}
		}
		all = append(all, trades...)
	}

	if err := s.clock.Advance(); err != nil {
		return all, err
	}
	return all, nil
}

// ProductStats summarises the resting ask interest for one product at the
// current time.
type ProductStats struct {
	Product string
	Asks    int
	MaxAsk  decimal.Decimal
	MinAsk  decimal.Decimal
}

// MarketStats reports the ask depth per known product at the current
// time. A product with no resting asks is reported with zero depth.
func (s *Simulator) MarketStats() []ProductStats {
	now := s.clock.Now()

	var stats []ProductStats
	for _, product := range s.book.KnownProducts() {
		asks := s.book.OrdersFor(book.KindAsk, product, now)
		ps := ProductStats{Product: product, Asks: len(asks)}
		if len(asks) > 0 {
			ps.MaxAsk, _ = book.HighPrice(asks)
			ps.MinAsk, _ = book.LowPrice(asks)
		}
		stats = append(stats, ps)
	}
	return stats
}

// Balances exposes the ledger snapshot for reporting.
func (s *Simulator) Balances() map[string]decimal.Decimal {
	return s.ledger.Balances()
}

// Currencies exposes the ledger's known currency codes, sorted.
func (s *Simulator) Currencies() []string {
	return s.ledger.Currencies()
}
