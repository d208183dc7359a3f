package book

import (
	"errors"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

var ErrEmptyInput = errors.New("empty record set")

// Book is the time-ordered store of resting interest. Records are keyed by
// timestamp, with equal timestamps kept in arrival order, so a scan always
// walks the timeline in submission order.
type Book struct {
	records *btree.BTreeG[*Record]
	nextSeq uint64
}

func New() *Book {
	records := btree.NewBTreeG(func(a, b *Record) bool {
		if a.Timestamp == b.Timestamp {
			return a.seq < b.seq
		}
		return a.Timestamp < b.Timestamp
	})
	return &Book{records: records}
}

// Insert stores the record at its timestamp, behind any record already
// holding the same timestamp.
func (b *Book) Insert(rec *Record) {
	rec.seq = b.nextSeq
	b.nextSeq++
	b.records.Set(rec)
}

// Len returns the number of records held, exhausted ones included.
func (b *Book) Len() int {
	return b.records.Len()
}

// KnownProducts returns the distinct products across all records, sorted
// lexicographically so iteration by the driver is reproducible.
func (b *Book) KnownProducts() []string {
	seen := make(map[string]struct{})
	b.records.Scan(func(rec *Record) bool {
		seen[rec.Product] = struct{}{}
		return true
	})

	products := make([]string, 0, len(seen))
	for product := range seen {
		products = append(products, product)
	}
	sort.Strings(products)
	return products
}

// OrdersFor returns the records matching kind, product and timestamp
// exactly, in book order. The pointers alias the stored records, so amount
// reductions made by the matching engine remain visible to later queries.
func (b *Book) OrdersFor(kind Kind, product, timestamp string) []*Record {
	var matched []*Record
	b.records.Ascend(&Record{Timestamp: timestamp}, func(rec *Record) bool {
		if rec.Timestamp != timestamp {
			return false
		}
		if rec.Kind == kind && rec.Product == product {
			matched = append(matched, rec)
		}
		return true
	})
	return matched
}

// EarliestTimestamp returns the timestamp of the first record in book
// order.
func (b *Book) EarliestTimestamp() (string, error) {
	rec, ok := b.records.Min()
	if !ok {
		return "", ErrEmptyInput
	}
	return rec.Timestamp, nil
}

// NextTimestamp returns the smallest timestamp strictly after current,
// wrapping to the earliest known timestamp when none is later. The
// simulation never runs out of timeline: it replays cyclically.
func (b *Book) NextTimestamp(current string) (string, error) {
	var next string
	// The pivot sorts after every record sharing the current timestamp,
	// so the first record visited is already in the future.
	b.records.Ascend(&Record{Timestamp: current, seq: math.MaxUint64}, func(rec *Record) bool {
		next = rec.Timestamp
		return false
	})
	if next == "" {
		return b.EarliestTimestamp()
	}
	return next, nil
}

// HighPrice returns the highest price across the given records.
func HighPrice(records []*Record) (decimal.Decimal, error) {
	if len(records) == 0 {
		return decimal.Decimal{}, ErrEmptyInput
	}
	high := records[0].Price
	for _, rec := range records[1:] {
		if rec.Price.GreaterThan(high) {
			high = rec.Price
		}
	}
	return high, nil
}

// LowPrice returns the lowest price across the given records.
func LowPrice(records []*Record) (decimal.Decimal, error) {
	if len(records) == 0 {
		return decimal.Decimal{}, ErrEmptyInput
	}
	low := records[0].Price
	for _, rec := range records[1:] {
		if rec.Price.LessThan(low) {
			low = rec.Price
		}
	}
	return low, nil
}
