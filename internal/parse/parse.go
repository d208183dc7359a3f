// Package parse turns raw text lines into validated records. It is the
// only place raw input is inspected; the matching and settlement core
// never sees an unparsed string.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mimir/internal/book"
)

var (
	ErrBadLine     = errors.New("malformed line")
	ErrBadNumber   = errors.New("malformed number")
	ErrNotPositive = errors.New("price and amount must be positive")
)

// Tokenise splits a line on the separator. Empty tokens are dropped, so
// runs of separators and leading or trailing separators are skipped.
func Tokenise(line string, separator rune) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == separator
	})
}

// Triple is one validated order entry from interactive input,
// "product,price,amount".
type Triple struct {
	Product string
	Price   decimal.Decimal
	Amount  decimal.Decimal
}

// OrderLine parses and validates a "product,price,amount" line.
func OrderLine(line string) (Triple, error) {
	tokens := Tokenise(line, ',')
	if len(tokens) != 3 {
		return Triple{}, fmt.Errorf("%w: want product,price,amount, got %d fields",
			ErrBadLine, len(tokens))
	}
	if _, _, err := book.SplitProduct(tokens[0]); err != nil {
		return Triple{}, err
	}
	price, amount, err := positivePair(tokens[1], tokens[2])
	if err != nil {
		return Triple{}, err
	}
	return Triple{Product: tokens[0], Price: price, Amount: amount}, nil
}

// DatasetLine parses one "timestamp,product,kind,price,amount" dataset
// line into a market-owned record. Kind is "bid" or "ask".
func DatasetLine(line string) (*book.Record, error) {
	tokens := Tokenise(line, ',')
	if len(tokens) != 5 {
		return nil, fmt.Errorf("%w: want timestamp,product,kind,price,amount, got %d fields",
			ErrBadLine, len(tokens))
	}

	var kind book.Kind
	switch tokens[2] {
	case "bid":
		kind = book.KindBid
	case "ask":
		kind = book.KindAsk
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrBadLine, tokens[2])
	}

	if _, _, err := book.SplitProduct(tokens[1]); err != nil {
		return nil, err
	}
	price, amount, err := positivePair(tokens[3], tokens[4])
	if err != nil {
		return nil, err
	}

	return &book.Record{
		ID:        uuid.New().String(),
		Price:     price,
		Amount:    amount,
		Timestamp: tokens[0],
		Product:   tokens[1],
		Kind:      kind,
		Owner:     book.MarketOwner,
	}, nil
}

// Records reads a whole dataset, one DatasetLine per non-blank line.
func Records(r io.Reader) ([]*book.Record, error) {
	var records []*book.Record
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		rec, err := DatasetLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func positivePair(priceToken, amountToken string) (price, amount decimal.Decimal, err error) {
	price, err = decimal.NewFromString(priceToken)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: price %q", ErrBadNumber, priceToken)
	}
	amount, err = decimal.NewFromString(amountToken)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: amount %q", ErrBadNumber, amountToken)
	}
	if !price.IsPositive() || !amount.IsPositive() {
		return decimal.Decimal{}, decimal.Decimal{}, ErrNotPositive
	}
	return price, amount, nil
}
