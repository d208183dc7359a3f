package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	tomb "gopkg.in/tomb.v2"

	"mimir/internal/book"
	"mimir/internal/config"
	"mimir/internal/ledger"
	"mimir/internal/parse"
	"mimir/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}

	simulator, err := setup(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to set up simulation")
	}

	// The menu loop is the only long-running routine; the tomb ties its
	// lifetime to the signal context.
	t, _ := tomb.WithContext(ctx)
	t.Go(func() error {
		defer t.Kill(nil)
		return menuLoop(t, simulator)
	})
	if err := t.Wait(); err != nil {
		log.Fatal().Err(err).Msg("simulation stopped")
	}
}

func setup(cfg config.Config) (*sim.Simulator, error) {
	records, err := loadRecords(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	b := book.New()
	for _, rec := range records {
		b.Insert(rec)
	}

	l := ledger.New()
	for currency, balance := range cfg.Balances {
		amount, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("opening balance for %s: %w", currency, err)
		}
		if err := l.Credit(currency, amount); err != nil {
			return nil, err
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	return sim.New(cfg.Participant, b, l, logger)
}

func loadRecords(cfg config.Config) ([]*book.Record, error) {
	if cfg.DataFile == "" {
		return seedRecords(), nil
	}
	f, err := os.Open(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse.Records(f)
}

// seedRecords is the built-in dataset: two products over two timestamps.
func seedRecords() []*book.Record {
	rec := func(price, amount, timestamp, product string, kind book.Kind) *book.Record {
		return &book.Record{
			ID:        uuid.New().String(),
			Price:     decimal.RequireFromString(price),
			Amount:    decimal.RequireFromString(amount),
			Timestamp: timestamp,
			Product:   product,
			Kind:      kind,
			Owner:     book.MarketOwner,
		}
	}
	return []*book.Record{
		rec("10000", "0.5", "2020/03/17 17:01:24", "BTC/USDT", book.KindBid),
		rec("10500", "0.2", "2020/03/17 17:01:24", "BTC/USDT", book.KindAsk),
		rec("10100", "1.0", "2020/03/17 17:01:24", "BTC/USDT", book.KindBid),
		rec("200", "50", "2020/03/17 17:01:30", "ETH/USDT", book.KindAsk),
		rec("190", "10", "2020/03/17 17:01:30", "ETH/USDT", book.KindBid),
	}
}

func menuLoop(t *tomb.Tomb, simulator *sim.Simulator) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-t.Dying():
			return nil
		default:
		}

		printMenu(simulator.Now())
		if !scanner.Scan() {
			return scanner.Err()
		}

		option, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Println("Type a number between 1 and 7.")
			continue
		}
		switch option {
		case 1:
			fmt.Println("Help - your aim is to make money. Analyse the market and trade.")
		case 2:
			printMarketStats(simulator)
		case 3:
			submit(scanner, simulator, book.KindAsk)
		case 4:
			submit(scanner, simulator, book.KindBid)
		case 5:
			printBalances(simulator)
		case 6:
			fmt.Println("Going to next time frame...")
			trades, err := simulator.Step()
			if err != nil {
				return err
			}
			fmt.Println("Trades:", len(trades))
			for _, trade := range trades {
				fmt.Printf("  %s %s @ %s (%s)\n",
					trade.Product, trade.Amount, trade.Price, trade.Owner)
			}
		case 7:
			return nil
		default:
			fmt.Println("Type a number between 1 and 7.")
		}
	}
}

func printMenu(now string) {
	fmt.Println("========================================")
	fmt.Println("MIMIR TRADING SIMULATOR")
	fmt.Println("Current time:", now)
	fmt.Println("========================================")
	fmt.Println("1: Print help")
	fmt.Println("2: Print exchange stats")
	fmt.Println("3: Make an ask (sell)")
	fmt.Println("4: Make a bid (buy)")
	fmt.Println("5: Print balances")
	fmt.Println("6: Continue (next time step)")
	fmt.Println("7: Quit")
	fmt.Print("Type in 1-7: ")
}

func printMarketStats(simulator *sim.Simulator) {
	for _, stats := range simulator.MarketStats() {
		fmt.Println("Product:", stats.Product)
		if stats.Asks == 0 {
			fmt.Println("  No asks")
			continue
		}
		fmt.Println("  Asks seen:", stats.Asks)
		fmt.Println("  Max ask:  ", stats.MaxAsk)
		fmt.Println("  Min ask:  ", stats.MinAsk)
	}
}

func printBalances(simulator *sim.Simulator) {
	balances := simulator.Balances()
	for _, currency := range simulator.Currencies() {
		fmt.Printf("%s : %s\n", currency, balances[currency])
	}
}

func submit(scanner *bufio.Scanner, simulator *sim.Simulator, kind book.Kind) {
	fmt.Printf("Make a %s - enter product,price,amount, eg ETH/BTC,200,0.5\n", kind)
	if !scanner.Scan() {
		return
	}

	triple, err := parse.OrderLine(scanner.Text())
	if err != nil {
		fmt.Println("Bad input:", err)
		return
	}
	if err := simulator.Submit(kind, triple.Product, triple.Price, triple.Amount); err != nil {
		fmt.Println("Order rejected:", err)
		return
	}
	fmt.Println("Order admitted to the book.")
}
