package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the simulator.
type Config struct {
	// Participant is the simulated trading identity. Every other record
	// in the dataset is anonymous market interest.
	Participant string `env:"SIM_PARTICIPANT" envDefault:"simuser"`

	// DataFile optionally names a csv order dataset
	// (timestamp,product,kind,price,amount per line). When empty the
	// built-in dataset is used.
	DataFile string `env:"SIM_DATA_FILE"`

	// Balances seeds the ledger, currency code to opening balance.
	Balances map[string]string `env:"SIM_BALANCES" envDefault:"BTC:10,USDT:100000"`
}

// Load reads the configuration from environment variables, and from a
// .env file if one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
