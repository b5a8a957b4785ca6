package env

import "fmt"

// Environment describes one GRVT deployment target. The chain id is fixed
// per environment and is the value used in the EIP-712 signing domain; it is
// never taken from a server response.
type Environment struct {
	Name           string
	ChainID        int64
	EdgeBase       string
	TradesBase     string
	MarketDataBase string
}

var registry = map[string]Environment{
	"dev": {
		Name:           "dev",
		ChainID:        327,
		EdgeBase:       "https://edge.dev.gravitymarkets.io",
		TradesBase:     "https://trades.dev.gravitymarkets.io",
		MarketDataBase: "https://market-data.dev.gravitymarkets.io",
	},
	"staging": {
		Name:           "staging",
		ChainID:        327,
		EdgeBase:       "https://edge.staging.gravitymarkets.io",
		TradesBase:     "https://trades.staging.gravitymarkets.io",
		MarketDataBase: "https://market-data.staging.gravitymarkets.io",
	},
	"testnet": {
		Name:           "testnet",
		ChainID:        326,
		EdgeBase:       "https://edge.testnet.grvt.io",
		TradesBase:     "https://trades.testnet.grvt.io",
		MarketDataBase: "https://market-data.testnet.grvt.io",
	},
	"prod": {
		Name:           "prod",
		ChainID:        325,
		EdgeBase:       "https://edge.grvt.io",
		TradesBase:     "https://trades.grvt.io",
		MarketDataBase: "https://market-data.grvt.io",
	},
}

// Lookup resolves an environment by name.
func Lookup(name string) (Environment, error) {
	e, ok := registry[name]
	if !ok {
		return Environment{}, fmt.Errorf("unknown environment %q", name)
	}
	return e, nil
}

// Names returns the known environment names, for CLI help output.
func Names() []string {
	return []string{"dev", "staging", "testnet", "prod"}
}
