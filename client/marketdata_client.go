package client

import (
	"context"
	"fmt"

	"grvtbot/env"
	"grvtbot/instrument"
)

// MarketDataClient talks to the GRVT market-data service.
type MarketDataClient struct {
	*Client
}

func NewMarketDataClient(e env.Environment) *MarketDataClient {
	return &MarketDataClient{
		Client: NewClient(e.MarketDataBase),
	}
}

// FetchInstruments retrieves the active instrument listing and builds the
// in-memory directory consumed by the signing core.
func (c *MarketDataClient) FetchInstruments(ctx context.Context) (instrument.Directory, error) {
	var resp AllInstrumentsResponse
	if err := c.post(ctx, "/full/v1/all_instruments", AllInstrumentsRequest{IsActive: true}, &resp); err != nil {
		return nil, fmt.Errorf("fetch instruments failed: %w", err)
	}

	directory := make(instrument.Directory, len(resp.Result))
	for _, inst := range resp.Result {
		directory[inst.Instrument] = instrument.Info{
			Hash:         inst.InstrumentHash,
			BaseDecimals: inst.BaseDecimals,
		}
	}
	return directory, nil
}
