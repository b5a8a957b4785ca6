package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"grvtbot/env"
	"grvtbot/logger"
)

// WSMarketClient streams market-data updates for subscribed instruments
// over the GRVT market-data websocket.
type WSMarketClient struct {
	*WSClient
	requestID    atomic.Int64
	onMiniTicker func(MiniTickerMessage)
	onTrade      func(TradeMessage)
}

type WSMarketCallbacks struct {
	OnMiniTicker func(MiniTickerMessage)
	OnTrade      func(TradeMessage)
}

type wsSubscribeRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  wsSubscribeParams `json:"params"`
	ID      int64             `json:"id"`
}

type wsSubscribeParams struct {
	Stream    string   `json:"stream"`
	Selectors []string `json:"selectors"`
}

type wsFeedMessage struct {
	Stream   string          `json:"stream"`
	Selector string          `json:"selector"`
	Feed     json.RawMessage `json:"feed"`
}

// MiniTickerMessage is one snapshot of the lite ticker feed.
type MiniTickerMessage struct {
	EventTime    string `json:"event_time"`
	Instrument   string `json:"instrument"`
	MarkPrice    string `json:"mark_price"`
	IndexPrice   string `json:"index_price"`
	LastPrice    string `json:"last_price"`
	LastSize     string `json:"last_size"`
	MidPrice     string `json:"mid_price"`
	BestBidPrice string `json:"best_bid_price"`
	BestBidSize  string `json:"best_bid_size"`
	BestAskPrice string `json:"best_ask_price"`
	BestAskSize  string `json:"best_ask_size"`
}

// TradeMessage is one public trade from the trade feed.
type TradeMessage struct {
	EventTime    string `json:"event_time"`
	Instrument   string `json:"instrument"`
	IsTakerBuyer bool   `json:"is_taker_buyer"`
	Size         string `json:"size"`
	Price        string `json:"price"`
	MarkPrice    string `json:"mark_price"`
	TradeID      string `json:"trade_id"`
}

func NewWSMarketClient(e env.Environment, callbacks WSMarketCallbacks, log logger.Logger) *WSMarketClient {
	wsURL := strings.Replace(e.MarketDataBase, "https://", "wss://", 1) + "/ws"
	return &WSMarketClient{
		WSClient:     NewWSClient(wsURL, log),
		onMiniTicker: callbacks.OnMiniTicker,
		onTrade:      callbacks.OnTrade,
	}
}

// SubscribeMiniTicker subscribes to the lite ticker feed for the given
// instruments.
func (ws *WSMarketClient) SubscribeMiniTicker(instruments []string) error {
	return ws.subscribe("mini.s", instruments)
}

// SubscribeTrades subscribes to the public trade feed for the given
// instruments.
func (ws *WSMarketClient) SubscribeTrades(instruments []string) error {
	return ws.subscribe("trade", instruments)
}

func (ws *WSMarketClient) subscribe(stream string, selectors []string) error {
	if ws.WSClient == nil {
		return fmt.Errorf("websocket not connected")
	}

	req := wsSubscribeRequest{
		JSONRPC: "2.0",
		Method:  "subscribe",
		Params:  wsSubscribeParams{Stream: stream, Selectors: selectors},
		ID:      ws.requestID.Add(1),
	}
	if err := ws.WriteJSON(req); err != nil {
		return fmt.Errorf("failed to send subscribe message: %w", err)
	}
	ws.logger.Info("ws_subscribed", "stream", stream, "count", len(selectors))
	return nil
}

func (ws *WSMarketClient) dispatchOne(message []byte) {
	var feed wsFeedMessage
	if err := json.Unmarshal(message, &feed); err != nil || len(feed.Feed) == 0 {
		return
	}

	switch {
	case strings.HasPrefix(feed.Stream, "mini"):
		if ws.onMiniTicker != nil {
			var m MiniTickerMessage
			if err := json.Unmarshal(feed.Feed, &m); err == nil {
				ws.onMiniTicker(m)
			}
		}
	case strings.HasPrefix(feed.Stream, "trade"):
		if ws.onTrade != nil {
			var m TradeMessage
			if err := json.Unmarshal(feed.Feed, &m); err == nil {
				ws.onTrade(m)
			}
		}
	}
}

// Listen reads feed messages until the context is cancelled or the
// connection drops.
func (ws *WSMarketClient) Listen(ctx context.Context) error {
	if ws.WSClient == nil {
		return fmt.Errorf("websocket not connected")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			_, message, err := ws.ReadMessage()
			if err != nil {
				return err
			}
			ws.dispatchOne(message)
		}
	}
}

func (ws *WSMarketClient) Close() error { return ws.WSClient.Close() }
