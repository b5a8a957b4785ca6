package client

import (
	"net/http"
	"time"

	"grvtbot/logger"

	"github.com/gorilla/websocket"
)

// WSClient provides shared websocket utilities (connect, read/write,
// keepalive, close) used by specialized clients like WSMarketClient.
type WSClient struct {
	conn         *websocket.Conn
	url          string
	auth         AuthProvider
	logger       logger.Logger
	pingInterval time.Duration
	stopPing     chan struct{}
}

func NewWSClient(url string, logger logger.Logger) *WSClient {
	return &WSClient{
		url:          url,
		logger:       logger,
		pingInterval: 50 * time.Second,
		stopPing:     make(chan struct{}),
	}
}

// SetAuth configures an optional AuthProvider applied to the handshake
// request, for session-authenticated streams.
func (ws *WSClient) SetAuth(auth AuthProvider) {
	ws.auth = auth
}

func (ws *WSClient) Connect() error {
	reqHeaders := make(http.Header)
	if ws.auth != nil {
		req := &http.Request{Header: reqHeaders}
		if err := ws.auth.Apply(req); err != nil {
			return err
		}
	}
	conn, resp, err := websocket.DefaultDialer.Dial(ws.url, reqHeaders)
	if err != nil {
		if resp != nil {
			ws.logger.Error("ws_connect_failed", "status", resp.Status, "err", err)
		}
		return err
	}
	ws.conn = conn
	ws.logger.Info("ws_connected", "url", ws.url)

	go ws.startPinger()

	return nil
}

func (ws *WSClient) Close() error {
	close(ws.stopPing)
	if ws.conn != nil {
		return ws.conn.Close()
	}
	return nil
}

func (ws *WSClient) WriteJSON(v any) error {
	if ws.conn == nil {
		return websocket.ErrBadHandshake
	}
	return ws.conn.WriteJSON(v)
}

func (ws *WSClient) ReadMessage() (int, []byte, error) {
	if ws.conn == nil {
		return 0, nil, websocket.ErrBadHandshake
	}
	return ws.conn.ReadMessage()
}

func (ws *WSClient) startPinger() {
	ticker := time.NewTicker(ws.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ws.stopPing:
			return
		case <-ticker.C:
			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				ws.logger.Error("ping_failed", "err", err)
				return
			}
		}
	}
}
