package client

import (
	"context"
	"fmt"

	"grvtbot/env"
	"grvtbot/signing"
)

// TradeClient talks to the GRVT trading service using session credentials.
type TradeClient struct {
	*Client
}

func NewTradeClient(e env.Environment, session Session) *TradeClient {
	c := NewClient(e.TradesBase)
	c.SetAuth(SessionAuth{Session: session})
	return &TradeClient{Client: c}
}

// CreateOrder submits a signed order. The order must already carry a
// complete signature; this client performs no signing of its own.
func (tc *TradeClient) CreateOrder(ctx context.Context, order signing.Order) (*CreateOrderResponse, error) {
	if order.Signature.R == "" || order.Signature.S == "" {
		return nil, fmt.Errorf("%w: order is not signed", signing.ErrMalformedPayload)
	}

	req := CreateOrderRequest{Order: OrderFromCore(order)}

	var resp CreateOrderResponse
	if err := tc.post(ctx, "/full/v1/create_order", req, &resp); err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}
	return &resp, nil
}

// GetSubAccounts lists the sub accounts of the authenticated account.
func (tc *TradeClient) GetSubAccounts(ctx context.Context) (*SubAccountsResponse, error) {
	var resp SubAccountsResponse
	if err := tc.post(ctx, "/full/v1/get_sub_accounts", struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("get sub accounts failed: %w", err)
	}
	return &resp, nil
}
