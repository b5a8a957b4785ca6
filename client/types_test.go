package client

import (
	"errors"
	"testing"

	"grvtbot/signing"
)

const wrappedOrderDoc = `{
  "order": {
    "sub_account_id": "9292241",
    "is_market": false,
    "time_in_force": "GOOD_TILL_TIME",
    "post_only": false,
    "reduce_only": false,
    "legs": [
      {"instrument": "BTC_USDT_Perp", "size": "0.01", "limit_price": "65000", "is_buying_asset": true}
    ],
    "builder": "0x4444444444444444444444444444444444444444",
    "builder_fee": "0.001",
    "signature": {"signer": "", "r": "", "s": "", "v": 0, "expiration": "1700000000000000000", "nonce": 123}
  }
}`

const bareOrderDoc = `{
  "sub_account_id": "42",
  "time_in_force": "FILL_OR_KILL",
  "legs": [
    {"instrument": "ETH_USDT_Perp", "size": "1.5", "limit_price": "3400.25", "is_buying_asset": false}
  ],
  "signature": {"expiration": "1700000000000000000", "nonce": 7}
}`

func TestParseOrderDocumentWrapped(t *testing.T) {
	order, err := ParseOrderDocument([]byte(wrappedOrderDoc))
	if err != nil {
		t.Fatalf("ParseOrderDocument failed: %v", err)
	}

	if order.SubAccountID != 9292241 {
		t.Errorf("sub account id = %d", order.SubAccountID)
	}
	if order.TimeInForce != signing.GoodTillTime {
		t.Errorf("time in force = %q", order.TimeInForce)
	}
	if len(order.Legs) != 1 || order.Legs[0].Instrument != "BTC_USDT_Perp" {
		t.Errorf("legs = %+v", order.Legs)
	}
	if order.Signature.Nonce != 123 || order.Signature.Expiration != 1700000000000000000 {
		t.Errorf("signature fields = %+v", order.Signature)
	}
}

func TestParseOrderDocumentBare(t *testing.T) {
	order, err := ParseOrderDocument([]byte(bareOrderDoc))
	if err != nil {
		t.Fatalf("ParseOrderDocument failed: %v", err)
	}

	if order.SubAccountID != 42 {
		t.Errorf("sub account id = %d", order.SubAccountID)
	}
	if order.TimeInForce != signing.FillOrKill {
		t.Errorf("time in force = %q", order.TimeInForce)
	}
	if order.Legs[0].IsBuyingAsset {
		t.Errorf("leg side = %v, want selling", order.Legs[0].IsBuyingAsset)
	}
}

func TestParseOrderDocumentMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "not json at all"},
		{"bad sub account id", `{"sub_account_id": "abc", "legs": []}`},
		{"bad expiration", `{"sub_account_id": "1", "signature": {"expiration": "soon"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOrderDocument([]byte(tt.doc)); !errors.Is(err, signing.ErrMalformedPayload) {
				t.Errorf("expected ErrMalformedPayload, got %v", err)
			}
		})
	}
}

func TestOrderCoreRoundTrip(t *testing.T) {
	order, err := ParseOrderDocument([]byte(wrappedOrderDoc))
	if err != nil {
		t.Fatal(err)
	}

	order.Signature.Signer = "0x1111111111111111111111111111111111111111"
	order.Signature.R = "0xaa"
	order.Signature.S = "0xbb"
	order.Signature.V = 28

	wire := OrderFromCore(order)
	if wire.SubAccountID != "9292241" {
		t.Errorf("sub_account_id = %q", wire.SubAccountID)
	}
	if wire.Signature.Expiration != "1700000000000000000" {
		t.Errorf("expiration = %q", wire.Signature.Expiration)
	}

	back, err := OrderToCore(wire)
	if err != nil {
		t.Fatal(err)
	}
	if back.SubAccountID != order.SubAccountID ||
		back.Signature != order.Signature ||
		len(back.Legs) != len(order.Legs) {
		t.Error("wire round trip lost fields")
	}
}
