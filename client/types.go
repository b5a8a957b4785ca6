package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	"grvtbot/signing"
)

// =============================
// Wire Types
// =============================

// OrderSignature is the signature sub-record carried on wire payloads.
// Expiration and chain id travel as strings; nonce and v as numbers.
type OrderSignature struct {
	Signer     string `json:"signer"`
	R          string `json:"r"`
	S          string `json:"s"`
	V          uint8  `json:"v"`
	Expiration string `json:"expiration"`
	Nonce      uint32 `json:"nonce"`
	ChainID    string `json:"chain_id,omitempty"`
}

// OrderLeg is one leg of an order as submitted to the trading API, with
// human decimal quantities.
type OrderLeg struct {
	Instrument    string `json:"instrument"`
	Size          string `json:"size"`
	LimitPrice    string `json:"limit_price"`
	IsBuyingAsset bool   `json:"is_buying_asset"`
}

// Order is the trading-API order shape.
type Order struct {
	SubAccountID string         `json:"sub_account_id"`
	IsMarket     bool           `json:"is_market"`
	TimeInForce  string         `json:"time_in_force"`
	PostOnly     bool           `json:"post_only"`
	ReduceOnly   bool           `json:"reduce_only"`
	Legs         []OrderLeg     `json:"legs"`
	Builder      string         `json:"builder,omitempty"`
	BuilderFee   string         `json:"builder_fee,omitempty"`
	Signature    OrderSignature `json:"signature"`
}

// CreateOrderRequest is the top-level order placement payload.
type CreateOrderRequest struct {
	Order Order `json:"order"`
}

type CreateOrderResponse struct {
	Result json.RawMessage `json:"result"`
	Code   int             `json:"code,omitempty"`
	Status string          `json:"status,omitempty"`
}

// AuthorizeBuilderRequest is the edge-service builder authorization body.
// Fee rates travel as decimal strings; their uint32 signing values are in
// the signed payload only.
type AuthorizeBuilderRequest struct {
	MainAccountID            string         `json:"main_account_id"`
	BuilderAccountID         string         `json:"builder_account_id"`
	MaxFuturesFeeRate        string         `json:"max_futures_fee_rate"`
	MaxSpotFeeRate           string         `json:"max_spot_fee_rate"`
	Signature                OrderSignature `json:"signature"`
	BuilderAPIKeyLabel       string         `json:"builder_api_key_label"`
	BuilderAPIKeySigner      string         `json:"builder_api_key_signer"`
	BuilderAPIKeyPermissions string         `json:"builder_api_key_permissions"`
}

type AuthorizeBuilderResponse struct {
	APIKey string `json:"api_key"`
}

type LoginRequest struct {
	APIKey string `json:"api_key"`
}

// Instrument is one entry of the market-data instrument listing.
type Instrument struct {
	Instrument     string `json:"instrument"`
	InstrumentHash string `json:"instrument_hash"`
	BaseDecimals   int32  `json:"base_decimals"`
}

type AllInstrumentsRequest struct {
	IsActive bool `json:"is_active"`
}

type AllInstrumentsResponse struct {
	Result []Instrument `json:"result"`
}

type SubAccountsResponse struct {
	Result json.RawMessage `json:"result"`
}

// =============================
// Core <-> Wire Conversion
// =============================

// ParseOrderDocument normalizes an order JSON document into the canonical
// core representation. Documents may be a bare order or wrapped in an
// {"order": ...} envelope; both are accepted here so the signing core only
// ever sees one shape.
func ParseOrderDocument(data []byte) (signing.Order, error) {
	var envelope struct {
		Order *Order `json:"order"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Order != nil {
		return OrderToCore(*envelope.Order)
	}

	var bare Order
	if err := json.Unmarshal(data, &bare); err != nil {
		return signing.Order{}, fmt.Errorf("%w: %v", signing.ErrMalformedPayload, err)
	}
	return OrderToCore(bare)
}

// OrderToCore converts a wire order into the canonical core representation.
func OrderToCore(w Order) (signing.Order, error) {
	subAccountID, err := strconv.ParseUint(w.SubAccountID, 10, 64)
	if err != nil {
		return signing.Order{}, fmt.Errorf("%w: sub_account_id %q", signing.ErrMalformedPayload, w.SubAccountID)
	}

	var expiration int64
	if w.Signature.Expiration != "" {
		expiration, err = strconv.ParseInt(w.Signature.Expiration, 10, 64)
		if err != nil {
			return signing.Order{}, fmt.Errorf("%w: expiration %q", signing.ErrMalformedPayload, w.Signature.Expiration)
		}
	}

	legs := make([]signing.OrderLeg, 0, len(w.Legs))
	for _, leg := range w.Legs {
		legs = append(legs, signing.OrderLeg{
			Instrument:    leg.Instrument,
			Size:          leg.Size,
			LimitPrice:    leg.LimitPrice,
			IsBuyingAsset: leg.IsBuyingAsset,
		})
	}

	return signing.Order{
		SubAccountID: subAccountID,
		IsMarket:     w.IsMarket,
		TimeInForce:  signing.TimeInForce(w.TimeInForce),
		PostOnly:     w.PostOnly,
		ReduceOnly:   w.ReduceOnly,
		Legs:         legs,
		Builder:      w.Builder,
		BuilderFee:   w.BuilderFee,
		Signature: signing.Signature{
			Signer:     w.Signature.Signer,
			R:          w.Signature.R,
			S:          w.Signature.S,
			V:          w.Signature.V,
			Nonce:      w.Signature.Nonce,
			Expiration: expiration,
		},
	}, nil
}

// OrderFromCore converts a signed core order back into its wire shape.
func OrderFromCore(o signing.Order) Order {
	legs := make([]OrderLeg, 0, len(o.Legs))
	for _, leg := range o.Legs {
		legs = append(legs, OrderLeg{
			Instrument:    leg.Instrument,
			Size:          leg.Size,
			LimitPrice:    leg.LimitPrice,
			IsBuyingAsset: leg.IsBuyingAsset,
		})
	}

	return Order{
		SubAccountID: strconv.FormatUint(o.SubAccountID, 10),
		IsMarket:     o.IsMarket,
		TimeInForce:  string(o.TimeInForce),
		PostOnly:     o.PostOnly,
		ReduceOnly:   o.ReduceOnly,
		Legs:         legs,
		Builder:      o.Builder,
		BuilderFee:   o.BuilderFee,
		Signature: OrderSignature{
			Signer:     o.Signature.Signer,
			R:          o.Signature.R,
			S:          o.Signature.S,
			V:          o.Signature.V,
			Expiration: strconv.FormatInt(o.Signature.Expiration, 10),
			Nonce:      o.Signature.Nonce,
		},
	}
}
