package signing

import (
	"fmt"
	"time"

	"grvtbot/instrument"
)

// SignOrder drives an order through resolution, scaling, payload
// construction and signing, returning a fully signed copy. The caller
// supplies nonce and expiration on order.Signature before calling; they are
// embedded in the signed payload and preserved verbatim in the result, so
// the transmitted values always match the digest. Any failure aborts with no
// partial result.
func SignOrder(order Order, directory instrument.Directory, key *PrivateKey, chainID int64) (Order, error) {
	if err := ValidateExpiration(order.Signature.Expiration, time.Now()); err != nil {
		return Order{}, err
	}
	if len(order.Legs) == 0 {
		return Order{}, fmt.Errorf("%w: order has no legs", ErrMalformedPayload)
	}

	legs, err := resolveLegs(order.Legs, directory)
	if err != nil {
		return Order{}, err
	}

	timeInForce, err := order.TimeInForce.SignValue()
	if err != nil {
		return Order{}, err
	}

	builderFee := uint32(0)
	if order.BuilderFee != "" {
		builderFee, err = ScaleFeeRate(order.BuilderFee)
		if err != nil {
			return Order{}, fmt.Errorf("failed to scale builder fee: %w", err)
		}
	}

	payload := BuildOrderPayload(order, legs, timeInForce, builderFee, chainID)

	sig, err := SignTypedData(payload, key)
	if err != nil {
		return Order{}, err
	}

	// Fill in signer/r/s/v while keeping the caller-supplied nonce and
	// expiration that were just signed over.
	signed := order
	signed.Signature.Signer = sig.Signer
	signed.Signature.R = sig.R
	signed.Signature.S = sig.S
	signed.Signature.V = sig.V
	return signed, nil
}

func resolveLegs(legs []OrderLeg, directory instrument.Directory) ([]ResolvedLeg, error) {
	resolved := make([]ResolvedLeg, 0, len(legs))
	for _, leg := range legs {
		info, ok := directory.Lookup(leg.Instrument)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, leg.Instrument)
		}

		size, err := ScaleSize(leg.Size, info.BaseDecimals)
		if err != nil {
			return nil, fmt.Errorf("failed to scale size for %s: %w", leg.Instrument, err)
		}

		price, err := ScalePrice(leg.LimitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to scale price for %s: %w", leg.Instrument, err)
		}

		resolved = append(resolved, ResolvedLeg{
			AssetID:          info.Hash,
			ContractSize:     size,
			LimitPrice:       price,
			IsBuyingContract: leg.IsBuyingAsset,
		})
	}
	return resolved, nil
}
