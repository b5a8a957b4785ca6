package signing

import (
	"fmt"
	"time"
)

// AuthorizationInputs are the human-level inputs of a builder authorization.
// Fee rates are decimal strings as they appear on the wire; they are scaled
// to their uint32 signing values here.
type AuthorizationInputs struct {
	MainAccountID     string
	BuilderAccountID  string
	SignerAddress     string // public address of the builder's API-key signer
	Permissions       string
	MaxFuturesFeeRate string
	MaxSpotFeeRate    string
	Nonce             uint32
	Expiration        int64 // unix nanoseconds
	ChainID           int64
}

// SignAuthorization builds and signs the builder-authorization typed data
// with the user's main-account key. The returned Signature carries the
// nonce and expiration that were signed over.
func SignAuthorization(in AuthorizationInputs, key *PrivateKey) (Signature, error) {
	if err := ValidateExpiration(in.Expiration, time.Now()); err != nil {
		return Signature{}, err
	}

	maxFuture, err := ScaleFeeRate(in.MaxFuturesFeeRate)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to scale futures fee rate: %w", err)
	}
	maxSpot, err := ScaleFeeRate(in.MaxSpotFeeRate)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to scale spot fee rate: %w", err)
	}

	payload := BuildAuthorizationPayload(AuthorizationParams{
		MainAccountID:    in.MainAccountID,
		BuilderAccountID: in.BuilderAccountID,
		SignerAddress:    in.SignerAddress,
		Permissions:      in.Permissions,
		MaxFutureFeeRate: maxFuture,
		MaxSpotFeeRate:   maxSpot,
		Nonce:            in.Nonce,
		Expiration:       in.Expiration,
		ChainID:          in.ChainID,
	})

	sig, err := SignTypedData(payload, key)
	if err != nil {
		return Signature{}, err
	}

	sig.Nonce = in.Nonce
	sig.Expiration = in.Expiration
	return sig, nil
}
