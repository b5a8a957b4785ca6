package signing

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// The GRVT signing domain. Name, version and the per-environment chain id
// are hashed into every digest; a mismatch on any of them produces a
// signature for a different message.
const (
	DomainName    = "GRVT Exchange"
	DomainVersion = "0"
)

func domain(chainID int64) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:    DomainName,
		Version: DomainVersion,
		ChainId: math.NewHexOrDecimal256(chainID),
	}
}

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
}

// AuthorizationParams are the business inputs of a builder-authorization
// signature. Fee rates are already scaled to their uint32 signing values.
type AuthorizationParams struct {
	MainAccountID    string
	BuilderAccountID string
	SignerAddress    string
	Permissions      string
	MaxFutureFeeRate uint32
	MaxSpotFeeRate   uint32
	Nonce            uint32
	Expiration       int64 // unix nanoseconds
	ChainID          int64
}

// BuildAuthorizationPayload builds the AddAccountSignerWithBuilder typed
// data. Field order and type strings are part of the digest and must match
// the verifier byte for byte.
func BuildAuthorizationPayload(p AuthorizationParams) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			"AddAccountSignerWithBuilder": []apitypes.Type{
				{Name: "accountID", Type: "address"},
				{Name: "signer", Type: "address"},
				{Name: "permissions", Type: "string"},
				{Name: "builderAccountID", Type: "address"},
				{Name: "maxFutureFeeRate", Type: "uint32"},
				{Name: "maxSpotFeeRate", Type: "uint32"},
				{Name: "nonce", Type: "uint32"},
				{Name: "expiration", Type: "int64"},
			},
		},
		PrimaryType: "AddAccountSignerWithBuilder",
		Domain:      domain(p.ChainID),
		Message: apitypes.TypedDataMessage{
			"accountID":        p.MainAccountID,
			"signer":           p.SignerAddress,
			"permissions":      p.Permissions,
			"builderAccountID": p.BuilderAccountID,
			"maxFutureFeeRate": strconv.FormatUint(uint64(p.MaxFutureFeeRate), 10),
			"maxSpotFeeRate":   strconv.FormatUint(uint64(p.MaxSpotFeeRate), 10),
			"nonce":            strconv.FormatUint(uint64(p.Nonce), 10),
			"expiration":       strconv.FormatInt(p.Expiration, 10),
		},
	}
}

// BuildOrderPayload builds the OrderWithBuilderFee typed data from an order
// and its resolved legs. Legs keep their caller-supplied order; reordering
// them changes the digest.
func BuildOrderPayload(order Order, legs []ResolvedLeg, timeInForce uint8, builderFee uint32, chainID int64) apitypes.TypedData {
	legMessages := make([]interface{}, 0, len(legs))
	for _, leg := range legs {
		legMessages = append(legMessages, map[string]interface{}{
			"assetID":          leg.AssetID,
			"contractSize":     strconv.FormatUint(leg.ContractSize, 10),
			"limitPrice":       strconv.FormatUint(leg.LimitPrice, 10),
			"isBuyingContract": leg.IsBuyingContract,
		})
	}

	builder := order.Builder
	if builder == "" {
		builder = ZeroAddress
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			"OrderWithBuilderFee": []apitypes.Type{
				{Name: "subAccountID", Type: "uint64"},
				{Name: "isMarket", Type: "bool"},
				{Name: "timeInForce", Type: "uint8"},
				{Name: "postOnly", Type: "bool"},
				{Name: "reduceOnly", Type: "bool"},
				{Name: "legs", Type: "OrderLeg[]"},
				{Name: "builder", Type: "address"},
				{Name: "builderFee", Type: "uint32"},
				{Name: "nonce", Type: "uint32"},
				{Name: "expiration", Type: "int64"},
			},
			"OrderLeg": []apitypes.Type{
				{Name: "assetID", Type: "uint256"},
				{Name: "contractSize", Type: "uint64"},
				{Name: "limitPrice", Type: "uint64"},
				{Name: "isBuyingContract", Type: "bool"},
			},
		},
		PrimaryType: "OrderWithBuilderFee",
		Domain:      domain(chainID),
		Message: apitypes.TypedDataMessage{
			"subAccountID": strconv.FormatUint(order.SubAccountID, 10),
			"isMarket":     order.IsMarket,
			"timeInForce":  strconv.FormatUint(uint64(timeInForce), 10),
			"postOnly":     order.PostOnly,
			"reduceOnly":   order.ReduceOnly,
			"legs":         legMessages,
			"builder":      builder,
			"builderFee":   strconv.FormatUint(uint64(builderFee), 10),
			"nonce":        strconv.FormatUint(uint64(order.Signature.Nonce), 10),
			"expiration":   strconv.FormatInt(order.Signature.Expiration, 10),
		},
	}
}
