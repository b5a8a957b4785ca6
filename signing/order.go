package signing

import "fmt"

// TimeInForce is the human-facing enum carried on the order wire format.
type TimeInForce string

const (
	GoodTillTime      TimeInForce = "GOOD_TILL_TIME"
	AllOrNone         TimeInForce = "ALL_OR_NONE"
	ImmediateOrCancel TimeInForce = "IMMEDIATE_OR_CANCEL"
	FillOrKill        TimeInForce = "FILL_OR_KILL"
)

var signTimeInForce = map[TimeInForce]uint8{
	GoodTillTime:      1,
	AllOrNone:         2,
	ImmediateOrCancel: 3,
	FillOrKill:        4,
}

// SignValue bridges the human-facing enum to the numeric value used in the
// signed payload. The two enums are distinct; unknown strings are an error,
// never a silent default.
func (t TimeInForce) SignValue() (uint8, error) {
	v, ok := signTimeInForce[t]
	if !ok {
		return 0, fmt.Errorf("%w: unknown time in force %q", ErrMalformedPayload, t)
	}
	return v, nil
}

// OrderLeg is one fill unit of an order, in human decimal quantities. The
// instrument name is resolved against the instrument directory at assembly
// time.
type OrderLeg struct {
	Instrument    string
	Size          string
	LimitPrice    string
	IsBuyingAsset bool
}

// ResolvedLeg is a leg after instrument resolution and scaling, in contract
// units as they enter the signed payload.
type ResolvedLeg struct {
	AssetID          string // 0x-prefixed uint256 instrument hash
	ContractSize     uint64
	LimitPrice       uint64
	IsBuyingContract bool
}

// Order is the canonical in-core order representation. Leg order is
// significant: it affects the signing digest and is never reordered.
type Order struct {
	SubAccountID uint64
	IsMarket     bool
	TimeInForce  TimeInForce
	PostOnly     bool
	ReduceOnly   bool
	Legs         []OrderLeg
	Builder      string // builder delegate address, ZeroAddress when unset
	BuilderFee   string // decimal fee rate, e.g. "0.001"
	Signature    Signature
}

// ZeroAddress is used for the builder field when no builder is delegated.
const ZeroAddress = "0x0000000000000000000000000000000000000000"
