package signing

import "errors"

// Sentinel errors for the signing core. Every operation either returns a
// fully signed structure or wraps exactly one of these; there are no partial
// results and no internal retries.
var (
	ErrInvalidDecimal       = errors.New("invalid decimal literal")
	ErrOverflow             = errors.New("scaled value exceeds target width")
	ErrUnknownInstrument    = errors.New("unknown instrument")
	ErrInvalidKey           = errors.New("invalid private key")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrExpiredOrOutOfWindow = errors.New("expiration outside allowed window")
)
