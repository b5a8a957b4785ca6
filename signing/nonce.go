package signing

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// MaxExpirationHorizon is the furthest future expiration the exchange
// accepts on a signed payload.
const MaxExpirationHorizon = 30 * 24 * time.Hour

// NewNonce draws a uint32 nonce from a cryptographically strong source.
// A predictable counter would allow cross-session nonce collisions.
func NewNonce() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ExpirationFromNow returns a unix-nanosecond expiration the given duration
// in the future, validated against the maximum allowed horizon.
func ExpirationFromNow(horizon time.Duration) (int64, error) {
	expiration := time.Now().Add(horizon).UnixNano()
	if err := ValidateExpiration(expiration, time.Now()); err != nil {
		return 0, err
	}
	return expiration, nil
}

// ValidateExpiration checks that a unix-nanosecond expiration is in the
// future and within the maximum horizon at the given reference time.
func ValidateExpiration(expirationNs int64, now time.Time) error {
	exp := time.Unix(0, expirationNs)
	if !exp.After(now) {
		return fmt.Errorf("%w: expiration %s is not in the future", ErrExpiredOrOutOfWindow, exp.UTC())
	}
	if exp.After(now.Add(MaxExpirationHorizon)) {
		return fmt.Errorf("%w: expiration %s exceeds the %s horizon", ErrExpiredOrOutOfWindow, exp.UTC(), MaxExpirationHorizon)
	}
	return nil
}
