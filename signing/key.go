package signing

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PrivateKey holds a secp256k1 signing key for the duration of a signing
// flow. It is never logged or serialized; call Destroy when done to zero the
// underlying scalar.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// ParsePrivateKey parses a hex-encoded private key, with or without the 0x
// prefix. crypto.HexToECDSA rejects zero and out-of-order scalars.
func ParsePrivateKey(hexKey string) (*PrivateKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(hexKey, "0x")

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &PrivateKey{key: key}, nil
}

// Address returns the public address of the key.
func (k *PrivateKey) Address() common.Address {
	return crypto.PubkeyToAddress(k.key.PublicKey)
}

// Destroy zeroes the private scalar. The key is unusable afterwards; Sign
// calls with a destroyed key fail with ErrInvalidKey.
func (k *PrivateKey) Destroy() {
	if k.key != nil {
		k.key.D.SetInt64(0)
		k.key = nil
	}
}

func (k *PrivateKey) usable() bool {
	return k != nil && k.key != nil && k.key.D.Sign() > 0
}

// String prevents accidental key leakage via fmt verbs.
func (k *PrivateKey) String() string {
	return "PrivateKey(redacted)"
}
