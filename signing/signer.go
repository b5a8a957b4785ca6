package signing

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Signature is the recoverable triplet produced over a typed-data digest,
// together with the replay-prevention fields that were embedded in the
// signed message. Nonce and Expiration are signing inputs carried alongside
// the triplet so the transmitted values always match what was signed.
type Signature struct {
	Signer     string // 0x-prefixed address of the recovered signer
	R          string // 0x-prefixed 32-byte big-endian
	S          string // 0x-prefixed 32-byte big-endian
	V          uint8  // recovery id in the 27/28 convention
	Nonce      uint32
	Expiration int64 // unix nanoseconds
}

// TypedDataDigest computes the canonical EIP-712 digest:
// keccak256(0x19 0x01 || hashStruct(domain) || hashStruct(message)).
func TypedDataDigest(td apitypes.TypedData) (common.Hash, error) {
	domainSeparator, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: hash domain: %v", ErrMalformedPayload, err)
	}

	messageHash, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: hash message: %v", ErrMalformedPayload, err)
	}

	rawData := []byte{0x19, 0x01}
	rawData = append(rawData, domainSeparator...)
	rawData = append(rawData, messageHash...)
	return crypto.Keccak256Hash(rawData), nil
}

// SignTypedData signs a typed-data payload and returns the signature triplet
// with v in the 27/28 convention, which is what the GRVT verifier (and the
// reference eth_account tooling) consumes.
func SignTypedData(td apitypes.TypedData, key *PrivateKey) (Signature, error) {
	if !key.usable() {
		return Signature{}, fmt.Errorf("%w: key is nil or destroyed", ErrInvalidKey)
	}

	digest, err := TypedDataDigest(td)
	if err != nil {
		return Signature{}, err
	}

	sig, err := crypto.Sign(digest.Bytes(), key.key)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sign digest: %w", err)
	}

	return Signature{
		Signer: key.Address().Hex(),
		R:      "0x" + hex.EncodeToString(sig[:32]),
		S:      "0x" + hex.EncodeToString(sig[32:64]),
		V:      sig[64] + 27,
	}, nil
}

// RecoverSigner recovers the signing address from a digest and a 27/28
// convention signature triplet. It does not trust any claimed signer field.
func RecoverSigner(digest common.Hash, r, s string, v uint8) (common.Address, error) {
	rb, err := decodeHex32(r)
	if err != nil {
		return common.Address{}, err
	}
	sb, err := decodeHex32(s)
	if err != nil {
		return common.Address{}, err
	}
	if v != 27 && v != 28 {
		return common.Address{}, fmt.Errorf("%w: unexpected recovery id %d", ErrMalformedPayload, v)
	}

	sig := make([]byte, 65)
	copy(sig[:32], rb)
	copy(sig[32:64], sb)
	sig[64] = v - 27

	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func decodeHex32(s string) ([]byte, error) {
	if len(s) > 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return nil, fmt.Errorf("%w: not a 32-byte hex value", ErrMalformedPayload)
	}
	return b, nil
}
