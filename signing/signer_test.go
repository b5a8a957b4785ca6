package signing

import (
	"errors"
	"testing"
	"time"
)

const testPrivateKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func testAuthorizationParams(t *testing.T) AuthorizationParams {
	t.Helper()
	return AuthorizationParams{
		MainAccountID:    "0x1111111111111111111111111111111111111111",
		BuilderAccountID: "0x2222222222222222222222222222222222222222",
		SignerAddress:    "0x3333333333333333333333333333333333333333",
		Permissions:      "Trade",
		MaxFutureFeeRate: 10,
		MaxSpotFeeRate:   1,
		Nonce:            42,
		Expiration:       time.Now().Add(7 * 24 * time.Hour).UnixNano(),
		ChainID:          326,
	}
}

func TestParsePrivateKey(t *testing.T) {
	tests := []struct {
		name    string
		hexKey  string
		wantErr bool
	}{
		{"with 0x prefix", testPrivateKey, false},
		{"without prefix", testPrivateKey[2:], false},
		{"zero scalar", "0000000000000000000000000000000000000000000000000000000000000000", true},
		{"too short", "abcd", true},
		{"not hex", "zz0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParsePrivateKey(tt.hexKey)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("expected ErrInvalidKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			key.Destroy()
		})
	}
}

func TestSignRecoverRoundTrip(t *testing.T) {
	key, err := ParsePrivateKey(testPrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Destroy()
	address := key.Address()

	payload := BuildAuthorizationPayload(testAuthorizationParams(t))

	sig, err := SignTypedData(payload, key)
	if err != nil {
		t.Fatalf("SignTypedData failed: %v", err)
	}

	if sig.V != 27 && sig.V != 28 {
		t.Errorf("v = %d, want 27 or 28", sig.V)
	}
	if len(sig.R) != 66 || len(sig.S) != 66 {
		t.Errorf("r/s are not 0x-prefixed 32-byte values: r=%q s=%q", sig.R, sig.S)
	}
	if sig.Signer != address.Hex() {
		t.Errorf("declared signer %s, want %s", sig.Signer, address.Hex())
	}

	digest, err := TypedDataDigest(payload)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := RecoverSigner(digest, sig.R, sig.S, sig.V)
	if err != nil {
		t.Fatalf("RecoverSigner failed: %v", err)
	}
	if recovered != address {
		t.Errorf("recovered %s, want %s", recovered.Hex(), address.Hex())
	}
}

func TestSignWithDestroyedKey(t *testing.T) {
	key, err := ParsePrivateKey(testPrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	key.Destroy()

	payload := BuildAuthorizationPayload(testAuthorizationParams(t))
	if _, err := SignTypedData(payload, key); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey for destroyed key, got %v", err)
	}
}

func TestPrivateKeyStringRedacted(t *testing.T) {
	key, err := ParsePrivateKey(testPrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Destroy()

	if got := key.String(); got != "PrivateKey(redacted)" {
		t.Errorf("String() leaked key material: %q", got)
	}
}

func TestRecoverSignerRejectsBadInput(t *testing.T) {
	key, err := ParsePrivateKey(testPrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	defer key.Destroy()

	payload := BuildAuthorizationPayload(testAuthorizationParams(t))
	digest, err := TypedDataDigest(payload)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := SignTypedData(payload, key)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := RecoverSigner(digest, sig.R, sig.S, 5); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for bad v, got %v", err)
	}
	if _, err := RecoverSigner(digest, "0x1234", sig.S, sig.V); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload for short r, got %v", err)
	}
}
