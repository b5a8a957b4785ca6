package signing

import (
	"errors"
	"testing"
	"time"
)

func TestNewNonce(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 16; i++ {
		n, err := NewNonce()
		if err != nil {
			t.Fatalf("NewNonce failed: %v", err)
		}
		seen[n] = true
	}
	// 16 draws from a 2^32 space colliding down to a single value would
	// indicate a broken source, not bad luck.
	if len(seen) < 2 {
		t.Error("nonce source produced constant values")
	}
}

func TestValidateExpiration(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		expiration int64
		wantErr    bool
	}{
		{"seven days out", now.Add(7 * 24 * time.Hour).UnixNano(), false},
		{"one hour out", now.Add(time.Hour).UnixNano(), false},
		{"just inside horizon", now.Add(MaxExpirationHorizon - time.Minute).UnixNano(), false},
		{"in the past", now.Add(-time.Minute).UnixNano(), true},
		{"exactly now", now.UnixNano(), true},
		{"beyond horizon", now.Add(31 * 24 * time.Hour).UnixNano(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpiration(tt.expiration, now)
			if tt.wantErr {
				if !errors.Is(err, ErrExpiredOrOutOfWindow) {
					t.Errorf("expected ErrExpiredOrOutOfWindow, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestExpirationFromNow(t *testing.T) {
	expiration, err := ExpirationFromNow(24 * time.Hour)
	if err != nil {
		t.Fatalf("ExpirationFromNow failed: %v", err)
	}
	if expiration <= time.Now().UnixNano() {
		t.Error("expiration is not in the future")
	}

	if _, err := ExpirationFromNow(40 * 24 * time.Hour); !errors.Is(err, ErrExpiredOrOutOfWindow) {
		t.Errorf("expected ErrExpiredOrOutOfWindow beyond horizon, got %v", err)
	}
}
