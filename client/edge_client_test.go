package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grvtbot/env"
	"grvtbot/signing"
)

func testEnv(serverURL string) env.Environment {
	return env.Environment{
		Name:           "test",
		ChainID:        326,
		EdgeBase:       serverURL,
		TradesBase:     serverURL,
		MarketDataBase: serverURL,
	}
}

func testSignature() signing.Signature {
	return signing.Signature{
		Signer:     "0x1111111111111111111111111111111111111111",
		R:          "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		S:          "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		V:          28,
		Nonce:      123,
		Expiration: time.Now().Add(7 * 24 * time.Hour).UnixNano(),
	}
}

func TestAuthorizeBuilder(t *testing.T) {
	var captured AuthorizeBuilderRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/builder/authorize" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"api_key": "minted-key"})
	}))
	defer server.Close()

	c := NewEdgeClient(testEnv(server.URL))
	sig := testSignature()

	apiKey, err := c.AuthorizeBuilder(context.Background(), AuthorizeBuilderParams{
		MainAccountID:            "0x1111111111111111111111111111111111111111",
		BuilderAccountID:         "0x2222222222222222222222222222222222222222",
		MaxFuturesFeeRate:        "0.001",
		MaxSpotFeeRate:           "0.0001",
		BuilderAPIKeyLabel:       "test-label",
		BuilderAPIKeySigner:      "0x3333333333333333333333333333333333333333",
		BuilderAPIKeyPermissions: "Trade",
	}, sig)
	if err != nil {
		t.Fatalf("AuthorizeBuilder failed: %v", err)
	}
	if apiKey != "minted-key" {
		t.Errorf("api key = %q", apiKey)
	}

	if captured.MaxFuturesFeeRate != "0.001" {
		t.Errorf("max_futures_fee_rate = %q", captured.MaxFuturesFeeRate)
	}
	if captured.Signature.ChainID != "326" {
		t.Errorf("chain_id = %q, want \"326\"", captured.Signature.ChainID)
	}
	if captured.Signature.Nonce != sig.Nonce {
		t.Errorf("nonce = %d, want %d", captured.Signature.Nonce, sig.Nonce)
	}
	if captured.BuilderAPIKeyPermissions != "Trade" {
		t.Errorf("permissions = %q", captured.BuilderAPIKeyPermissions)
	}
}

func TestAuthorizeBuilderMissingAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	c := NewEdgeClient(testEnv(server.URL))
	if _, err := c.AuthorizeBuilder(context.Background(), AuthorizeBuilderParams{}, testSignature()); err == nil {
		t.Error("expected error for response without api_key")
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/api_key/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if cookie := r.Header.Get("Cookie"); cookie != "rm=true;" {
			t.Errorf("request cookie = %q, want rm=true;", cookie)
		}

		var body LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.APIKey != "my-key" {
			t.Errorf("login body = %+v, err = %v", body, err)
		}

		w.Header().Set("Set-Cookie", "gravity=abc123; Path=/; HttpOnly")
		w.Header().Set("X-Grvt-Account-Id", "acct-42")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewEdgeClient(testEnv(server.URL))
	session, err := c.Login(context.Background(), "my-key")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if session.Cookie != "gravity=abc123" {
		t.Errorf("cookie = %q, want gravity=abc123", session.Cookie)
	}
	if session.AccountID != "acct-42" {
		t.Errorf("account id = %q", session.AccountID)
	}
}

func TestLoginMissingCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Grvt-Account-Id", "acct-42")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewEdgeClient(testEnv(server.URL))
	if _, err := c.Login(context.Background(), "my-key"); err == nil {
		t.Error("expected error when gravity cookie is missing")
	}
}

func TestParseGravityCookie(t *testing.T) {
	tests := []struct {
		name      string
		setCookie string
		want      string
	}{
		{"with attributes", "gravity=tok; Path=/; Secure", "gravity=tok"},
		{"bare", "gravity=tok", "gravity=tok"},
		{"among other cookies", "rm=true; gravity=tok; Path=/", "gravity=tok"},
		{"case insensitive", "Gravity=tok; Path=/", "Gravity=tok"},
		{"absent", "rm=true; Path=/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseGravityCookie(tt.setCookie); got != tt.want {
				t.Errorf("parseGravityCookie(%q) = %q, want %q", tt.setCookie, got, tt.want)
			}
		})
	}
}
