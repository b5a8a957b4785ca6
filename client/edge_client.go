package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"grvtbot/env"
	"grvtbot/signing"
)

// EdgeClient talks to the GRVT edge service: builder authorization and
// API-key login.
type EdgeClient struct {
	*Client
	env env.Environment
}

func NewEdgeClient(e env.Environment) *EdgeClient {
	return &EdgeClient{
		Client: NewClient(e.EdgeBase),
		env:    e,
	}
}

// AuthorizeBuilderParams collects the request-level inputs of a builder
// authorization. The signature is produced separately by the signing core.
type AuthorizeBuilderParams struct {
	MainAccountID            string
	BuilderAccountID         string
	MaxFuturesFeeRate        string
	MaxSpotFeeRate           string
	BuilderAPIKeyLabel       string
	BuilderAPIKeySigner      string
	BuilderAPIKeyPermissions string
}

// AuthorizeBuilder submits a signed builder authorization and returns the
// minted API key.
func (c *EdgeClient) AuthorizeBuilder(ctx context.Context, params AuthorizeBuilderParams, sig signing.Signature) (string, error) {
	req := AuthorizeBuilderRequest{
		MainAccountID:     params.MainAccountID,
		BuilderAccountID:  params.BuilderAccountID,
		MaxFuturesFeeRate: params.MaxFuturesFeeRate,
		MaxSpotFeeRate:    params.MaxSpotFeeRate,
		Signature: OrderSignature{
			Signer:     sig.Signer,
			R:          sig.R,
			S:          sig.S,
			V:          sig.V,
			Expiration: strconv.FormatInt(sig.Expiration, 10),
			Nonce:      sig.Nonce,
			ChainID:    strconv.FormatInt(c.env.ChainID, 10),
		},
		BuilderAPIKeyLabel:       params.BuilderAPIKeyLabel,
		BuilderAPIKeySigner:      params.BuilderAPIKeySigner,
		BuilderAPIKeyPermissions: params.BuilderAPIKeyPermissions,
	}

	var resp AuthorizeBuilderResponse
	if err := c.post(ctx, "/auth/builder/authorize", req, &resp); err != nil {
		return "", fmt.Errorf("builder authorize failed: %w", err)
	}
	if resp.APIKey == "" {
		return "", fmt.Errorf("authorize response missing api_key: %w", ErrAPIFailure)
	}
	return resp.APIKey, nil
}

// Login exchanges an API key for session credentials. The session cookie
// arrives in the Set-Cookie header and the account id in X-Grvt-Account-Id.
func (c *EdgeClient) Login(ctx context.Context, apiKey string) (Session, error) {
	headers := map[string]string{"Cookie": "rm=true;"}

	resp, err := c.postRaw(ctx, "/auth/api_key/login", headers, LoginRequest{APIKey: apiKey})
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Session{}, fmt.Errorf("login failed with status %d: %s: %w", resp.StatusCode, string(body), ErrAPIFailure)
	}

	cookie := parseGravityCookie(resp.Header.Get("Set-Cookie"))
	if cookie == "" {
		return Session{}, fmt.Errorf("missing gravity cookie in Set-Cookie header: %w", ErrAPIFailure)
	}

	accountID := resp.Header.Get("X-Grvt-Account-Id")
	if accountID == "" {
		return Session{}, fmt.Errorf("missing X-Grvt-Account-Id header: %w", ErrAPIFailure)
	}

	return Session{Cookie: cookie, AccountID: accountID}, nil
}

// parseGravityCookie extracts the "gravity=..." fragment from a Set-Cookie
// header value.
func parseGravityCookie(setCookie string) string {
	idx := strings.Index(strings.ToLower(setCookie), "gravity=")
	if idx == -1 {
		return ""
	}
	frag := setCookie[idx:]
	if end := strings.Index(frag, ";"); end != -1 {
		frag = frag[:end]
	}
	return frag
}
