package client

import "net/http"

// AuthProvider applies authentication to an HTTP request.
// Implementations can add headers or cookies depending on the target
// API requirements.
type AuthProvider interface {
	Apply(req *http.Request) error
}

// Session holds the credentials minted by an API-key login: the gravity
// session cookie fragment and the account id the trading API expects in the
// X-Grvt-Account-Id header.
type Session struct {
	Cookie    string // "gravity=..." fragment from Set-Cookie
	AccountID string
}

// SessionAuth authenticates trading-API requests with a Session.
type SessionAuth struct {
	Session Session
}

func (a SessionAuth) Apply(req *http.Request) error {
	if a.Session.Cookie != "" {
		req.Header.Set("Cookie", a.Session.Cookie)
	}
	if a.Session.AccountID != "" {
		req.Header.Set("X-Grvt-Account-Id", a.Session.AccountID)
	}
	return nil
}
