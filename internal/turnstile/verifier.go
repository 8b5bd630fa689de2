// Package turnstile validates Cloudflare Turnstile tokens against the
// Siteverify API. It gates state-changing requests (sign-in, sign-up,
// subscribe) before their business logic runs.
package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

	// testSecretKey is Cloudflare's well-known always-pass secret. It is
	// only ever used when the verifier was built with allowTestKeys, so a
	// production config can never fall back to it.
	testSecretKey = "1x0000000000000000000000000000000AA"

	// dummyTokenPrefix marks tokens issued by Cloudflare's test sitekeys.
	// Real secret keys reject them, so they force the test secret.
	dummyTokenPrefix = "XXXX.DUMMY.TOKEN."

	siteverifyTimeout = 10 * time.Second
)

// Result is the normalized outcome of one verification attempt.
type Result struct {
	Success bool
	Error   string
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

type Verifier struct {
	endpoint      string
	secret        string
	allowTestKeys bool
	client        *http.Client
}

// NewVerifier builds a verifier for the given siteverify endpoint. An empty
// endpoint means Cloudflare's production one. allowTestKeys permits the
// well-known test secret when no real secret is configured or a dummy token
// is presented; config validation keeps it off in production.
func NewVerifier(endpoint, secret string, allowTestKeys bool) *Verifier {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Verifier{
		endpoint:      endpoint,
		secret:        secret,
		allowTestKeys: allowTestKeys,
		client:        &http.Client{Timeout: siteverifyTimeout},
	}
}

// Verify exchanges the client-supplied token for a pass/fail verdict.
// An empty token fails immediately without a network call. Transport
// failures come back as a failed Result, never as a panic or an error
// the caller has to branch on.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) Result {
	secret := v.secret
	if v.allowTestKeys {
		if strings.HasPrefix(token, dummyTokenPrefix) || secret == "" {
			secret = testSecretKey
		}
	}

	if secret == "" {
		return Result{Error: "Turnstile secret key not configured"}
	}
	if token == "" {
		return Result{Error: "Turnstile token is required"}
	}

	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Result{Error: fmt.Sprintf("Failed to verify Turnstile token: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("Failed to verify Turnstile token: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Error: "Failed to verify Turnstile token"}
	}

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{Error: fmt.Sprintf("Failed to verify Turnstile token: %v", err)}
	}

	if !body.Success {
		return Result{Error: "Turnstile validation failed: " + strings.Join(body.ErrorCodes, ", ")}
	}

	return Result{Success: true}
}
