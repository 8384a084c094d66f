// Package directory is the client for the authoritative identity directory.
// Its privileged admin API sees unconfirmed registrations, which is what
// makes it the security-relevant tier for uniqueness decisions. It also
// re-issues confirmation notices.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"idcheck/internal/identity/models"
	"idcheck/pkg/sentinel"
)

// Client calls the directory admin API over HTTP, authenticating each
// request with a short-lived HS256 service token.
type Client struct {
	baseURL    string
	signingKey []byte
	issuer     string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the transport; tests point it at httptest
// servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL, signingKey, issuer string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		signingKey: []byte(signingKey),
		issuer:     issuer,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "directory" }

type existsRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// Exists asks the admin API whether any identity, confirmed or pending,
// carries the given normalized value. An error return is an infrastructure
// failure: the caller decides whether to fall back.
func (c *Client) Exists(ctx context.Context, kind models.IdentityKind, value string) (bool, error) {
	body, err := json.Marshal(existsRequest{Kind: string(kind), Value: value})
	if err != nil {
		return false, fmt.Errorf("marshal exists request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/admin/identities/exists", body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("directory exists check: unexpected status %d", resp.StatusCode)
	}

	var out existsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode exists response: %w", err)
	}
	return out.Exists, nil
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendConfirmation asks the directory to re-issue a confirmation notice
// for the identity behind email, if it exists and is not already confirmed.
// Sentinel errors distinguish the three non-sent outcomes.
func (c *Client) ResendConfirmation(ctx context.Context, email string) error {
	body, err := json.Marshal(resendRequest{Email: email})
	if err != nil {
		return fmt.Errorf("marshal resend request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/admin/confirmations/resend", body)
	if err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusNotFound:
		return sentinel.ErrNotFound
	case http.StatusConflict:
		return sentinel.ErrAlreadyConfirmed
	default:
		return fmt.Errorf("%w: resend confirmation: unexpected status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	token, err := c.serviceToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	return resp, nil
}

// serviceToken mints a short-lived token per request; the directory trusts
// the shared signing key, so no token store is needed on either side.
func (c *Client) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   "idcheck-service",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return token, nil
}
