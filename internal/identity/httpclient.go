package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to a GoTrue-style identity HTTP API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

// NewHTTPClient builds an identity client for the given provider base URL.
func NewHTTPClient(baseURL string, apiKey string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
		now:     time.Now,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"msg"`
}

// Refresh exchanges a refresh token for a rotated pair.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return Session{}, ErrRefreshInvalid
	}
	return c.grant(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

// SignIn performs a password grant.
func (c *HTTPClient) SignIn(ctx context.Context, email string, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("email and password are required")
	}
	return c.grant(ctx, "password", map[string]string{"email": email, "password": password})
}

// SignOut revokes the provider session behind the access token.
func (c *HTTPClient) SignOut(ctx context.Context, accessToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/logout", nil)
	if err != nil {
		return fmt.Errorf("build sign-out request: %w", err)
	}
	c.decorate(req)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("sign out: provider status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) grant(ctx context.Context, grantType string, payload map[string]string) (Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Session{}, fmt.Errorf("encode %s grant: %w", grantType, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token?grant_type="+grantType, bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("build %s grant request: %w", grantType, err)
	}
	c.decorate(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%s grant: %w", grantType, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Session{}, fmt.Errorf("read %s grant response: %w", grantType, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Session{}, c.grantError(grantType, resp.StatusCode, raw)
	}

	var token tokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return Session{}, fmt.Errorf("decode %s grant response: %w", grantType, err)
	}
	if strings.TrimSpace(token.AccessToken) == "" || strings.TrimSpace(token.User.ID) == "" {
		return Session{}, fmt.Errorf("%s grant response missing token or user", grantType)
	}
	return Session{
		UserID:       token.User.ID,
		ExpiresAt:    c.now().Add(time.Duration(token.ExpiresIn) * time.Second),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// grantError maps provider failures onto the port's sentinel errors. Only
// refresh grants produce the reuse/invalid variants; everything else surfaces
// as an availability error for the caller to log.
func (c *HTTPClient) grantError(grantType string, status int, raw []byte) error {
	var detail errorResponse
	_ = json.Unmarshal(raw, &detail)

	if grantType == "refresh_token" && (status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden) {
		code := strings.ToLower(strings.TrimSpace(detail.ErrorCode))
		description := strings.ToLower(detail.Error + " " + detail.ErrorDescription + " " + detail.Message)
		switch {
		case code == "refresh_token_already_used" || strings.Contains(description, "already used"):
			return ErrRefreshReused
		default:
			return ErrRefreshInvalid
		}
	}

	message := strings.TrimSpace(detail.ErrorDescription)
	if message == "" {
		message = strings.TrimSpace(detail.Message)
	}
	if message == "" {
		message = strings.TrimSpace(detail.Error)
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("%s grant: provider status %d: %s", grantType, status, message)
}

func (c *HTTPClient) decorate(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
}
