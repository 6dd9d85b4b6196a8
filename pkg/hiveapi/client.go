package hiveapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "https://beekeeper-uk.hivehome.com/1.0"

	loginPath   = "/global/login"
	refreshPath = "/cognito/refresh-token"
)

// Client is the low-level REST client for the Hive beekeeper API. It keeps
// the current token set and refreshes it once on 401 before giving up with
// ErrReauthRequired.
type Client struct {
	baseURL    string
	username   string
	password   string
	language   string
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.Mutex
	token *oauth2.Token
}

func NewClient(baseURL, username, password, language string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		language:   language,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Login performs the initial credential exchange. An invalid credential
// response maps to ErrReauthRequired.
func (c *Client) Login(ctx context.Context) error {
	payload := map[string]any{
		"username": c.username,
		"password": c.password,
		"devices":  false,
		"products": false,
		"actions":  false,
		"homes":    false,
	}
	if c.language != "" {
		payload["language"] = c.language
	}
	var resp loginResponse
	err := c.postJSON(ctx, loginPath, payload, &resp, false)
	if err != nil {
		var httpErr HTTPStatusError
		if errors.As(err, &httpErr) && (httpErr.Status == http.StatusUnauthorized || httpErr.Status == http.StatusForbidden) {
			return fmt.Errorf("%w: login rejected", ErrReauthRequired)
		}
		return err
	}
	c.setToken(resp)
	c.logger.Debug("hive login ok", zap.Int64("expires_in", resp.ExpiresIn))
	return nil
}

// Refresh exchanges the refresh token for a new token set. A rejected
// refresh grant maps to ErrReauthRequired.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	refreshToken := ""
	if c.token != nil {
		refreshToken = c.token.RefreshToken
	}
	c.mu.Unlock()
	if refreshToken == "" {
		return ErrNoSession
	}

	var resp loginResponse
	err := c.postJSON(ctx, refreshPath, map[string]any{"token": refreshToken}, &resp, false)
	if err != nil {
		var httpErr HTTPStatusError
		if errors.As(err, &httpErr) && (httpErr.Status == http.StatusUnauthorized || httpErr.Status == http.StatusBadRequest) {
			return fmt.Errorf("%w: refresh grant rejected", ErrReauthRequired)
		}
		return err
	}
	if resp.RefreshToken == "" {
		resp.RefreshToken = refreshToken
	}
	c.setToken(resp)
	c.logger.Debug("hive token refreshed", zap.Int64("expires_in", resp.ExpiresIn))
	return nil
}

// Token returns a copy of the current token set, or nil before login.
func (c *Client) Token() *oauth2.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil {
		return nil
	}
	t := *c.token
	return &t
}

// TokenSource exposes the client as an oauth2.TokenSource, refreshing the
// token set when it is expired.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return tokenSource{ctx: ctx, client: c}
}

type tokenSource struct {
	ctx    context.Context
	client *Client
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	t := s.client.Token()
	if t == nil {
		return nil, ErrNoSession
	}
	if t.Valid() {
		return t, nil
	}
	if err := s.client.Refresh(s.ctx); err != nil {
		return nil, err
	}
	return s.client.Token(), nil
}

func (c *Client) Products(ctx context.Context) ([]productPayload, error) {
	var products []productPayload
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Devices(ctx context.Context) ([]devicePayload, error) {
	var devices []devicePayload
	if err := c.getJSON(ctx, "/devices", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// SetProductState posts a partial state update to a product node.
func (c *Client) SetProductState(ctx context.Context, productType, id string, state map[string]any) error {
	return c.postJSON(ctx, fmt.Sprintf("/nodes/%s/%s", productType, id), state, nil, true)
}

func (c *Client) setToken(resp loginResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = &oauth2.Token{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doAuthed(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any, authed bool) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if authed {
		return c.doAuthed(ctx, http.MethodPost, path, body, out)
	}
	return c.do(ctx, http.MethodPost, path, body, out, "")
}

// doAuthed performs an authenticated request, refreshing the token once on
// 401 before failing.
func (c *Client) doAuthed(ctx context.Context, method, path string, body []byte, out any) error {
	token := c.Token()
	if token == nil {
		return ErrNoSession
	}
	if !token.Valid() {
		if err := c.Refresh(ctx); err != nil {
			return err
		}
		token = c.Token()
	}

	err := c.do(ctx, method, path, body, out, token.AccessToken)
	var httpErr HTTPStatusError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
		if err := c.Refresh(ctx); err != nil {
			return err
		}
		return c.do(ctx, method, path, body, out, c.Token().AccessToken)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any, token string) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return HTTPStatusError{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
