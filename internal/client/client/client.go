package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Principal is the identity returned by GET /api/users/me.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type messageBody struct {
	Message string `json:"message"`
}

func (c *Client) Signup(ctx context.Context, email, password, confirm string) (string, error) {
	req := map[string]string{"email": email, "password": password, "confirmPassword": confirm}
	var resp messageBody
	if err := c.do(ctx, http.MethodPost, "/api/users/signup", "", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: empty token in login response", ErrServer)
	}
	return resp.Token, nil
}

func (c *Client) Me(ctx context.Context, token string) (*Principal, error) {
	var p Principal
	if err := c.do(ctx, http.MethodGet, "/api/users/me", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Protected(ctx context.Context, token string) (string, error) {
	var resp messageBody
	if err := c.do(ctx, http.MethodGet, "/api/users/protected", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ChangePassword(ctx context.Context, token, current, newPassword, confirm string) error {
	req := map[string]string{"currentPassword": current, "newPassword": newPassword, "confirmPassword": confirm}
	return c.do(ctx, http.MethodPost, "/api/users/password", token, req, nil)
}

// Ping reports whether the server answers its health check.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m messageBody
		_ = json.Unmarshal(data, &m)
		if m.Message == "" {
			m.Message = strings.TrimSpace(string(data))
		}
		return &APIError{Status: resp.StatusCode, Message: m.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
