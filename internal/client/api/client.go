// Package api implements the HTTP client the command-line client uses to
// talk to the task-manager authentication API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotLoggedIn is returned when a protected call is made before Login.
var ErrNotLoggedIn = errors.New("not logged in")

// Grant is the token envelope returned by the token exchange endpoint.
type Grant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Client talks to the task-manager authentication API.
type Client struct {
	// BaseURL is the server address, e.g. http://localhost:8080.
	BaseURL string
	// HTTPClient performs the requests.
	HTTPClient *http.Client

	// token holds the bearer token obtained by Login.
	token string
}

// New returns a Client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a new user and returns the id it was stored under.
func (c *Client) Register(username, password string) (string, error) {
	params := url.Values{}
	params.Set("username", username)
	params.Set("password", password)

	resp, err := c.HTTPClient.Post(c.BaseURL+"/api/register?"+params.Encode(), "", nil)
	if err != nil {
		return "", fmt.Errorf("register failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return payload["id"], nil
}

// Login exchanges the credentials for a bearer token via the password grant.
// The token is kept on the client and attached to subsequent protected calls.
func (c *Client) Login(username, password string) (*Grant, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.HTTPClient.Post(c.BaseURL+"/api/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}

	grant := &Grant{}
	if err := json.NewDecoder(resp.Body).Decode(grant); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.token = grant.AccessToken
	return grant, nil
}

// CurrentUser reports the username the server associates with the held token.
func (c *Client) CurrentUser() (string, error) {
	if c.token == "" {
		return "", ErrNotLoggedIn
	}

	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/api/user", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return payload["username"], nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping() error {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/ping")
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}
