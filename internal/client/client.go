// Package client talks to a running petd server over its HTTP API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lazypower/petd/internal/pet"
)

const (
	defaultServerURL = "http://127.0.0.1:8000"
	httpTimeout      = 10 * time.Second
)

// Client talks to the petd server.
type Client struct {
	http      *http.Client
	serverURL string
}

// NewClient creates a new HTTP client.
// Respects PETD_URL env var, falls back to http://127.0.0.1:8000.
func NewClient() *Client {
	url := os.Getenv("PETD_URL")
	if url == "" {
		url = defaultServerURL
	}
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		serverURL: strings.TrimRight(url, "/"),
	}
}

// URL returns the server base URL.
func (c *Client) URL() string {
	return c.serverURL
}

// Post sends a POST request with JSON body. Returns response body.
func (c *Client) Post(path string, body []byte) ([]byte, error) {
	resp, err := c.http.Post(c.serverURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	return readBody("POST", path, resp)
}

// Get sends a GET request. Returns response body.
func (c *Client) Get(path string) ([]byte, error) {
	resp, err := c.http.Get(c.serverURL + path)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return readBody("GET", path, resp)
}

func readBody(method, path string, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return data, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, e.Error)
		}
		return data, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	return data, nil
}

// Healthy checks if the server is reachable.
func (c *Client) Healthy() bool {
	resp, err := c.http.Get(c.serverURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Result is a mutated profile plus the server's message.
type Result struct {
	Profile *pet.Profile `json:"profile"`
	Message string       `json:"message"`
}

// Profile fetches the current profile.
func (c *Client) Profile() (*pet.Profile, error) {
	data, err := c.Get("/api/profile")
	if err != nil {
		return nil, err
	}
	var p pet.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Shop lists the catalog.
func (c *Client) Shop() ([]pet.ShopItem, error) {
	data, err := c.Get("/api/shop")
	if err != nil {
		return nil, err
	}
	var body struct {
		Items []pet.ShopItem `json:"items"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode shop: %w", err)
	}
	return body.Items, nil
}

// Act performs a care action.
func (c *Client) Act(action string) (*Result, error) {
	return c.mutate("/api/actions/"+action, nil)
}

// Buy purchases an item.
func (c *Client) Buy(itemID string) (*Result, error) {
	return c.mutate("/api/shop/buy", map[string]string{"item_id": itemID})
}

// Equip equips an owned item.
func (c *Client) Equip(itemID string) (*Result, error) {
	return c.mutate("/api/shop/equip", map[string]string{"item_id": itemID})
}

// Minigame submits a finished round. durationMS may be nil.
func (c *Client) Minigame(score int, durationMS *int) (*Result, error) {
	return c.mutate("/api/minigame/result", map[string]any{
		"score":       score,
		"duration_ms": durationMS,
	})
}

func (c *Client) mutate(path string, body any) (*Result, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}
	data, err := c.Post(path, payload)
	if err != nil {
		return nil, err
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &r, nil
}
