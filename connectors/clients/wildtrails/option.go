package wildtrails

import (
	"fmt"
	"net/http"
)

// Option configures the Client.
type Option func(*Client) error

// WithBaseURL overrides the wildtrails query endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		if u == "" {
			return fmt.Errorf("base url must not be empty")
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient overrides the underlying HTTP client, typically to set a
// timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = h
		return nil
	}
}
