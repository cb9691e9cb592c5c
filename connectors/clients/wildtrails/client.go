// Package wildtrails talks to the yosemite.org wildtrails reservation
// backend and maps its responses onto the core record model.
package wildtrails

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mcrawford/wildtrails/auth"
	"github.com/mcrawford/wildtrails/core/model"
)

const defaultBaseURL = "https://yosemite.org/wp-content/plugins/wildtrails/query.php"

// ErrUnexpectedResponse is returned when the backend answers with a
// non-message status envelope.
var ErrUnexpectedResponse = errors.New("unexpected response status")

// The endpoint serves browsers only; requests must look like the permit
// planning page issued them.
var commonHeaders = map[string]string{
	"Accept":           "*/*",
	"Accept-Language":  "en-US,en;q=0.9",
	"Cache-Control":    "no-cache",
	"Content-Type":     "application/json",
	"Pragma":           "no-cache",
	"Referer":          "https://yosemite.org/planning-your-wilderness-permit/",
	"User-Agent":       "Mozilla/5.0 (Macintosh; Intel Mac OS X 11_1_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/88.0.4324.50 Safari/537.36",
	"X-Requested-With": "XMLHttpRequest",
}

// Client queries the wildtrails endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	session *auth.Session
}

// New creates a Client using the given session credential.
func New(session *auth.Session, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    http.DefaultClient,
		session: session,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FetchTrailheads retrieves the active trailhead metadata.
func (c *Client) FetchTrailheads(ctx context.Context) (*model.TrailheadSet, error) {
	body, err := c.get(ctx, url.Values{"resource": {"trailheads"}})
	if err != nil {
		return nil, err
	}
	var payload trailheadsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode trailheads: %w", err)
	}
	return payload.toModel()
}

// FetchReport retrieves the occupancy report for one region.
func (c *Client) FetchReport(ctx context.Context, region string) ([]model.OccupancyEntry, error) {
	body, err := c.get(ctx, url.Values{"resource": {"report"}, "region": {region}})
	if err != nil {
		return nil, fmt.Errorf("region %s: %w", region, err)
	}
	var payload reportPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode report for region %s: %w", region, err)
	}
	return payload.toModel()
}

func (c *Client) get(ctx context.Context, params url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range commonHeaders {
		req.Header.Set(k, v)
	}
	if err := c.session.SetAuthHeader(req); err != nil {
		return nil, fmt.Errorf("failed to set auth header: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, body)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Status.Type != "message" {
		return nil, fmt.Errorf("%w: %s %s", ErrUnexpectedResponse, env.Status.Type, env.Status.Value)
	}
	return env.Response, nil
}
