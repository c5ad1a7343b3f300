// Package assist talks to the external AI text service used for capture
// enrichment and deep web search. Both calls are strictly best-effort:
// nothing in this package ever returns an error to a caller. Failures
// collapse to an absent enhancement or a degraded search digest.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ideaflow/internal/logging"
	"github.com/dmitrijs2005/ideaflow/internal/models"
)

// DegradedSearchText is shown when the web-search call fails. The workflow
// renders it exactly like a successful-but-empty result.
const DegradedSearchText = "Web insight service is unavailable right now. Please retry in a moment."

// Enhancement is the optional enrichment returned for a capture.
type Enhancement struct {
	Summary string   `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Digest is the rendered outcome of one web search: a text summary plus
// source records in service order.
type Digest struct {
	Text    string             `json:"text"`
	Sources []models.WebResult `json:"sources"`
}

// Client is a thin HTTP proxy to the assist endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        logging.Logger
}

func NewClient(endpoint, apiKey string, log logging.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		log:      log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type request struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// Enhance asks the service for a summary and tag suggestions for content.
// Any failure (transport, non-2xx status, malformed body) yields nil; the
// capture proceeds without enrichment. No retry is performed.
func (c *Client) Enhance(ctx context.Context, content string) *Enhancement {
	var out Enhancement
	if err := c.post(ctx, request{Action: "enhance", Payload: map[string]string{"content": content}}, &out); err != nil {
		c.log.Warn(ctx, "enhancement unavailable, capturing without enrichment", "error", err)
		return nil
	}
	return &out
}

// SearchWeb runs one web search for query. On failure it returns the
// degraded digest instead of an error, per the external-call contract.
func (c *Client) SearchWeb(ctx context.Context, query string) Digest {
	var out Digest
	if err := c.post(ctx, request{Action: "search", Payload: map[string]string{"query": query}}, &out); err != nil {
		c.log.Warn(ctx, "web search degraded", "error", err)
		return Digest{Text: DegradedSearchText, Sources: []models.WebResult{}}
	}
	if out.Sources == nil {
		out.Sources = []models.WebResult{}
	}
	return out
}

func (c *Client) post(ctx context.Context, reqBody request, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s call: %w", reqBody.Action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s call: status %d", reqBody.Action, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", reqBody.Action, err)
	}
	return nil
}
