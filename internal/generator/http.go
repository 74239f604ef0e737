package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/corpix/uarand"
)

const maxResponseBytes = 8 << 20

// HTTPClient asks a remote backend for payloads by POSTing the request as JSON.
type HTTPClient struct {
	// Set in NewHTTPClient(...).
	url    string
	client *http.Client
}

// NewHTTPClient posts to baseURL joined with path, "/process" when path is empty.
func NewHTTPClient(baseURL, path string, hc *http.Client) *HTTPClient {
	if path == "" {
		path = "/process"
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{
		url:    strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		client: hc,
	}
}

func (c *HTTPClient) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body := req.asMap()
	// /generate_path style backends read the topic from "text".
	body["text"] = req.Topic
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", uarand.GetRandom())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got non-OK status code: %v", resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return payload, nil
}
