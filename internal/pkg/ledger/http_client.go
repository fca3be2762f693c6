package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HTTPClient talks to a ledger gateway over plain HTTP+JSON.
type HTTPClient struct {
	baseURL    *url.URL
	apiToken   string
	httpClient *http.Client
}

// Option mutates the client configuration during construction.
type Option func(*HTTPClient)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *HTTPClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewHTTPClient constructs a client pointed at the supplied gateway base URL.
func NewHTTPClient(baseURL, apiToken string, opts ...Option) (*HTTPClient, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("baseURL required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	client := &HTTPClient{
		baseURL:    parsed,
		apiToken:   strings.TrimSpace(apiToken),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	return client, nil
}

type transferRequest struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Fee    int64  `json:"fee"`
}

type transferResponse struct {
	BlockIndex uint64 `json:"block_index"`
}

type queryBlocksResponse struct {
	Blocks []Block `json:"blocks"`
}

type transferFeeResponse struct {
	Fee int64 `json:"fee"`
}

func (c *HTTPClient) Transfer(ctx context.Context, to string, amount, fee int64) (uint64, error) {
	var resp transferResponse
	if err := c.post(ctx, "/v1/transfers", transferRequest{To: to, Amount: amount, Fee: fee}, &resp); err != nil {
		return 0, err
	}
	return resp.BlockIndex, nil
}

func (c *HTTPClient) QueryBlocks(ctx context.Context, start uint64, length uint32) ([]Block, error) {
	q := url.Values{}
	q.Set("start", strconv.FormatUint(start, 10))
	q.Set("length", strconv.FormatUint(uint64(length), 10))

	var resp queryBlocksResponse
	if err := c.get(ctx, "/v1/blocks", q, &resp); err != nil {
		return nil, err
	}
	return resp.Blocks, nil
}

func (c *HTTPClient) TransferFee(ctx context.Context) (int64, error) {
	var resp transferFeeResponse
	if err := c.get(ctx, "/v1/fees/transfer", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Fee, nil
}

func (c *HTTPClient) post(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	u := c.baseURL.ResolveReference(&url.URL{Path: endpoint})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: endpoint})
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("ledger gateway %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
