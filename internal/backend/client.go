package backend

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
	"time"

	"github.com/google/uuid"

	"github.com/student-spending/spendboard/internal/transaction"
)

const maxErrorBody = 64 << 10

// Client talks to the remote spending service.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

type Option func(*Client)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ForToken returns a copy of the client that uses token, leaving c untouched.
func (c *Client) ForToken(token string) *Client {
	cp := *c
	cp.token = token

	return &cp
}

// UploadTransactions submits the whole batch in a single request.
func (c *Client) UploadTransactions(ctx context.Context, txs []transaction.Transaction) (*UploadResult, error) {
	var result UploadResult
	if err := c.do(ctx, http.MethodPost, "/api/transactions/upload", nil, UploadRequest{Transactions: txs}, &result); err != nil {
		return nil, err
	}

	if result.Reasons == nil {
		result.Reasons = []RejectReason{}
	}

	return &result, nil
}

func (c *Client) Classify(ctx context.Context, useLLM bool) (*ClassifyResult, error) {
	query := url.Values{"use_llm": {strconv.FormatBool(useLLM)}}

	var result ClassifyResult
	if err := c.do(ctx, http.MethodPost, "/api/classify", query, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Aggregate(ctx context.Context, start, end string, rng Range) (*AggregateResult, error) {
	query := url.Values{
		"start": {start},
		"end":   {end},
		"range": {string(rng)},
	}

	var result AggregateResult
	if err := c.do(ctx, http.MethodGet, "/api/aggregate", query, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var result HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*Token, error) {
	var result Token
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	var result User
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}

	return nil
}
