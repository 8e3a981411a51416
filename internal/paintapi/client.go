// Package paintapi is the typed client of the paint company REST API.
package paintapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"paintcompany/internal/models"
)

// DefaultBaseURL is the hosted backend.
const DefaultBaseURL = "https://paintcompanybackend.onrender.com"

const (
	defaultTimeout       = 15 * time.Second
	defaultUploadTimeout = 30 * time.Second
	maxResponseBody      = 8 << 20
	maxListPages         = 50
)

// Client talks to the API. A Client without a token can only reach the
// public endpoints; WithToken derives an authenticated copy.
type Client struct {
	baseURL  string
	http     *http.Client
	upload   *http.Client
	token    string
	validate *validator.Validate
	encoder  *schema.Encoder
}

// Option configures a Client.
type Option func(*Client)

// WithTimeouts sets the JSON and multipart request timeouts.
func WithTimeouts(requests, uploads time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = requests
		c.upload.Timeout = uploads
	}
}

// WithTransport replaces the HTTP transport of both underlying clients.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
		c.upload.Transport = rt
	}
}

// New returns a public client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	enc := schema.NewEncoder()
	enc.RegisterEncoder(models.Features{}, func(v reflect.Value) string {
		return v.Interface().(models.Features).JSON()
	})

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		upload:   &http.Client{Timeout: defaultUploadTimeout},
		validate: validator.New(),
		encoder:  enc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type request struct {
	method      string
	target      string
	query       url.Values
	body        io.Reader
	contentType string
	upload      bool
}

func (c *Client) resolve(target string, query url.Values) string {
	u := target
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		u = c.baseURL + target
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}

func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.resolve(r.target, r.query), r.body)
	if err != nil {
		return nil, fmt.Errorf("paintapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	hc := c.http
	if r.upload {
		hc = c.upload
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, transportError(ctx, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newStatusError(resp.StatusCode, data)
	}
	return data, nil
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrNoResponse, err)
}

func (c *Client) getJSON(ctx context.Context, target string, query url.Values, out any) error {
	data, err := c.send(ctx, request{method: http.MethodGet, target: target, query: query})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, target string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("paintapi: encode body: %w", err)
	}
	data, err := c.send(ctx, request{
		method:      method,
		target:      target,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	})
	if err != nil || out == nil || len(bytes.TrimSpace(data)) == 0 {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, target string) error {
	_, err := c.send(ctx, request{method: http.MethodDelete, target: target})
	return err
}

func check[T any](c *Client, items []T) error {
	for i := range items {
		if err := c.validate.Struct(items[i]); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrMalformed, i, err)
		}
	}
	return nil
}

// list fetches one page of a collection and validates every record.
func list[T any](ctx context.Context, c *Client, target string, query url.Values) (Page[T], error) {
	data, err := c.send(ctx, request{method: http.MethodGet, target: target, query: query})
	if err != nil {
		return Page[T]{}, err
	}
	page, err := DecodeList[T](data)
	if err != nil {
		return Page[T]{}, fmt.Errorf("GET %s: %w", target, err)
	}
	if err := check(c, page.Items); err != nil {
		return Page[T]{}, fmt.Errorf("GET %s: %w", target, err)
	}
	return page, nil
}

// listAll follows "next" links until the collection is exhausted.
func listAll[T any](ctx context.Context, c *Client, target string, query url.Values) ([]T, error) {
	var all []T
	seen := map[string]bool{}
	for i := 0; i < maxListPages; i++ {
		page, err := list[T](ctx, c, target, query)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.Next == "" || seen[page.Next] {
			break
		}
		seen[page.Next] = true
		target, query = page.Next, nil
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

func path(format string, id int) string {
	return fmt.Sprintf(format, id)
}
