// Package client is a typed REST client for the fleet documents API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned, without sending anything, when the token
// source has no usable bearer token.
var ErrNoCredential = errors.New("client: no credential")

const defaultDetail = "An error occurred"

// APIError is a non-2xx response. Detail is the server's "detail" message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

type Client struct {
	base   string
	http   *http.Client
	tokens oauth2.TokenSource
}

// New returns a client for the API rooted at baseURL (for example
// http://host:8080/api/v1). A nil hc uses a client with a 30s timeout.
func New(baseURL string, tokens oauth2.TokenSource, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc, tokens: tokens}
}

func (c *Client) authorize(req *http.Request) error {
	if c.tokens == nil {
		return ErrNoCredential
	}
	tok, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoCredential, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return ErrNoCredential
	}
	tok.SetAuthHeader(req)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return http.NewRequestWithContext(ctx, method, u, body)
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// send authorizes and executes req; a non-2xx response becomes an
// *APIError and its body is consumed.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if err := c.authorize(req); err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Detail: defaultDetail}
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) != nil || len(body.Detail) == 0 {
		return apiErr
	}
	var detail string
	if json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
		apiErr.Detail = detail
	}
	return apiErr
}
