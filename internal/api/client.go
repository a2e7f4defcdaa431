package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Navigator is how the client forces a return to the login view after a
// 401. The hook is skipped when the login view is already active.
type Navigator interface {
	LoginActive() bool
	ForceLogin()
}

// Client wraps every outgoing call with the shared base URL, the session
// cookie jar, and centralized 401 handling. There are no retries and no
// default timeout; only the upload helper sets a per-call deadline.
type Client struct {
	baseURL       string
	httpc         *http.Client
	log           zerolog.Logger
	uploadTimeout time.Duration
	nav           Navigator
}

// NewClient builds a client for the given origin. The cookie jar keeps
// the session cookie riding on every request.
func NewClient(baseURL string, uploadTimeout time.Duration, log zerolog.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpc:         &http.Client{Jar: jar},
		log:           log,
		uploadTimeout: uploadTimeout,
	}
}

// SetNavigator registers the 401 hook owner. Must be called before the
// console starts issuing requests; nil disables the redirect entirely.
func (c *Client) SetNavigator(nav Navigator) { c.nav = nav }

// BaseURL returns the configured origin without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one request and decodes a JSON response into out when out is
// non-nil. contentType is left empty for multipart bodies so the caller
// can attach the boundary-bearing header itself.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, timeout time.Duration, out any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("request_id", reqID).Int("status", resp.StatusCode).Str("path", path).Msg("api response")

	if resp.StatusCode == http.StatusUnauthorized && c.nav != nil && !c.nav.LoginActive() {
		c.nav.ForceLogin()
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", 0, out)
}

func (c *Client) postJSON(ctx context.Context, path string, query url.Values, in, out any) error {
	body, contentType, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, query, body, contentType, 0, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	body, contentType, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, body, contentType, 0, out)
}

func (c *Client) deleteJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, "", 0, out)
}

// postMultipart sends a prebuilt multipart body. The content type comes
// from the multipart writer so the boundary survives, and the upload
// deadline applies.
func (c *Client) postMultipart(ctx context.Context, path string, body io.Reader, contentType string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, contentType, c.uploadTimeout, out)
}

func jsonBody(in any) (io.Reader, string, error) {
	if in == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// errorMessage pulls a human-readable message out of an error body. The
// server usually answers {"message": "..."}; anything else passes
// through as plain text.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 8<<10))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(data))
}
