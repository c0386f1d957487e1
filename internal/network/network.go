// Package network holds the small amount of shared net/http plumbing used by the static asset
// and release clients.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/despectus/despectus/internal/encoding"
)

// maxErrorBody limits how much of a failed response body is kept for the error message.
const maxErrorBody = 2048

var (
	ErrRequest  = errors.New("failed to perform request")
	ErrResponse = errors.New("unexpected response status")
)

// HTTPDoer defines a common interface for HTTP clients.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// StatusError is returned for any non 2xx response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("http %d for %s -> %s", e.StatusCode, e.URL, e.Body)
}

func (e StatusError) Is(target error) bool {
	return target == ErrResponse
}

// RequestOption mutates an outgoing request before it is sent.
type RequestOption func(req *http.Request)

func WithHeader(key string, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// NewClient creates a http client with sane transport level timeouts on top of the overall
// request timeout.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: 2 * time.Second,
			MaxIdleConnsPerHost:   4,
		},
	}
}

// Get performs a GET request returning the open response. The caller owns closing the body. Non 2xx
// responses are consumed and returned as a StatusError.
func Get(ctx context.Context, client HTTPDoer, url string, opts ...RequestOption) (*http.Response, error) {
	req, errReq := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if errReq != nil {
		return nil, errors.Join(errReq, ErrRequest)
	}

	for _, opt := range opts {
		opt(req)
	}

	resp, errResp := client.Do(req)
	if errResp != nil {
		return nil, errors.Join(errResp, ErrRequest)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer closeBody(resp.Body)

		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, StatusError{StatusCode: resp.StatusCode, URL: url, Body: string(body)}
	}

	return resp, nil
}

// FetchJSON will query a json http service using a generic type for receiving results.
func FetchJSON[T any](ctx context.Context, client HTTPDoer, url string, opts ...RequestOption) (*T, error) {
	resp, errResp := Get(ctx, client, url, append([]RequestOption{WithHeader("Accept", "application/json")}, opts...)...)
	if errResp != nil {
		return nil, errResp
	}
	defer closeBody(resp.Body)

	value, errValue := encoding.UnmarshalJSON[T](resp.Body)
	if errValue != nil {
		return nil, errValue
	}

	return &value, nil
}

// FetchBytes reads the full body of a successful GET request.
func FetchBytes(ctx context.Context, client HTTPDoer, url string, opts ...RequestOption) ([]byte, error) {
	resp, errResp := Get(ctx, client, url, opts...)
	if errResp != nil {
		return nil, errResp
	}
	defer closeBody(resp.Body)

	body, errRead := io.ReadAll(resp.Body)
	if errRead != nil {
		return nil, errors.Join(errRead, ErrRequest)
	}

	return body, nil
}

func closeBody(body io.Closer) {
	if err := body.Close(); err != nil {
		slog.Error("failed to close response body", slog.String("error", err.Error()))
	}
}
