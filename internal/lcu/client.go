// Package lcu finds the running League client and queries its local api.
package lcu

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/despectus/despectus/internal/network"
)

const (
	DefaultTimeout = 5 * time.Second
	authUser       = "riot"
)

var (
	// ErrUnavailable wraps every client api failure. Callers treat it as "not available this
	// cycle" rather than a hard error.
	ErrUnavailable = errors.New("league client api unavailable")
	errNotLoopback = errors.New("refusing non loopback address")
)

// Client queries the local client api for a single session.
type Client struct {
	session Session
	http    network.HTTPDoer
}

// NewClient creates a client for session. The transport skips certificate verification as the
// client uses a self signed cert, so it will only ever dial loopback addresses.
func NewClient(session Session, timeout time.Duration) *Client {
	if timeout <= 0 || timeout > DefaultTimeout {
		timeout = DefaultTimeout
	}

	return &Client{session: session, http: newLoopbackClient(timeout)}
}

func newLoopbackClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: timeout}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: nil,
			DialContext: func(ctx context.Context, proto string, addr string) (net.Conn, error) {
				host, _, errSplit := net.SplitHostPort(addr)
				if errSplit != nil {
					return nil, errSplit
				}

				if ip := net.ParseIP(host); ip == nil || !ip.IsLoopback() {
					return nil, fmt.Errorf("%w: %s", errNotLoopback, addr)
				}

				return dialer.DialContext(ctx, proto, addr)
			},
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec
			},
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			MaxIdleConnsPerHost:   2,
		},
	}
}

func (c *Client) Session() Session {
	return c.session
}

func (c *Client) CurrentSummoner(ctx context.Context) (*Summoner, error) {
	return get[Summoner](ctx, c, "/lol-summoner/v1/current-summoner")
}

func (c *Client) RegionLocale(ctx context.Context) (*RegionLocale, error) {
	return get[RegionLocale](ctx, c, "/riotclient/region-locale")
}

func (c *Client) ChatMe(ctx context.Context) (*ChatMe, error) {
	return get[ChatMe](ctx, c, "/lol-chat/v1/me")
}

func (c *Client) RankedStats(ctx context.Context) (*RankedStats, error) {
	return get[RankedStats](ctx, c, "/lol-ranked/v1/current-ranked-stats")
}

func get[T any](ctx context.Context, client *Client, path string) (*T, error) {
	value, err := network.FetchJSON[T](ctx, client.http, client.session.BaseURL()+path,
		func(req *http.Request) {
			req.SetBasicAuth(authUser, client.session.Password)
		})
	if err != nil {
		return nil, errors.Join(err, ErrUnavailable)
	}

	return value, nil
}
