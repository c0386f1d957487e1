// Package riot implements the public riot web api calls needed to build the recent match history
// for a riot id.
package riot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/despectus/despectus/internal/encoding"
	"github.com/valyala/fasthttp"
)

const (
	// RankedSoloQueueID is the queue filter for ranked solo/duo.
	RankedSoloQueueID = 420
	DefaultTimeout    = 10 * time.Second
	defaultHost       = "https://%s.api.riotgames.com"
	userAgent         = "despectus"
	maxErrorBody      = 2048
)

var (
	ErrMissingAPIKey = errors.New("riot api key is not configured")
	ErrNoPUUID       = errors.New("account response did not include a puuid")
	ErrRequest       = errors.New("riot api request failed")
)

// APIError is returned for any non 2xx response from the api.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
	// RetryAfter is populated from the Retry-After header on rate limited responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("riot api %d for %s -> %s", e.StatusCode, e.URL, e.Body)
}

type Option func(c *Client)

// WithHost overrides the api host. A value containing %s has the cluster substituted, otherwise
// it is used as is for every cluster.
func WithHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.host = host
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client talks to the public riot api. It is safe for concurrent use.
type Client struct {
	mu      sync.RWMutex
	apiKey  string
	host    string
	timeout time.Duration
	client  *fasthttp.Client
}

func New(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:  apiKey,
		host:    defaultHost,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.client = &fasthttp.Client{
		Name:                userAgent,
		MaxConnsPerHost:     16,
		ReadTimeout:         client.timeout,
		WriteTimeout:        client.timeout,
		MaxIdleConnDuration: time.Minute,
	}

	return client
}

// SetAPIKey replaces the token used for subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apiKey = apiKey
}

func (c *Client) HasAPIKey() bool {
	return c.key() != ""
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.apiKey
}

func (c *Client) baseURL(cluster Cluster) string {
	if cluster == "" {
		cluster = DefaultCluster
	}

	if !strings.Contains(c.host, "%s") {
		return strings.TrimSuffix(c.host, "/")
	}

	return fmt.Sprintf(c.host, cluster)
}

// AccountByRiotID resolves a riot id into its account, most importantly the PUUID.
func (c *Client) AccountByRiotID(ctx context.Context, cluster Cluster, gameName string, tagLine string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL(cluster), url.PathEscape(gameName), url.PathEscape(tagLine))

	account, errAccount := doRequest[Account](ctx, c, endpoint)
	if errAccount != nil {
		return nil, errAccount
	}

	if account.PUUID == "" {
		return nil, ErrNoPUUID
	}

	return account, nil
}

// MatchIDsByPUUID returns the most recent match ids, newest first.
func (c *Client) MatchIDsByPUUID(ctx context.Context, cluster Cluster, puuid string, queue int, count int) ([]string, error) {
	query := url.Values{}
	query.Set("queue", strconv.Itoa(queue))
	query.Set("count", strconv.Itoa(count))

	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s",
		c.baseURL(cluster), url.PathEscape(puuid), query.Encode())

	ids, errIDs := doRequest[[]string](ctx, c, endpoint)
	if errIDs != nil {
		return nil, errIDs
	}

	return *ids, nil
}

func (c *Client) Match(ctx context.Context, cluster Cluster, matchID string) (*Match, error) {
	endpoint := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL(cluster), url.PathEscape(matchID))

	return doRequest[Match](ctx, c, endpoint)
}

func doRequest[T any](ctx context.Context, client *Client, endpoint string) (*T, error) {
	apiKey := client.key()
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Join(err, ErrRequest)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", apiKey)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(client.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, errors.Join(err, ErrRequest)
	}

	if resp.StatusCode() < fasthttp.StatusOK || resp.StatusCode() >= fasthttp.StatusMultipleChoices {
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}

		apiErr := &APIError{StatusCode: resp.StatusCode(), URL: endpoint, Body: string(body)}
		if retryAfter := string(resp.Header.Peek("Retry-After")); retryAfter != "" {
			if seconds, errConv := strconv.Atoi(retryAfter); errConv == nil {
				apiErr.RetryAfter = time.Duration(seconds) * time.Second
			}
		}

		return nil, apiErr
	}

	result, errDecode := encoding.DecodeJSON[T](resp.Body())
	if errDecode != nil {
		return nil, errDecode
	}

	return &result, nil
}
