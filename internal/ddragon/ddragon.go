// Package ddragon fetches the static data dragon assets: the current patch version, champion
// names and the icon and emblem urls.
package ddragon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/despectus/despectus/internal/cache"
	"github.com/despectus/despectus/internal/encoding"
	"github.com/despectus/despectus/internal/network"
	"github.com/despectus/despectus/internal/rank"
)

const (
	DefaultBaseURL   = "https://ddragon.leagueoflegends.com"
	DefaultEmblemURL = "https://raw.communitydragon.org/latest/plugins/rcp-fe-lol-static-assets/global/default/images/ranked-emblem"
	versionsCacheKey = "versions"
)

var (
	ErrVersions  = errors.New("failed to fetch versions")
	ErrChampions = errors.New("failed to fetch champion data")
)

type Option func(c *Client)

// WithBaseURL points data and icon urls at another data dragon mirror.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithEmblemURL(emblemURL string) Option {
	return func(c *Client) {
		c.emblemURL = strings.TrimSuffix(emblemURL, "/")
	}
}

type Client struct {
	http      network.HTTPDoer
	cache     cache.Cache
	baseURL   string
	emblemURL string
}

func New(httpClient network.HTTPDoer, fsCache cache.Cache, opts ...Option) *Client {
	client := &Client{
		http:      httpClient,
		cache:     fsCache,
		baseURL:   DefaultBaseURL,
		emblemURL: DefaultEmblemURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// LatestVersion returns the first, newest, entry of the versions feed.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	versions, errVersions := cached[[]string](ctx, c, versionsCacheKey, cache.StaticVersions, c.baseURL+"/api/versions.json")
	if errVersions != nil {
		return "", errors.Join(errVersions, ErrVersions)
	}

	if len(versions) == 0 {
		return "", ErrVersions
	}

	return versions[0], nil
}

type championData struct {
	Version string `json:"version"`
	Data    map[string]struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// Champions loads the champion directory for version.
func (c *Client) Champions(ctx context.Context, version string) (*Champions, error) {
	data, errData := cached[championData](ctx, c, version, cache.StaticChampions,
		fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.baseURL, version))
	if errData != nil {
		return nil, errors.Join(errData, ErrChampions)
	}

	champions := &Champions{version: version, baseURL: c.baseURL, byKey: make(map[int]Champion, len(data.Data))}
	for _, champ := range data.Data {
		key, errKey := strconv.Atoi(champ.Key)
		if errKey != nil {
			slog.Warn("Invalid champion key", slog.String("id", champ.ID), slog.String("key", champ.Key))

			continue
		}

		champions.byKey[key] = Champion{Key: key, ID: champ.ID, Name: champ.Name}
	}

	return champions, nil
}

// cached reads the json document from the filesystem cache, falling back to fetching and storing
// it. Cache write failures are logged only.
func cached[T any](ctx context.Context, client *Client, key string, variant cache.ItemVariant, url string) (T, error) {
	if client.cache != nil {
		if body, errGet := client.cache.Get(key, variant); errGet == nil {
			value, errDecode := encoding.DecodeJSON[T](body)
			if errDecode == nil {
				return value, nil
			}

			slog.Warn("Discarding invalid cache entry", slog.String("key", key),
				slog.String("error", errDecode.Error()))
		}
	}

	var empty T

	body, errFetch := network.FetchBytes(ctx, client.http, url)
	if errFetch != nil {
		return empty, errFetch
	}

	value, errDecode := encoding.DecodeJSON[T](body)
	if errDecode != nil {
		return empty, errDecode
	}

	if client.cache != nil {
		if errSet := client.cache.Set(key, variant, body); errSet != nil {
			slog.Error("Failed to write cache", slog.String("key", key), slog.String("error", errSet.Error()))
		}
	}

	return value, nil
}

func (c *Client) ProfileIconURL(version string, iconID int) string {
	return fmt.Sprintf("%s/cdn/%s/img/profileicon/%d.png", c.baseURL, version, iconID)
}

func (c *Client) ChampionIconURL(version string, championID string) string {
	return championIconURL(c.baseURL, version, championID)
}

func championIconURL(baseURL string, version string, championID string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", baseURL, version, championID)
}

// RankEmblemURL returns the emblem image for tier. Anything that is not a ranked tier uses
// the iron emblem.
func (c *Client) RankEmblemURL(tier rank.Tier) string {
	if !slices.Contains(rank.Tiers(), tier) {
		tier = rank.Iron
	}

	return fmt.Sprintf("%s/emblem-%s.png", c.emblemURL, strings.ToLower(string(tier)))
}

type Champion struct {
	Key  int
	ID   string
	Name string
}

// Champions is a directory of champions keyed by their numeric key.
type Champions struct {
	version string
	baseURL string
	byKey   map[int]Champion
}

func (c *Champions) Version() string {
	if c == nil {
		return ""
	}

	return c.version
}

func (c *Champions) Len() int {
	if c == nil {
		return 0
	}

	return len(c.byKey)
}

// Champion returns the display name and icon url for the numeric champion id.
func (c *Champions) Champion(id int) (string, string, bool) {
	if c == nil {
		return "", "", false
	}

	champ, found := c.byKey[id]
	if !found {
		return "", "", false
	}

	return champ.Name, championIconURL(c.baseURL, c.version, champ.ID), true
}
