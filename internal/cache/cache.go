// Package cache implements a very trivial filesystem cache.
package cache

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/despectus/despectus/internal/config"
)

var (
	ErrCacheMiss = errors.New("cache miss error")
	errCacheSet  = errors.New("cache set error")
	errCacheDir  = errors.New("cache dir error")
)

type Cache interface {
	Get(key string, variant ItemVariant) ([]byte, error)
	Set(key string, variant ItemVariant, content []byte) error
}

type ItemVariant int

const (
	// StaticVersions is the data dragon versions feed.
	StaticVersions ItemVariant = iota
	// StaticChampions is the champion.json for a specific version.
	StaticChampions
)

// maxAge is how long until an entry is considered stale.
func (v ItemVariant) maxAge() time.Duration {
	switch v {
	case StaticVersions:
		return time.Hour * 6
	case StaticChampions:
		return time.Hour * 24 * 7
	default:
		return time.Hour * 24
	}
}

// Filesystem implements the default filesystem based Cache interface.
type Filesystem struct {
	cacheDir string
}

func New() (Filesystem, error) {
	return NewAt(config.PathCache(config.CacheDirName))
}

// NewAt creates the cache rooted at cachePath.
func NewAt(cachePath string) (Filesystem, error) {
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		slog.Error("Failed to make cache root", slog.String("error", err.Error()),
			slog.String("path", cachePath))

		return Filesystem{}, errors.Join(err, errCacheDir)
	}

	return Filesystem{cacheDir: cachePath}, nil
}

func (c Filesystem) Dir() string {
	return c.cacheDir
}

func (c Filesystem) Set(key string, variant ItemVariant, content []byte) error {
	file, errFile := os.Create(path.Join(c.cacheDir, cacheName(key, variant)))
	if errFile != nil {
		return errors.Join(errFile, errCacheSet)
	}

	defer func(file io.Closer) {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close cache file", slog.String("error", err.Error()))
		}
	}(file)

	if _, err := file.Write(content); err != nil {
		return errors.Join(err, errCacheSet)
	}

	return nil
}

func (c Filesystem) Get(key string, variant ItemVariant) ([]byte, error) {
	fullPath := path.Join(c.cacheDir, cacheName(key, variant))

	file, errFile := os.Open(fullPath)
	if errFile != nil {
		return nil, errors.Join(errFile, ErrCacheMiss)
	}

	stat, errStat := file.Stat()
	if errStat != nil {
		if err := file.Close(); err != nil {
			return nil, errors.Join(errStat, err, ErrCacheMiss)
		}

		return nil, errors.Join(errStat, ErrCacheMiss)
	}

	if time.Since(stat.ModTime()) > variant.maxAge() {
		if err := file.Close(); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		if err := os.Remove(fullPath); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, ErrCacheMiss
	}

	body, errRead := io.ReadAll(file)
	if errRead != nil {
		if err := file.Close(); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, errors.Join(errRead, ErrCacheMiss)
	}

	if err := file.Close(); err != nil {
		return nil, errors.Join(err, ErrCacheMiss)
	}

	return body, nil
}

// cacheName flattens key into a safe file name.
func cacheName(key string, variant ItemVariant) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, key)

	return safe + "_" + strconv.Itoa(int(variant))
}
