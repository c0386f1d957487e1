package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "despectus"
	DefaultConfigName  = "despectus"
	DefaultDBName      = "despectus.db"
	DefaultLogName     = "despectus.log"
	CacheDirName       = "cache"
	EnvPrefix          = "despectus"
	DefaultHTTPTimeout = 10 * time.Second

	MinAvgLPPerWin     = 1
	MaxAvgLPPerWin     = 60
	DefaultAvgLPPerWin = 22

	// MaxMatchCount is the number of ranked games summarised per refresh.
	MaxMatchCount = 10

	// maxPublicTimeoutMs caps the public api timeout. Anything longer stalls the refresh cycle
	// well past the point where the user would just press refresh again.
	maxPublicTimeoutMs = 12000
)

type Config struct {
	// RiotAPIKey is sent as the X-Riot-Token for all public api requests. When empty
	// the match pipeline is skipped entirely.
	RiotAPIKey  string `mapstructure:"riot_api_key"`
	AvgLPPerWin int    `mapstructure:"avg_lp_per_win"`
	// RefreshSeconds controls the periodic auto refresh.
	RefreshSeconds        int    `mapstructure:"refresh_seconds"`
	SwapPollMs            int    `mapstructure:"swap_poll_ms"`
	ManualDebounceMs      int    `mapstructure:"manual_debounce_ms"`
	LocalTimeoutMs        int    `mapstructure:"local_timeout_ms"`
	PublicTimeoutMs       int    `mapstructure:"public_timeout_ms"`
	MatchCount            int    `mapstructure:"match_count"`
	MatchFetchConcurrency int    `mapstructure:"match_fetch_concurrency"`
	RiotAPIHost           string `mapstructure:"riot_api_host"`
	ReleaseOwner          string `mapstructure:"release_owner"`
	ReleaseRepo           string `mapstructure:"release_repo"`
	CheckUpdates          bool   `mapstructure:"check_updates"`
	Debug                 bool   `mapstructure:"debug"`
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

func (c Config) SwapPollInterval() time.Duration {
	return time.Duration(c.SwapPollMs) * time.Millisecond
}

func (c Config) ManualDebounce() time.Duration {
	return time.Duration(c.ManualDebounceMs) * time.Millisecond
}

func (c Config) LocalTimeout() time.Duration {
	return time.Duration(c.LocalTimeoutMs) * time.Millisecond
}

func (c Config) PublicTimeout() time.Duration {
	return time.Duration(c.PublicTimeoutMs) * time.Millisecond
}

// LogLevel returns the slog level matching the debug flag.
func (c Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// Normalize clamps values that would otherwise break the refresh pipeline back into
// their valid ranges.
func (c Config) Normalize() Config {
	c.AvgLPPerWin = ClampAvgLPPerWin(c.AvgLPPerWin)
	if c.RefreshSeconds <= 0 {
		c.RefreshSeconds = 300
	}
	if c.SwapPollMs <= 0 {
		c.SwapPollMs = 2500
	}
	if c.ManualDebounceMs < 0 {
		c.ManualDebounceMs = 0
	}
	if c.LocalTimeoutMs <= 0 || c.LocalTimeoutMs > 5000 {
		c.LocalTimeoutMs = 5000
	}
	if c.PublicTimeoutMs <= 0 {
		c.PublicTimeoutMs = 10000
	}
	c.PublicTimeoutMs = min(c.PublicTimeoutMs, maxPublicTimeoutMs)
	c.MatchCount = ClampMatchCount(c.MatchCount)
	if c.MatchFetchConcurrency <= 0 {
		c.MatchFetchConcurrency = 4
	}

	return c
}

func ClampAvgLPPerWin(value int) int {
	return max(MinAvgLPPerWin, min(MaxAvgLPPerWin, value))
}

// ClampMatchCount bounds the match history size to [1, MaxMatchCount]. Unset values use the maximum.
func ClampMatchCount(value int) int {
	if value <= 0 {
		return MaxMatchCount
	}

	return min(MaxMatchCount, value)
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return cacheDir
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
