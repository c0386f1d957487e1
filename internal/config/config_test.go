package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/despectus/despectus/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	conf := config.Config{AvgLPPerWin: 500, PublicTimeoutMs: 60000}.Normalize()

	require.Equal(t, config.MaxAvgLPPerWin, conf.AvgLPPerWin)
	require.Equal(t, 12*time.Second, conf.PublicTimeout())
	require.Equal(t, 5*time.Second, conf.LocalTimeout())
	require.Equal(t, 300*time.Second, conf.RefreshInterval())
	require.Equal(t, 2500*time.Millisecond, conf.SwapPollInterval())
	require.Equal(t, 10, conf.MatchCount)

	require.Equal(t, config.MaxMatchCount, config.Config{MatchCount: 50}.Normalize().MatchCount)
	require.Equal(t, 3, config.Config{MatchCount: 3}.Normalize().MatchCount)
	require.Equal(t, config.MaxMatchCount, config.Config{MatchCount: -1}.Normalize().MatchCount)

	require.Equal(t, config.MinAvgLPPerWin, config.ClampAvgLPPerWin(-3))
	require.Equal(t, 22, config.ClampAvgLPPerWin(22))
}

func TestLoaderRead(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "despectus.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("riot_api_key: RGAPI-file\navg_lp_per_win: 18\nrefresh_seconds: 60\n"), 0o600))

	loader := config.NewLoader(make(chan config.Config, 1))
	loader.SetConfigFile(configPath)

	conf, err := loader.Read()
	require.NoError(t, err)
	require.Equal(t, "RGAPI-file", conf.RiotAPIKey)
	require.Equal(t, 18, conf.AvgLPPerWin)
	require.Equal(t, time.Minute, conf.RefreshInterval())
	require.Equal(t, 4, conf.MatchFetchConcurrency)
	require.True(t, conf.CheckUpdates)
}

func TestLoaderEnvOverride(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-env")
	t.Setenv("AVG_LP_PER_WIN", "99")

	configPath := filepath.Join(t.TempDir(), "despectus.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("debug: true\n"), 0o600))

	loader := config.NewLoader(make(chan config.Config, 1))
	loader.SetConfigFile(configPath)

	conf, err := loader.Read()
	require.NoError(t, err)
	require.Equal(t, "RGAPI-env", conf.RiotAPIKey)
	require.Equal(t, config.MaxAvgLPPerWin, conf.AvgLPPerWin)
	require.True(t, conf.Debug)
}

func TestLoaderWrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "despectus.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("debug: false\n"), 0o600))

	loader := config.NewLoader(make(chan config.Config, 1))
	loader.SetConfigFile(configPath)

	conf, err := loader.Read()
	require.NoError(t, err)

	conf.RiotAPIKey = "RGAPI-written"
	conf.AvgLPPerWin = 30
	require.NoError(t, loader.Write(conf))

	reader := config.NewLoader(make(chan config.Config, 1))
	reader.SetConfigFile(configPath)
	reloaded, errReload := reader.Read()
	require.NoError(t, errReload)
	require.Equal(t, "RGAPI-written", reloaded.RiotAPIKey)
	require.Equal(t, 30, reloaded.AvgLPPerWin)
}
