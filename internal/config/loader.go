package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Writer persists the user editable subset of the config.
type Writer interface {
	Write(config Config) error
	Path() string
}

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

func NewLoader(changes chan<- Config) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("riot_api_key", "")
	loader.SetDefault("avg_lp_per_win", DefaultAvgLPPerWin)
	loader.SetDefault("refresh_seconds", 300)
	loader.SetDefault("swap_poll_ms", 2500)
	loader.SetDefault("manual_debounce_ms", 2000)
	loader.SetDefault("local_timeout_ms", 5000)
	loader.SetDefault("public_timeout_ms", 10000)
	loader.SetDefault("match_count", 10)
	loader.SetDefault("match_fetch_concurrency", 4)
	loader.SetDefault("riot_api_host", "")
	loader.SetDefault("release_owner", "despectus")
	loader.SetDefault("release_repo", "despectus")
	loader.SetDefault("check_updates", true)
	loader.SetDefault("debug", false)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(Path(""))
	loader.AddConfigPath(".")
	loader.AutomaticEnv()
	// Plain names so an existing .env file keeps working without the prefix.
	_ = loader.BindEnv("riot_api_key", "RIOT_API_KEY", "DESPECTUS_RIOT_API_KEY")
	_ = loader.BindEnv("avg_lp_per_win", "AVG_LP_PER_WIN", "DESPECTUS_AVG_LP_PER_WIN")
	_ = loader.BindEnv("refresh_seconds", "REFRESH_SECONDS", "DESPECTUS_REFRESH_SECONDS")
	loader.WatchConfig()
	loader.OnConfigChange(loader.onConfigChange)

	return &loader
}

func (cl *Loader) Path() string {
	if used := cl.ConfigFileUsed(); used != "" {
		return used
	}

	return Path(DefaultConfigName + ".yaml")
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if in.Op != fsnotify.Write && in.Op != fsnotify.Rename {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

// Write persists the values editable from the ui. When no config file exists yet one is
// created under the config home.
func (cl *Loader) Write(config Config) error {
	cl.Set("riot_api_key", config.RiotAPIKey)
	cl.Set("avg_lp_per_win", ClampAvgLPPerWin(config.AvgLPPerWin))
	cl.Set("refresh_seconds", config.RefreshSeconds)

	if cl.ConfigFileUsed() == "" {
		if err := cl.WriteConfigAs(cl.Path()); err != nil {
			return errors.Join(err, errConfigWrite)
		}

		return nil
	}

	if err := cl.WriteConfig(); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config.Normalize(), nil
}
