package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/fang"
	"github.com/despectus/despectus/internal/cache"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/ddragon"
	"github.com/despectus/despectus/internal/lcu"
	"github.com/despectus/despectus/internal/network"
	"github.com/despectus/despectus/internal/rank"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/release"
	"github.com/despectus/despectus/internal/riot"
	"github.com/despectus/despectus/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	rootCmd        = &cobra.Command{
		Use:   "despectus",
		Short: "League of Legends ranked companion TUI",
		Long:  `despectus - Ranked progress and recent match history for the account logged into the League Client`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about despectus",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}

	updateCmd = &cobra.Command{
		Use:               "update",
		Short:             "Check for a newer release",
		Long:              "Check GitHub for a newer release and optionally download and launch its installer",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              update,
	}

	locateCmd = &cobra.Command{
		Use:               "locate",
		Short:             "Show the running League Client session",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE:              locate,
	}

	rankCmd = &cobra.Command{
		Use:     "rank <tier> [division]",
		Short:   "Estimate the wins needed for the next rank",
		Example: "despectus rank gold II --lp 40 --avg 22",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    estimate,
	}
)

var (
	errApp       = errors.New("application error")
	errRankInput = errors.New("invalid rank")
)

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	updateCmd.Flags().Bool("install", false, "Download and launch the installer when an update is available")
	updateCmd.Flags().Bool("silent", true, "Run the installer without prompts")
	rankCmd.Flags().Int("lp", 0, "Current league points")
	rankCmd.Flags().Int("avg", config.DefaultAvgLPPerWin, "Average league points gained per win")
	rootCmd.AddCommand(versionCmd, updateCmd, locateCmd, rankCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("despectus - League ranked companion\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)           //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)            //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)              //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)       //nolint:forbidigo
}

func loadConfig(changes chan<- config.Config) (*config.Loader, config.Config, error) {
	loader := config.NewLoader(changes)
	if cfgFile != "" {
		loader.SetConfigFile(cfgFile)
	}

	conf, errConfig := loader.Read()
	if errConfig != nil {
		return nil, config.Config{}, errors.Join(errConfig, errApp)
	}

	return loader, conf, nil
}

func newChecker(conf config.Config) *release.Checker {
	return release.NewChecker(network.NewClient(conf.PublicTimeout()), conf.ReleaseOwner, conf.ReleaseRepo)
}

func update(cmd *cobra.Command, _ []string) error {
	_, conf, errConfig := loadConfig(nil)
	if errConfig != nil {
		return errConfig
	}

	checker := newChecker(conf)

	latest, available, errCheck := checker.Check(cmd.Context(), BuildVersion)
	if errCheck != nil {
		return errors.Join(errCheck, errApp)
	}

	if !available {
		fmt.Printf("Up to date (current: %s, latest: %s)\n", BuildVersion, latest.Latest) //nolint:forbidigo

		return nil
	}

	fmt.Printf("Update available: %s -> %s\n  %s\n", latest.Current, latest.Latest, latest.Release.HTMLURL) //nolint:forbidigo

	install, _ := cmd.Flags().GetBool("install")
	if !install {
		return nil
	}

	installerPath, errDownload := checker.Download(cmd.Context(), latest.Installer, "")
	if errDownload != nil {
		return errors.Join(errDownload, errApp)
	}

	silent, _ := cmd.Flags().GetBool("silent")
	if errLaunch := release.Launch(installerPath, silent); errLaunch != nil {
		return errors.Join(errLaunch, errApp)
	}

	fmt.Printf("Launched installer %s\n", installerPath) //nolint:forbidigo

	return nil
}

func locate(cmd *cobra.Command, _ []string) error {
	session, errLocate := lcu.NewLocator(nil).Locate(cmd.Context())
	if errLocate != nil {
		return errors.Join(errLocate, errApp)
	}

	fmt.Printf("  Process:  %s (%d)\n", session.ProcessName, session.PID)    //nolint:forbidigo
	fmt.Printf("  URL:      %s\n", session.BaseURL())                        //nolint:forbidigo
	fmt.Printf("  Password: %s\n", strings.Repeat("*", len(session.Password))) //nolint:forbidigo

	return nil
}

func estimate(cmd *cobra.Command, args []string) error {
	tier, tierOk := rank.ParseTier(args[0])
	if !tierOk || !tier.Ranked() {
		return fmt.Errorf("%w: unknown tier %q", errRankInput, args[0])
	}

	division := rank.DivisionNone
	if len(args) > 1 {
		parsed, divisionOk := rank.ParseDivision(args[1])
		if !divisionOk {
			return fmt.Errorf("%w: unknown division %q", errRankInput, args[1])
		}

		division = parsed
	}

	if tier.HasDivisions() && division == rank.DivisionNone {
		return fmt.Errorf("%w: %s requires a division", errRankInput, tier.Title())
	}

	leaguePoints, _ := cmd.Flags().GetInt("lp")
	avg, _ := cmd.Flags().GetInt("avg")
	avg = config.ClampAvgLPPerWin(avg)

	standing := rank.Snapshot{Tier: tier, Division: division, LeaguePoints: leaguePoints}

	next, games, ok := standing.Next(avg)
	if !ok {
		fmt.Printf("%s %d LP: top of the ladder\n", standing.Label(), leaguePoints) //nolint:forbidigo

		return nil
	}

	fmt.Printf("%s %d LP -> %s: ~%d wins @ %d LP/win\n", standing.Label(), leaguePoints, next, games, avg) //nolint:forbidigo

	return nil
}

// run is the main entry point of despectus.
func run(cmd *cobra.Command, _ []string) error {
	// If PROFILE is set, it will be used as the output file path for the profiler.
	if len(os.Getenv("PROFILE")) > 0 {
		f, err := os.Create(os.Getenv("PROFILE"))
		if err != nil {
			return errors.Join(err, errApp)
		}

		if errStart := pprof.StartCPUProfile(f); errStart != nil {
			return errors.Join(errStart, errApp)
		}
		defer pprof.StopCPUProfile()
	}

	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return errors.Join(err, errApp)
	}

	configUpdates := make(chan config.Config)

	configLoader, userConfig, errConfig := loadConfig(configUpdates)
	if errConfig != nil {
		return errConfig
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, userConfig.LogLevel())
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}(logFile)

	slog.Info("Starting despectus", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	// Setup the filesystem cache, creating any necessary directories.
	fsCache, errCache := cache.New()
	if errCache != nil {
		return errors.Join(errCache, errApp)
	}

	// Setup the sqlite database system.
	database, errDB := store.Open(cmd.Context(), config.Path(config.DefaultDBName))
	if errDB != nil {
		return errors.Join(errDB, errApp)
	}

	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}()

	var riotOpts []riot.Option
	riotOpts = append(riotOpts, riot.WithTimeout(userConfig.PublicTimeout()))
	if userConfig.RiotAPIHost != "" {
		riotOpts = append(riotOpts, riot.WithHost(userConfig.RiotAPIHost))
	}

	localTimeout := userConfig.LocalTimeout()
	updates := make(chan any, 64)
	orchestrator := refresh.New(refresh.Deps{
		Locator: lcu.NewLocator(nil),
		Local: func(session lcu.Session) refresh.LocalClient {
			return lcu.NewClient(session, localTimeout)
		},
		Public:   riot.New(userConfig.RiotAPIKey, riotOpts...),
		Assets:   ddragon.New(network.NewClient(config.DefaultHTTPTimeout), fsCache),
		Accounts: store.NewAccounts(database),
	}, refresh.OptionsFromConfig(userConfig), updates)

	var checker *release.Checker
	if userConfig.CheckUpdates {
		checker = newChecker(userConfig)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	done := make(chan any, 1)
	app := NewApp(userConfig, orchestrator, updates, configUpdates, configLoader, checker)

	go func() {
		if err := app.createUI(ctx, configLoader, fsCache.Dir()).Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		done <- "🏁"
	}()

	app.Start(ctx, done)

	return nil
}
