package main

import (
	"context"
	"errors"
	"log/slog"
	"path"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/release"
	"github.com/despectus/despectus/internal/ui"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/despectus/despectus/internal/ui/pages"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// Orchestrator is the subset of the refresh orchestrator driven by the app.
type Orchestrator interface {
	Run(ctx context.Context)
	Request(ctx context.Context, trigger refresh.Trigger) error
	SetAvgLPPerWin(ctx context.Context, value int) int
	SetAPIKey(ctx context.Context, apiKey string) error
}

// UpdateChecker looks up newer releases.
type UpdateChecker interface {
	Check(ctx context.Context, current string) (release.Update, bool, error)
}

// App is the main application container. Very little logic is contained within this struct. Its mostly
// responsible for routing messages between different systems.
type App struct {
	ui            UI
	config        config.Config
	orchestrator  Orchestrator
	updates       <-chan any
	configUpdates chan config.Config
	writer        config.Writer
	checker       UpdateChecker
	parentCtx     chan any
}

// NewApp returns a new application instance. To actually start the app you must call
// Start(). A nil checker disables the update check.
func NewApp(conf config.Config, orchestrator Orchestrator, updates <-chan any, configUpdates chan config.Config,
	writer config.Writer, checker *release.Checker,
) *App {
	app := &App{
		config:        conf,
		orchestrator:  orchestrator,
		updates:       updates,
		configUpdates: configUpdates,
		writer:        writer,
		parentCtx:     make(chan any),
	}

	// Avoid storing a typed nil.
	if checker != nil {
		app.checker = checker
	}

	return app
}

// Start brings up all the background goroutines and starts the main event processing loop.
// The goroutines are cancelled once the loop exits.
func (app *App) Start(parent context.Context, done <-chan any) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Startup, periodic and account swap refreshes.
	go app.orchestrator.Run(ctx)

	// Start sending snapshots, statuses and stages to the UI.
	go app.uiSender(ctx)

	go app.checkUpdate(ctx)

	for {
		select {
		case req := <-app.parentCtx:
			app.onRequest(ctx, req)
		case conf := <-app.configUpdates:
			app.applyConfig(ctx, conf)
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (app *App) onRequest(ctx context.Context, req any) {
	switch req := req.(type) {
	case command.RefreshRequest:
		if err := app.orchestrator.Request(ctx, refresh.TriggerManual); err != nil {
			slog.Debug("Manual refresh not started", slog.String("reason", err.Error()))
		}
	case command.AvgLPPerWinRequest:
		app.config.AvgLPPerWin = app.orchestrator.SetAvgLPPerWin(ctx, req.Value)
		app.send(app.config)

		if err := app.writer.Write(app.config); err != nil {
			slog.Error("Failed to save lp per win", slog.String("error", err.Error()))
		}
	case command.ConfigSavedRequest:
		app.applyConfig(ctx, req.Config)
	default:
		slog.Warn("Unhandled ui request", slog.Any("request", req))
	}
}

// applyConfig pushes changed values into the running orchestrator. Both saves from the ui and
// external edits of the config file arrive here. Interval changes apply on the next start.
func (app *App) applyConfig(ctx context.Context, conf config.Config) {
	conf = conf.Normalize()
	previous := app.config
	app.config = conf

	if conf.AvgLPPerWin != previous.AvgLPPerWin {
		app.orchestrator.SetAvgLPPerWin(ctx, conf.AvgLPPerWin)
	}

	if conf.RiotAPIKey != previous.RiotAPIKey {
		if err := app.orchestrator.SetAPIKey(ctx, conf.RiotAPIKey); err != nil && !errors.Is(err, refresh.ErrAlreadyRunning) {
			slog.Warn("Refresh after api key change not started", slog.String("reason", err.Error()))
		}
	}

	if conf.RefreshSeconds != previous.RefreshSeconds {
		slog.Info("Refresh interval changes apply after restart",
			slog.Int("refresh_seconds", conf.RefreshSeconds))
	}

	app.send(conf)
}

func (app *App) checkUpdate(ctx context.Context) {
	if app.checker == nil {
		return
	}

	if release.ParseVersion(BuildVersion) == (release.Version{}) {
		slog.Debug("Skipping update check for development build", slog.String("version", BuildVersion))

		return
	}

	available, found, errCheck := app.checker.Check(ctx, BuildVersion)
	if errCheck != nil {
		slog.Warn("Update check failed", slog.String("error", errCheck.Error()))

		return
	}

	if !found {
		return
	}

	slog.Info("Update available", slog.String("version", available.Latest.String()))
	app.send(command.UpdateAvailableMsg{Version: available.Latest.String(), URL: available.Release.HTMLURL})
}

// uiSender handles forwarding all orchestrator updates to the UI.
func (app *App) uiSender(ctx context.Context) {
	for {
		select {
		case msg := <-app.updates:
			app.send(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) send(msg tea.Msg) {
	if app.ui != nil {
		app.ui.Send(msg)
	}
}

func (app *App) createUI(ctx context.Context, loader config.Writer, cachePath string) UI {
	if app.ui == nil {
		app.ui = ui.New(
			ctx,
			app.config,
			pages.BuildInfo{Version: BuildVersion, Commit: BuildCommit, Date: BuildDate},
			loader,
			ui.Paths{Cache: cachePath, Log: path.Join(xdg.ConfigHome, config.ConfigDirName, config.DefaultLogName)},
			app.parentCtx)
	}

	return app.ui
}
