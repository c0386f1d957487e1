package main

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/refresh"
	"github.com/despectus/despectus/internal/ui/command"
	"github.com/stretchr/testify/require"
)

type fakeOrchestrator struct {
	mu       sync.Mutex
	triggers []refresh.Trigger
	avg      int
	apiKeys  []string
	runCtx   context.Context //nolint:containedctx
}

func (f *fakeOrchestrator) Run(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.runCtx = ctx
}

// runCancelled reports whether the context handed to Run has been cancelled.
func (f *fakeOrchestrator) runCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.runCtx != nil && f.runCtx.Err() != nil
}

func (f *fakeOrchestrator) Request(_ context.Context, trigger refresh.Trigger) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.triggers = append(f.triggers, trigger)

	return nil
}

func (f *fakeOrchestrator) SetAvgLPPerWin(_ context.Context, value int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.avg = config.ClampAvgLPPerWin(value)

	return f.avg
}

func (f *fakeOrchestrator) SetAPIKey(_ context.Context, apiKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.apiKeys = append(f.apiKeys, apiKey)

	return nil
}

type fakeUI struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (f *fakeUI) Send(msg tea.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.msgs = append(f.msgs, msg)
}

func (f *fakeUI) Run() error { return nil }

func (f *fakeUI) received() []tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]tea.Msg(nil), f.msgs...)
}

type fakeWriter struct {
	written []config.Config
}

func (f *fakeWriter) Write(conf config.Config) error {
	f.written = append(f.written, conf)

	return nil
}

func (f *fakeWriter) Path() string { return "despectus.yaml" }

func newTestApp(t *testing.T) (*App, *fakeOrchestrator, *fakeUI, *fakeWriter) {
	t.Helper()

	conf := config.Config{AvgLPPerWin: 22, RefreshSeconds: 300}.Normalize()
	orchestrator := &fakeOrchestrator{avg: conf.AvgLPPerWin}
	writer := &fakeWriter{}
	app := NewApp(conf, orchestrator, make(chan any), make(chan config.Config), writer, nil)
	display := &fakeUI{}
	app.ui = display

	return app, orchestrator, display, writer
}

func TestAppRefreshRequest(t *testing.T) {
	app, orchestrator, _, _ := newTestApp(t)

	app.onRequest(t.Context(), command.RefreshRequest{})

	require.Equal(t, []refresh.Trigger{refresh.TriggerManual}, orchestrator.triggers)
}

func TestAppAvgLPPerWinRequest(t *testing.T) {
	app, orchestrator, display, writer := newTestApp(t)

	app.onRequest(t.Context(), command.AvgLPPerWinRequest{Value: 99})

	require.Equal(t, config.MaxAvgLPPerWin, orchestrator.avg)
	require.Equal(t, config.MaxAvgLPPerWin, app.config.AvgLPPerWin)
	require.Len(t, writer.written, 1)
	require.Equal(t, config.MaxAvgLPPerWin, writer.written[0].AvgLPPerWin)

	msgs := display.received()
	require.Len(t, msgs, 1)
	conf, ok := msgs[0].(config.Config)
	require.True(t, ok)
	require.Equal(t, config.MaxAvgLPPerWin, conf.AvgLPPerWin)
}

func TestAppApplyConfig(t *testing.T) {
	app, orchestrator, display, _ := newTestApp(t)

	// Unchanged values do not touch the orchestrator.
	app.applyConfig(t.Context(), app.config)
	require.Empty(t, orchestrator.apiKeys)

	updated := app.config
	updated.RiotAPIKey = "RGAPI-new"
	updated.AvgLPPerWin = 18
	app.onRequest(t.Context(), command.ConfigSavedRequest{Config: updated})

	require.Equal(t, []string{"RGAPI-new"}, orchestrator.apiKeys)
	require.Equal(t, 18, orchestrator.avg)
	require.Equal(t, "RGAPI-new", app.config.RiotAPIKey)
	require.Len(t, display.received(), 2)
}

func TestAppForwardsUpdates(t *testing.T) {
	app, _, display, _ := newTestApp(t)
	updates := make(chan any)
	app.updates = updates

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	go app.uiSender(ctx)

	updates <- refresh.Idle
	updates <- refresh.Status{Message: "League Client not detected (start the client).", Kind: refresh.StatusAbsent}

	require.Eventually(t, func() bool {
		return len(display.received()) == 2
	}, time.Second, time.Millisecond*10)

	require.Equal(t, refresh.Idle, display.received()[0])
}

func TestAppStartStopsOnDone(t *testing.T) {
	app, orchestrator, _, _ := newTestApp(t)
	done := make(chan any, 1)
	finished := make(chan struct{})

	go func() {
		app.Start(t.Context(), done)
		close(finished)
	}()

	app.parentCtx <- command.RefreshRequest{}
	done <- true

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("app did not stop")
	}

	// The background goroutines must not outlive the ui.
	require.Eventually(t, orchestrator.runCancelled, time.Second, time.Millisecond*10)
	require.NoError(t, t.Context().Err())
}
