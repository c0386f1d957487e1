package refresh

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Run drives the automatic refresh triggers until ctx is cancelled: a single startup refresh,
// the periodic refresh and the account swap watcher.
func (o *Orchestrator) Run(ctx context.Context) {
	go o.Watch(ctx)

	startup := time.NewTimer(max(0, o.opts.StartupDelay))
	defer startup.Stop()

	var periodic <-chan time.Time
	if o.opts.RefreshInterval > 0 {
		ticker := time.NewTicker(o.opts.RefreshInterval)
		defer ticker.Stop()
		periodic = ticker.C
	}

	for {
		select {
		case <-startup.C:
			o.requestLogged(ctx, TriggerStartup)
		case <-periodic:
			o.requestLogged(ctx, TriggerTimer)
		case <-ctx.Done():
			return
		}
	}
}

// Watch polls for account swaps until ctx is cancelled.
func (o *Orchestrator) Watch(ctx context.Context) {
	if o.opts.SwapPollInterval <= 0 {
		return
	}

	ticker := time.NewTicker(o.opts.SwapPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			o.CheckAccountSwap(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (o *Orchestrator) requestLogged(ctx context.Context, trigger Trigger) {
	if err := o.Request(ctx, trigger); err != nil {
		slog.Debug("Refresh not started", slog.String("trigger", trigger.String()),
			slog.String("reason", err.Error()))
	}
}

// CheckAccountSwap compares the riot id currently logged into the client against the one from
// the last successful cycle and requests a refresh when they differ. Nothing happens before
// the first successful cycle, while a cycle is running or when the client cannot be read.
// A changed identity triggers once, further polls observing the same identity are ignored
// until a cycle succeeds or the identity changes again.
func (o *Orchestrator) CheckAccountSwap(ctx context.Context) bool {
	if o.inFlight.Load() {
		return false
	}

	o.mu.Lock()
	lastRiotID := o.lastRiotID
	o.mu.Unlock()

	if lastRiotID == "" {
		return false
	}

	session, errLocate := o.deps.Locator.Locate(ctx)
	if errLocate != nil {
		return false
	}

	chat, errChat := o.deps.Local(session).ChatMe(ctx)
	if errChat != nil {
		return false
	}

	gameName, tagLine, ok := chat.RiotID()
	if !ok {
		return false
	}

	observed := gameName + "#" + tagLine

	o.mu.Lock()
	if observed == o.lastRiotID {
		o.swapPending = ""
		o.mu.Unlock()

		return false
	}

	if observed == o.swapPending {
		o.mu.Unlock()

		return false
	}

	o.swapPending = observed
	o.mu.Unlock()

	slog.Info("Account swap detected", slog.String("from", lastRiotID), slog.String("to", observed))

	if err := o.Request(ctx, TriggerSwap); err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			// Retry on the next poll.
			o.mu.Lock()
			o.swapPending = ""
			o.mu.Unlock()
		}

		return false
	}

	return true
}
