// Package refresh runs the refresh cycle. It locates the local client, reads the identity and
// ranked standing, fetches recent matches from the public api and publishes the combined
// result as a single Snapshot. Only one cycle runs at a time.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/despectus/despectus/internal/config"
	"github.com/despectus/despectus/internal/ddragon"
	"github.com/despectus/despectus/internal/lcu"
	"github.com/despectus/despectus/internal/rank"
	"github.com/despectus/despectus/internal/riot"
	"github.com/despectus/despectus/internal/stats"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
)

const (
	msgNotDetected       = "League Client not detected (start the client)."
	msgRegionUnknown     = "Client detected, but region unknown."
	msgNotLoggedIn       = "Client detected, but not logged in."
	msgRiotIDUnavailable = "Client detected, but Riot ID not available yet."
	msgRiotIDMissing     = "Logged in, but Riot ID missing (gameName/tagLine)."
	msgAlreadyRunning    = "Refresh already running"

	cycleIDLength = 10
	// staticDataAge controls how often the ddragon version is rechecked.
	staticDataAge = 6 * time.Hour
)

var (
	ErrAlreadyRunning    = errors.New("refresh already running")
	ErrDebounced         = errors.New("refresh requested too soon")
	ErrClientNotDetected = errors.New("league client not detected")
	ErrRegionUnknown     = errors.New("client region unknown")
	ErrNotLoggedIn       = errors.New("client not logged in")
	ErrRiotIDUnavailable = errors.New("riot id not available")
	ErrRiotIDMissing     = errors.New("riot id missing")
	ErrAccountLookup     = errors.New("account lookup failed")
	ErrMatches           = errors.New("failed to fetch matches")
)

// SessionLocator finds the running client.
type SessionLocator interface {
	Locate(ctx context.Context) (lcu.Session, error)
}

// LocalClient is the subset of the client api used by a cycle.
type LocalClient interface {
	CurrentSummoner(ctx context.Context) (*lcu.Summoner, error)
	RegionLocale(ctx context.Context) (*lcu.RegionLocale, error)
	ChatMe(ctx context.Context) (*lcu.ChatMe, error)
	RankedStats(ctx context.Context) (*lcu.RankedStats, error)
}

// LocalClientFactory builds a client bound to a located session.
type LocalClientFactory func(session lcu.Session) LocalClient

// PublicClient is the public riot api.
type PublicClient interface {
	SetAPIKey(apiKey string)
	HasAPIKey() bool
	AccountByRiotID(ctx context.Context, cluster riot.Cluster, gameName string, tagLine string) (*riot.Account, error)
	MatchIDsByPUUID(ctx context.Context, cluster riot.Cluster, puuid string, queue int, count int) ([]string, error)
	Match(ctx context.Context, cluster riot.Cluster, matchID string) (*riot.Match, error)
}

// StaticAssets provides champion names and image references.
type StaticAssets interface {
	LatestVersion(ctx context.Context) (string, error)
	Champions(ctx context.Context, version string) (*ddragon.Champions, error)
	ProfileIconURL(version string, iconID int) string
	RankEmblemURL(tier rank.Tier) string
}

// AccountCache remembers riot id to PUUID resolutions.
type AccountCache interface {
	Get(ctx context.Context, riotID string, cluster string, maxAge time.Duration) (string, error)
	Put(ctx context.Context, riotID string, cluster string, puuid string) error
}

// Publisher delivers Snapshot, Status and Stage values to the presentation side.
type Publisher chan<- any

// Publish blocks until the update is received or ctx is done, in which case it is dropped.
func (p Publisher) Publish(ctx context.Context, update any) {
	if p == nil {
		return
	}

	select {
	case p <- update:
	case <-ctx.Done():
	}
}

type Deps struct {
	Locator SessionLocator
	Local   LocalClientFactory
	Public  PublicClient
	Assets  StaticAssets
	// Accounts is optional.
	Accounts    AccountCache
	AccountsAge time.Duration
}

type Options struct {
	AvgLPPerWin      int
	RefreshInterval  time.Duration
	SwapPollInterval time.Duration
	ManualDebounce   time.Duration
	StartupDelay     time.Duration
	MatchCount       int
	MatchConcurrency int
}

func OptionsFromConfig(conf config.Config) Options {
	conf = conf.Normalize()

	return Options{
		AvgLPPerWin:      conf.AvgLPPerWin,
		RefreshInterval:  conf.RefreshInterval(),
		SwapPollInterval: conf.SwapPollInterval(),
		ManualDebounce:   conf.ManualDebounce(),
		StartupDelay:     150 * time.Millisecond,
		MatchCount:       conf.MatchCount,
		MatchConcurrency: conf.MatchFetchConcurrency,
	}
}

// Orchestrator owns the refresh state machine.
type Orchestrator struct {
	deps    Deps
	opts    Options
	updates Publisher
	now     func() time.Time

	inFlight atomic.Bool
	stage    atomic.Int32
	avgLP    atomic.Int32

	mu          sync.Mutex
	last        *Snapshot
	lastRiotID  string
	lastStart   time.Time
	swapPending string

	staticMu      sync.Mutex
	version       string
	champions     *ddragon.Champions
	staticUpdated time.Time
}

func New(deps Deps, opts Options, updates Publisher) *Orchestrator {
	opts.MatchCount = config.ClampMatchCount(opts.MatchCount)

	if opts.MatchConcurrency <= 0 {
		opts.MatchConcurrency = 4
	}

	if deps.AccountsAge <= 0 {
		deps.AccountsAge = 24 * time.Hour
	}

	orchestrator := &Orchestrator{
		deps:    deps,
		opts:    opts,
		updates: updates,
		now:     time.Now,
	}
	orchestrator.avgLP.Store(int32(config.ClampAvgLPPerWin(opts.AvgLPPerWin))) //nolint:gosec

	return orchestrator
}

// Stage returns the current cycle stage.
func (o *Orchestrator) Stage() Stage {
	return Stage(o.stage.Load())
}

// Running reports whether a cycle is in flight.
func (o *Orchestrator) Running() bool {
	return o.inFlight.Load()
}

// Last returns a copy of the last published snapshot.
func (o *Orchestrator) Last() (Snapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.last == nil {
		return Snapshot{}, false
	}

	return o.last.Clone(), true
}

func (o *Orchestrator) AvgLPPerWin() int {
	return int(o.avgLP.Load())
}

// SetAvgLPPerWin updates the promotion estimate. The last snapshot is recomputed and
// republished without touching the network. The clamped value is returned.
func (o *Orchestrator) SetAvgLPPerWin(ctx context.Context, value int) int {
	value = config.ClampAvgLPPerWin(value)
	o.avgLP.Store(int32(value)) //nolint:gosec

	o.mu.Lock()
	if o.last == nil {
		o.mu.Unlock()

		return value
	}

	updated := o.last.Clone()
	updated.applyRank(value)
	o.last = &updated
	o.mu.Unlock()

	o.publish(ctx, updated.Clone())

	return value
}

// SetAPIKey replaces the public api key and requests a refresh so matches load immediately.
func (o *Orchestrator) SetAPIKey(ctx context.Context, apiKey string) error {
	o.deps.Public.SetAPIKey(strings.TrimSpace(apiKey))

	return o.Request(ctx, TriggerConfig)
}

// Request starts a cycle in the background. ErrAlreadyRunning is returned when another cycle
// is in flight and ErrDebounced for manual requests arriving within the debounce window.
func (o *Orchestrator) Request(ctx context.Context, trigger Trigger) error {
	if err := o.begin(ctx, trigger); err != nil {
		return err
	}

	go func() {
		defer o.inFlight.Store(false)

		_ = o.cycle(ctx, trigger)
	}()

	return nil
}

// Refresh runs a cycle on the calling goroutine. The returned error is the reason the cycle
// was abandoned, if any.
func (o *Orchestrator) Refresh(ctx context.Context, trigger Trigger) error {
	if err := o.begin(ctx, trigger); err != nil {
		return err
	}

	defer o.inFlight.Store(false)

	return o.cycle(ctx, trigger)
}

func (o *Orchestrator) begin(ctx context.Context, trigger Trigger) error {
	o.mu.Lock()
	if trigger == TriggerManual && !o.lastStart.IsZero() && o.now().Sub(o.lastStart) < o.opts.ManualDebounce {
		o.mu.Unlock()

		return ErrDebounced
	}
	o.mu.Unlock()

	if !o.inFlight.CompareAndSwap(false, true) {
		o.publish(ctx, Status{Message: msgAlreadyRunning, Kind: StatusBusy})

		return ErrAlreadyRunning
	}

	o.mu.Lock()
	o.lastStart = o.now()
	o.mu.Unlock()

	return nil
}

func (o *Orchestrator) setStage(ctx context.Context, stage Stage) {
	o.stage.Store(int32(stage)) //nolint:gosec
	o.publish(ctx, stage)
}

func (o *Orchestrator) publish(ctx context.Context, update any) {
	o.updates.Publish(ctx, update)
}

// abort publishes the status for a failed cycle. The last snapshot is left untouched.
func (o *Orchestrator) abort(ctx context.Context, log *slog.Logger, cycleID string, kind StatusKind, message string, err error) error {
	if kind == StatusError {
		log.Error("Refresh failed", slog.String("error", err.Error()))
	} else {
		log.Debug("Refresh stopped", slog.String("reason", err.Error()))
	}

	o.setStage(ctx, Idle)
	o.publish(ctx, Status{Message: message, Kind: kind, CycleID: cycleID})

	return err
}

func (o *Orchestrator) cycle(ctx context.Context, trigger Trigger) error {
	cycleID, errID := gonanoid.New(cycleIDLength)
	if errID != nil {
		cycleID = fmt.Sprintf("%d", o.now().UnixNano())
	}

	log := slog.With(slog.String("cycle", cycleID), slog.String("trigger", trigger.String()))
	log.Debug("Refresh started")

	o.setStage(ctx, Locating)

	session, errLocate := o.deps.Locator.Locate(ctx)
	if errLocate != nil {
		return o.abort(ctx, log, cycleID, StatusAbsent, msgNotDetected, errors.Join(errLocate, ErrClientNotDetected))
	}

	o.setStage(ctx, Authenticating)

	client := o.deps.Local(session)

	region, errRegion := client.RegionLocale(ctx)
	if errRegion != nil {
		return o.abort(ctx, log, cycleID, StatusAbsent, msgRegionUnknown, errors.Join(errRegion, ErrRegionUnknown))
	}

	platform, knownRegion := riot.PlatformFromRegion(region.Region)
	if !knownRegion {
		return o.abort(ctx, log, cycleID, StatusAbsent, msgRegionUnknown,
			fmt.Errorf("%w: %q", ErrRegionUnknown, region.Region))
	}

	summoner, errSummoner := client.CurrentSummoner(ctx)
	if errSummoner != nil {
		return o.abort(ctx, log, cycleID, StatusAbsent, msgNotLoggedIn, errors.Join(errSummoner, ErrNotLoggedIn))
	}

	o.setStage(ctx, FetchingLocal)

	chat, errChat := client.ChatMe(ctx)
	if errChat != nil {
		return o.abort(ctx, log, cycleID, StatusAbsent, msgRiotIDUnavailable, errors.Join(errChat, ErrRiotIDUnavailable))
	}

	gameName, tagLine, hasRiotID := chat.RiotID()
	if !hasRiotID {
		return o.abort(ctx, log, cycleID, StatusError, msgRiotIDMissing, ErrRiotIDMissing)
	}

	version, champions := o.staticData(ctx, log)

	snapshot := Snapshot{
		CycleID:  cycleID,
		Identity: newIdentity(summoner, gameName, tagLine),
		Platform: platform,
		Cluster:  platform.Cluster(),
	}

	if version != "" {
		snapshot.Identity.ProfileIconRef = o.deps.Assets.ProfileIconURL(version, summoner.ProfileIconID)
	}

	if ranked, errRanked := client.RankedStats(ctx); errRanked != nil {
		log.Warn("Failed to read ranked stats", slog.String("error", errRanked.Error()))
	} else if queue, hasQueue := ranked.SoloQueue(); hasQueue {
		if standing, isRanked := queue.Snapshot(); isRanked {
			snapshot.Ranked = &standing
			snapshot.RankEmblemRef = o.deps.Assets.RankEmblemURL(standing.Tier)
		}
	}

	snapshot.applyRank(o.AvgLPPerWin())

	riotID := snapshot.Identity.RiotID()

	if !o.deps.Public.HasAPIKey() {
		snapshot.MatchesSkipped = true
		snapshot.Status = fmt.Sprintf("Connected: %s • %s • Missing RIOT_API_KEY", platform, riotID)
		o.commit(ctx, snapshot)
		log.Info("Refresh complete without match history", slog.String("riot_id", riotID))

		return nil
	}

	o.setStage(ctx, FetchingPublic)

	puuid, errPUUID := o.resolvePUUID(ctx, log, snapshot.Cluster, gameName, tagLine)
	if errPUUID != nil {
		if errors.Is(errPUUID, riot.ErrNoPUUID) {
			return o.abort(ctx, log, cycleID, StatusError, "Account lookup failed for "+riotID,
				errors.Join(errPUUID, ErrAccountLookup))
		}

		return o.abort(ctx, log, cycleID, StatusError, statusText(errPUUID), errors.Join(errPUUID, ErrAccountLookup))
	}

	matches, errMatches := o.fetchMatches(ctx, snapshot.Cluster, puuid)
	if errMatches != nil {
		return o.abort(ctx, log, cycleID, StatusError, statusText(errMatches), errors.Join(errMatches, ErrMatches))
	}

	o.setStage(ctx, Aggregating)

	var directory stats.ChampionDirectory
	if champions != nil {
		directory = champions
	}

	snapshot.Matches = stats.BuildRows(matches, puuid, directory)
	snapshot.Stats = stats.Summarise(snapshot.Matches)
	snapshot.Status = fmt.Sprintf("Connected: %s • %s", platform, riotID)

	o.commit(ctx, snapshot)
	log.Info("Refresh complete", slog.String("riot_id", riotID), slog.Int("matches", len(snapshot.Matches)))

	return nil
}

// commit stores the snapshot as the last good state and publishes it.
func (o *Orchestrator) commit(ctx context.Context, snapshot Snapshot) {
	snapshot.UpdatedAt = o.now()

	o.mu.Lock()
	// The average may have changed while the cycle was running.
	snapshot.applyRank(o.AvgLPPerWin())
	stored := snapshot.Clone()
	o.last = &stored
	o.lastRiotID = snapshot.Identity.RiotID()
	o.swapPending = ""
	o.mu.Unlock()

	o.setStage(ctx, Published)
	o.publish(ctx, snapshot)
	o.publish(ctx, Status{Message: snapshot.Status, Kind: StatusInfo, CycleID: snapshot.CycleID})
	o.setStage(ctx, Idle)
}

func (o *Orchestrator) resolvePUUID(ctx context.Context, log *slog.Logger, cluster riot.Cluster, gameName string, tagLine string) (string, error) {
	riotID := gameName + "#" + tagLine

	if o.deps.Accounts != nil {
		puuid, errCached := o.deps.Accounts.Get(ctx, riotID, cluster.String(), o.deps.AccountsAge)
		if errCached == nil && puuid != "" {
			return puuid, nil
		}
	}

	account, errAccount := o.deps.Public.AccountByRiotID(ctx, cluster, gameName, tagLine)
	if errAccount != nil {
		return "", errAccount
	}

	if o.deps.Accounts != nil {
		if errPut := o.deps.Accounts.Put(ctx, riotID, cluster.String(), account.PUUID); errPut != nil {
			log.Warn("Failed to cache account", slog.String("error", errPut.Error()))
		}
	}

	return account.PUUID, nil
}

// fetchMatches loads the recent ranked solo matches, preserving the newest first order of the
// id list. Any failure abandons the whole set.
func (o *Orchestrator) fetchMatches(ctx context.Context, cluster riot.Cluster, puuid string) ([]riot.Match, error) {
	matchIDs, errIDs := o.deps.Public.MatchIDsByPUUID(ctx, cluster, puuid, riot.RankedSoloQueueID, o.opts.MatchCount)
	if errIDs != nil {
		return nil, errIDs
	}

	matches := make([]riot.Match, len(matchIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.opts.MatchConcurrency)

	for idx, matchID := range matchIDs {
		group.Go(func() error {
			match, errMatch := o.deps.Public.Match(groupCtx, cluster, matchID)
			if errMatch != nil {
				return errMatch
			}

			matches[idx] = *match

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return matches, nil
}

// staticData returns the ddragon version and champion table. Failures are logged and the
// previous values, possibly empty, are reused.
func (o *Orchestrator) staticData(ctx context.Context, log *slog.Logger) (string, *ddragon.Champions) {
	o.staticMu.Lock()
	defer o.staticMu.Unlock()

	if o.champions != nil && o.now().Sub(o.staticUpdated) < staticDataAge {
		return o.version, o.champions
	}

	version, errVersion := o.deps.Assets.LatestVersion(ctx)
	if errVersion != nil {
		log.Warn("Failed to fetch static data version", slog.String("error", errVersion.Error()))

		return o.version, o.champions
	}

	o.version = version

	champions, errChampions := o.deps.Assets.Champions(ctx, version)
	if errChampions != nil {
		log.Warn("Failed to fetch champions", slog.String("error", errChampions.Error()))

		return o.version, o.champions
	}

	o.champions = champions
	o.staticUpdated = o.now()

	return o.version, o.champions
}

func newIdentity(summoner *lcu.Summoner, gameName string, tagLine string) Identity {
	displayName := strings.TrimSpace(summoner.DisplayName)
	if displayName == "" {
		displayName = gameName
	}

	return Identity{
		GameName:      gameName,
		TagLine:       tagLine,
		DisplayName:   displayName,
		Level:         summoner.SummonerLevel,
		ProfileIconID: summoner.ProfileIconID,
	}
}

// statusText flattens joined errors onto a single line.
func statusText(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}
