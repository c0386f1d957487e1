package refresh

import (
	"fmt"
	"slices"
	"time"

	"github.com/despectus/despectus/internal/rank"
	"github.com/despectus/despectus/internal/riot"
	"github.com/despectus/despectus/internal/stats"
)

// Stage is the current position of the refresh cycle.
type Stage int

const (
	Idle Stage = iota
	Locating
	Authenticating
	FetchingLocal
	FetchingPublic
	Aggregating
	Published
)

func (s Stage) String() string {
	switch s {
	case Locating:
		return "locating"
	case Authenticating:
		return "authenticating"
	case FetchingLocal:
		return "fetching local"
	case FetchingPublic:
		return "fetching public"
	case Aggregating:
		return "aggregating"
	case Published:
		return "published"
	case Idle:
		fallthrough
	default:
		return "idle"
	}
}

// Trigger records why a refresh was started.
type Trigger int

const (
	TriggerStartup Trigger = iota
	TriggerManual
	TriggerTimer
	TriggerSwap
	TriggerConfig
)

func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerTimer:
		return "timer"
	case TriggerSwap:
		return "swap"
	case TriggerConfig:
		return "config"
	case TriggerStartup:
		fallthrough
	default:
		return "startup"
	}
}

type StatusKind int

const (
	StatusInfo StatusKind = iota
	// StatusAbsent covers expected conditions like the client being closed.
	StatusAbsent
	StatusError
	StatusBusy
)

// Status is the single line describing the current condition.
type Status struct {
	Message string
	Kind    StatusKind
	CycleID string
}

// Identity is the logged in player as reported by the local client.
type Identity struct {
	GameName       string
	TagLine        string
	DisplayName    string
	Level          int
	ProfileIconID  int
	ProfileIconRef string
}

// RiotID is the gameName#tagLine key used to detect account swaps.
func (i Identity) RiotID() string {
	return fmt.Sprintf("%s#%s", i.GameName, i.TagLine)
}

// Snapshot is the complete published state of a refresh cycle. Receivers get their own copy
// and must treat it as read only.
type Snapshot struct {
	CycleID  string
	Identity Identity
	Platform riot.Platform
	Cluster  riot.Cluster
	// Ranked is nil for unranked players or when the client did not return ranked stats.
	Ranked               *rank.Snapshot
	NextRankLabel        *string
	EstimatedGamesToNext *int
	AvgLPPerWin          int
	RankEmblemRef        string
	Matches              []stats.MatchRow
	Stats                stats.Aggregate
	// MatchesSkipped is set when no api key is configured.
	MatchesSkipped bool
	Status         string
	UpdatedAt      time.Time
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	clone := s
	clone.Matches = slices.Clone(s.Matches)
	clone.Stats.TopChampions = slices.Clone(s.Stats.TopChampions)

	if s.Ranked != nil {
		ranked := *s.Ranked
		clone.Ranked = &ranked
	}

	if s.NextRankLabel != nil {
		label := *s.NextRankLabel
		clone.NextRankLabel = &label
	}

	if s.EstimatedGamesToNext != nil {
		games := *s.EstimatedGamesToNext
		clone.EstimatedGamesToNext = &games
	}

	if s.Stats.Summary != nil {
		summary := *s.Stats.Summary
		clone.Stats.Summary = &summary
	}

	return clone
}

// applyRank recomputes the promotion fields from the ranked standing.
func (s *Snapshot) applyRank(avgLPPerWin int) {
	s.AvgLPPerWin = avgLPPerWin
	s.NextRankLabel = nil
	s.EstimatedGamesToNext = nil

	if s.Ranked == nil {
		return
	}

	label, games, ok := s.Ranked.Next(avgLPPerWin)
	if !ok {
		return
	}

	s.NextRankLabel = &label
	s.EstimatedGamesToNext = &games
}
