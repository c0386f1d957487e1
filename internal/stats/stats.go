// Package stats turns raw match payloads into per match rows and the aggregate figures shown
// for the recent match window.
package stats

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/despectus/despectus/internal/riot"
	"golang.org/x/exp/constraints"
)

// topChampionCount is the number of most played champions reported.
const topChampionCount = 3

// ChampionDirectory resolves numeric champion ids.
type ChampionDirectory interface {
	Champion(id int) (name string, iconRef string, ok bool)
}

// MatchRow is the players line from a single match.
type MatchRow struct {
	MatchID         string
	Win             bool
	ChampionName    string
	ChampionIconRef string
	Kills           int
	Deaths          int
	Assists         int
	CS              int
	VisionScore     int
	DurationMinutes int
}

// KDA uses a floor of one death so deathless games stay finite.
func (r MatchRow) KDA() float64 {
	return float64(r.Kills+r.Assists) / float64(max(1, r.Deaths))
}

func (r MatchRow) KDAString() string {
	return fmt.Sprintf("%d/%d/%d", r.Kills, r.Deaths, r.Assists)
}

func (r MatchRow) CSPerMinute() float64 {
	return float64(r.CS) / float64(max(1, r.DurationMinutes))
}

// BuildRow extracts the row for puuid. False is returned when the player did not take part
// in the match, these records are skipped rather than treated as an error.
func BuildRow(match riot.Match, puuid string, champions ChampionDirectory) (MatchRow, bool) {
	player, found := match.Participant(puuid)
	if !found {
		return MatchRow{}, false
	}

	name, icon, known := "", "", false
	if champions != nil {
		name, icon, known = champions.Champion(player.ChampionID)
	}

	if !known {
		name = fmt.Sprintf("Champion %d", player.ChampionID)
		icon = ""
	}

	matchID := match.Metadata.MatchID
	if matchID == "" {
		matchID = "—"
	}

	return MatchRow{
		MatchID:         matchID,
		Win:             player.Win,
		ChampionName:    name,
		ChampionIconRef: icon,
		Kills:           player.Kills,
		Deaths:          player.Deaths,
		Assists:         player.Assists,
		CS:              player.TotalMinionsKilled + player.NeutralMinionsKilled,
		VisionScore:     player.VisionScore,
		DurationMinutes: max(1, int(match.Info.GameDuration/60)),
	}, true
}

// BuildRows converts the matches in order, dropping any the player is absent from.
func BuildRows(matches []riot.Match, puuid string, champions ChampionDirectory) []MatchRow {
	rows := make([]MatchRow, 0, len(matches))
	for _, match := range matches {
		if row, ok := BuildRow(match, puuid, champions); ok {
			rows = append(rows, row)
		}
	}

	return rows
}

// Summary holds the aggregate figures for a non empty match window.
type Summary struct {
	WinRate     float64
	AvgKDA      float64
	BestKDA     float64
	AvgCS       float64
	AvgDuration float64
	Wins        int
	Losses      int
}

type ChampionCount struct {
	Name    string
	IconRef string
	Count   int
}

// Aggregate is the result of summarising a match window. Summary is nil when there were no
// matches.
type Aggregate struct {
	Summary      *Summary
	TopChampions []ChampionCount
}

func (a Aggregate) Empty() bool {
	return a.Summary == nil
}

// Summarise computes the aggregate figures for rows.
func Summarise(rows []MatchRow) Aggregate {
	if len(rows) == 0 {
		return Aggregate{TopChampions: []ChampionCount{}}
	}

	var (
		wins    int
		kdas    = make([]float64, len(rows))
		cs      = make([]int, len(rows))
		minutes = make([]int, len(rows))
	)

	for idx, row := range rows {
		if row.Win {
			wins++
		}
		kdas[idx] = row.KDA()
		cs[idx] = row.CS
		minutes[idx] = row.DurationMinutes
	}

	return Aggregate{
		Summary: &Summary{
			WinRate:     float64(wins) / float64(len(rows)) * 100,
			AvgKDA:      mean(kdas),
			BestKDA:     slices.Max(kdas),
			AvgCS:       mean(cs),
			AvgDuration: mean(minutes),
			Wins:        wins,
			Losses:      len(rows) - wins,
		},
		TopChampions: TopChampions(rows, topChampionCount),
	}
}

// TopChampions counts rows by champion name, ordered by count with ties going to whichever
// champion appeared first in rows.
func TopChampions(rows []MatchRow, limit int) []ChampionCount {
	counts := []ChampionCount{}
	index := map[string]int{}

	for _, row := range rows {
		if idx, found := index[row.ChampionName]; found {
			counts[idx].Count++

			continue
		}

		index[row.ChampionName] = len(counts)
		counts = append(counts, ChampionCount{Name: row.ChampionName, IconRef: row.ChampionIconRef, Count: 1})
	}

	// Stable sort keeps first seen order for equal counts.
	slices.SortStableFunc(counts, func(a, b ChampionCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}

	return counts
}

func mean[T constraints.Integer | constraints.Float](values []T) float64 {
	if len(values) == 0 {
		return 0
	}

	var total float64
	for _, value := range values {
		total += float64(value)
	}

	return total / float64(len(values))
}
