package stats_test

import (
	"testing"

	"github.com/despectus/despectus/internal/riot"
	"github.com/despectus/despectus/internal/stats"
	"github.com/stretchr/testify/require"
)

type champions map[int][2]string

func (c champions) Champion(id int) (string, string, bool) {
	champ, found := c[id]

	return champ[0], champ[1], found
}

var directory = champions{
	103: {"Ahri", "https://cdn/img/champion/Ahri.png"},
	64:  {"Lee Sin", "https://cdn/img/champion/LeeSin.png"},
	222: {"Jinx", "https://cdn/img/champion/Jinx.png"},
	1:   {"Annie", "https://cdn/img/champion/Annie.png"},
}

func newMatch(id string, duration int64, participants ...riot.Participant) riot.Match {
	return riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info:     riot.MatchInfo{GameDuration: duration, Participants: participants},
	}
}

func TestBuildRow(t *testing.T) {
	match := newMatch("EUW1_1", 1799,
		riot.Participant{PUUID: "other", ChampionID: 1},
		riot.Participant{
			PUUID: "me", ChampionID: 103, Win: true, Kills: 7, Deaths: 2, Assists: 11,
			TotalMinionsKilled: 180, NeutralMinionsKilled: 12, VisionScore: 21,
		})

	row, ok := stats.BuildRow(match, "me", directory)
	require.True(t, ok)
	require.Equal(t, stats.MatchRow{
		MatchID:         "EUW1_1",
		Win:             true,
		ChampionName:    "Ahri",
		ChampionIconRef: "https://cdn/img/champion/Ahri.png",
		Kills:           7,
		Deaths:          2,
		Assists:         11,
		CS:              192,
		VisionScore:     21,
		DurationMinutes: 29,
	}, row)
	require.Equal(t, "7/2/11", row.KDAString())
	require.InDelta(t, 9.0, row.KDA(), 0.0001)
	require.InDelta(t, 192.0/29.0, row.CSPerMinute(), 0.0001)

	_, absent := stats.BuildRow(match, "missing", directory)
	require.False(t, absent)
}

func TestBuildRowUnknownChampion(t *testing.T) {
	row, ok := stats.BuildRow(newMatch("EUW1_2", 30, riot.Participant{PUUID: "me", ChampionID: 9999}), "me", directory)
	require.True(t, ok)
	require.Equal(t, "Champion 9999", row.ChampionName)
	require.Empty(t, row.ChampionIconRef)
	require.Equal(t, 1, row.DurationMinutes)

	rowNil, okNil := stats.BuildRow(newMatch("EUW1_3", 600, riot.Participant{PUUID: "me", ChampionID: 103}), "me", nil)
	require.True(t, okNil)
	require.Equal(t, "Champion 103", rowNil.ChampionName)
}

func TestBuildRowsDropsAbsentPlayer(t *testing.T) {
	matches := []riot.Match{
		newMatch("EUW1_3", 1200, riot.Participant{PUUID: "me", ChampionID: 103, Win: true}),
		newMatch("EUW1_2", 1200, riot.Participant{PUUID: "someone"}),
		newMatch("EUW1_1", 1200, riot.Participant{PUUID: "me", ChampionID: 64}),
	}

	rows := stats.BuildRows(matches, "me", directory)
	require.Len(t, rows, 2)
	require.Equal(t, "EUW1_3", rows[0].MatchID)
	require.Equal(t, "EUW1_1", rows[1].MatchID)

	agg := stats.Summarise(rows)
	require.InDelta(t, 50.0, agg.Summary.WinRate, 0.0001)
	require.Equal(t, 1, agg.Summary.Wins)
	require.Equal(t, 1, agg.Summary.Losses)
}

func TestSummariseEmpty(t *testing.T) {
	agg := stats.Summarise(nil)
	require.True(t, agg.Empty())
	require.Nil(t, agg.Summary)
	require.NotNil(t, agg.TopChampions)
	require.Empty(t, agg.TopChampions)
}

func TestSummariseDeathless(t *testing.T) {
	rows := []stats.MatchRow{
		{ChampionName: "Ahri", Kills: 5, Deaths: 0, Assists: 5, Win: true, CS: 200, DurationMinutes: 25},
		{ChampionName: "Ahri", Kills: 2, Deaths: 2, Assists: 2, CS: 100, DurationMinutes: 35},
		{ChampionName: "Jinx", Kills: 0, Deaths: 4, Assists: 4, CS: 150, DurationMinutes: 30},
	}

	agg := stats.Summarise(rows)
	require.NotNil(t, agg.Summary)
	require.InDelta(t, 10.0, agg.Summary.BestKDA, 0.0001)
	require.InDelta(t, (10.0+2.0+1.0)/3, agg.Summary.AvgKDA, 0.0001)
	require.InDelta(t, 150.0, agg.Summary.AvgCS, 0.0001)
	require.InDelta(t, 30.0, agg.Summary.AvgDuration, 0.0001)
	require.InDelta(t, 100.0/3, agg.Summary.WinRate, 0.0001)
	require.Equal(t, 1, agg.Summary.Wins)
	require.Equal(t, 2, agg.Summary.Losses)
}

func TestTopChampionsTieBreak(t *testing.T) {
	var rows []stats.MatchRow
	for _, name := range []string{"Jinx", "Ahri", "Ahri", "Jinx", "Annie", "Ahri", "Jinx", "Lee Sin", "Annie", "Lee Sin"} {
		rows = append(rows, stats.MatchRow{ChampionName: name, ChampionIconRef: name + ".png"})
	}

	top := stats.Summarise(rows).TopChampions
	require.Equal(t, []stats.ChampionCount{
		{Name: "Jinx", IconRef: "Jinx.png", Count: 3},
		{Name: "Ahri", IconRef: "Ahri.png", Count: 3},
		{Name: "Annie", IconRef: "Annie.png", Count: 2},
	}, top)

	require.Len(t, stats.TopChampions(rows[:1], 3), 1)
}
