package rank_test

import (
	"testing"

	"github.com/despectus/despectus/internal/rank"
	"github.com/stretchr/testify/require"
)

func TestNextRankLabelDivisionStep(t *testing.T) {
	for _, tier := range []rank.Tier{rank.Iron, rank.Bronze, rank.Silver, rank.Gold, rank.Platinum, rank.Emerald, rank.Diamond} {
		for division, expected := range map[rank.Division]rank.Division{
			rank.DivisionIV:  rank.DivisionIII,
			rank.DivisionIII: rank.DivisionII,
			rank.DivisionII:  rank.DivisionI,
		} {
			label, ok := rank.NextRankLabel(tier, division)
			require.True(t, ok)
			require.Equal(t, tier.Title()+" "+string(expected), label)
		}
	}

	label, ok := rank.NextRankLabel(rank.Gold, rank.DivisionIII)
	require.True(t, ok)
	require.Equal(t, "Gold II", label)
}

func TestNextRankLabelTierStep(t *testing.T) {
	testCases := []struct {
		tier     rank.Tier
		division rank.Division
		expected string
		ok       bool
	}{
		{rank.Iron, rank.DivisionI, "Bronze IV", true},
		{rank.Gold, rank.DivisionI, "Platinum IV", true},
		{rank.Emerald, rank.DivisionI, "Diamond IV", true},
		{rank.Diamond, rank.DivisionI, "Master", true},
		{rank.Master, rank.DivisionI, "Grandmaster", true},
		{rank.Master, rank.DivisionNone, "Grandmaster", true},
		{rank.Grandmaster, rank.DivisionNone, "Challenger", true},
		{rank.Challenger, rank.DivisionI, "", false},
		{rank.Challenger, rank.DivisionNone, "", false},
		{rank.Unranked, rank.DivisionNone, "", false},
		{rank.Gold, rank.DivisionNone, "", false},
		{rank.Tier("WOOD"), rank.DivisionIV, "", false},
	}

	for _, testCase := range testCases {
		label, ok := rank.NextRankLabel(testCase.tier, testCase.division)
		require.Equal(t, testCase.ok, ok, "%s %s", testCase.tier, testCase.division)
		require.Equal(t, testCase.expected, label)
	}
}

func TestEstimateGamesToNext(t *testing.T) {
	require.Equal(t, 1, rank.EstimateGamesToNext(78, 22))
	require.Equal(t, 5, rank.EstimateGamesToNext(0, 22))
	require.Equal(t, 1, rank.EstimateGamesToNext(99, 1))
	require.Equal(t, 1, rank.EstimateGamesToNext(100, 22))
	require.Equal(t, 1, rank.EstimateGamesToNext(250, 22))
	require.Equal(t, 100, rank.EstimateGamesToNext(0, 0))
	require.Equal(t, 4, rank.EstimateGamesToNext(40, 16))
}

func TestParseTier(t *testing.T) {
	for input, expected := range map[string]rank.Tier{
		"gold":       rank.Gold,
		" DIAMOND ":  rank.Diamond,
		"NA":         rank.Unranked,
		"none":       rank.Unranked,
		"":           rank.Unranked,
		"Challenger": rank.Challenger,
	} {
		tier, ok := rank.ParseTier(input)
		require.True(t, ok, input)
		require.Equal(t, expected, tier)
	}

	_, ok := rank.ParseTier("WOOD")
	require.False(t, ok)

	division, okDiv := rank.ParseDivision("iii")
	require.True(t, okDiv)
	require.Equal(t, rank.DivisionIII, division)

	_, okBad := rank.ParseDivision("V")
	require.False(t, okBad)
}

func TestSnapshot(t *testing.T) {
	snap := rank.Snapshot{Tier: rank.Gold, Division: rank.DivisionII, LeaguePoints: 56, Wins: 30, Losses: 10}
	require.Equal(t, 40, snap.Games())
	require.InDelta(t, 75.0, snap.WinRate(), 0.001)
	require.Equal(t, "Gold II", snap.Label())

	label, games, ok := snap.Next(22)
	require.True(t, ok)
	require.Equal(t, "Gold I", label)
	require.Equal(t, 2, games)

	require.Zero(t, rank.Snapshot{}.WinRate())
	require.Equal(t, "Master", rank.Snapshot{Tier: rank.Master, Division: rank.DivisionI}.Label())
}
