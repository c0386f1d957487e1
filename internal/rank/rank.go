// Package rank implements the solo queue ladder arithmetic: parsing tiers and divisions, the
// next promotion target and the estimated number of wins needed to reach it.
package rank

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// SoloQueue is the only queue type tracked.
const SoloQueue = "RANKED_SOLO_5x5"

// promotionLP is the number of league points required to promote from any division.
const promotionLP = 100

type Tier string

const (
	Unranked    Tier = "UNRANKED"
	Iron        Tier = "IRON"
	Bronze      Tier = "BRONZE"
	Silver      Tier = "SILVER"
	Gold        Tier = "GOLD"
	Platinum    Tier = "PLATINUM"
	Emerald     Tier = "EMERALD"
	Diamond     Tier = "DIAMOND"
	Master      Tier = "MASTER"
	Grandmaster Tier = "GRANDMASTER"
	Challenger  Tier = "CHALLENGER"
)

// divisionTiers are the tiers split into four divisions, lowest first.
var divisionTiers = []Tier{Iron, Bronze, Silver, Gold, Platinum, Emerald, Diamond}

// Tiers returns every ranked tier lowest first.
func Tiers() []Tier {
	return append(slices.Clone(divisionTiers), Master, Grandmaster, Challenger)
}

// ParseTier normalises the client provided tier. The client uses "NA" and "NONE" for players
// without placements.
func ParseTier(value string) (Tier, bool) {
	tier := Tier(strings.ToUpper(strings.TrimSpace(value)))
	switch tier {
	case "", "NA", "NONE", Unranked:
		return Unranked, true
	}

	if slices.Contains(Tiers(), tier) {
		return tier, true
	}

	return Unranked, false
}

// Title returns the display form, eg. "Gold".
func (t Tier) Title() string {
	if t == "" {
		return ""
	}

	lower := strings.ToLower(string(t))

	return strings.ToUpper(lower[:1]) + lower[1:]
}

// HasDivisions reports if the tier is split into IV..I.
func (t Tier) HasDivisions() bool {
	return slices.Contains(divisionTiers, t)
}

func (t Tier) Ranked() bool {
	return t != Unranked && t != ""
}

type Division string

const (
	DivisionNone Division = ""
	DivisionIV   Division = "IV"
	DivisionIII  Division = "III"
	DivisionII   Division = "II"
	DivisionI    Division = "I"
)

// divisions are ordered lowest first.
var divisions = []Division{DivisionIV, DivisionIII, DivisionII, DivisionI}

// ParseDivision accepts roman numerals in any case. Apex tiers report placeholder values
// such as "NA" which map to DivisionNone.
func ParseDivision(value string) (Division, bool) {
	division := Division(strings.ToUpper(strings.TrimSpace(value)))
	if slices.Contains(divisions, division) {
		return division, true
	}

	switch division {
	case "", "NA", "NONE", "—", "-":
		return DivisionNone, true
	}

	return DivisionNone, false
}

// NextRankLabel returns the display label of the next promotion target. False is returned for
// the top of the ladder, unranked players and invalid tier/division pairs.
func NextRankLabel(tier Tier, division Division) (string, bool) {
	switch tier {
	case Challenger:
		return "", false
	case Grandmaster:
		return Challenger.Title(), true
	case Master:
		return Grandmaster.Title(), true
	}

	tierIdx := slices.Index(divisionTiers, tier)
	divIdx := slices.Index(divisions, division)
	if tierIdx < 0 || divIdx < 0 {
		return "", false
	}

	if division != DivisionI {
		return fmt.Sprintf("%s %s", tier.Title(), divisions[divIdx+1]), true
	}

	if tier == Diamond {
		return Master.Title(), true
	}

	return fmt.Sprintf("%s %s", divisionTiers[tierIdx+1].Title(), DivisionIV), true
}

// EstimateGamesToNext returns the number of wins needed to cover the remaining league points at
// the given average gain per win. Always at least one.
func EstimateGamesToNext(leaguePoints int, avgLPPerWin int) int {
	remaining := max(0, promotionLP-leaguePoints)
	games := int(math.Ceil(float64(remaining) / float64(max(1, avgLPPerWin))))

	return max(1, games)
}

// Snapshot is the solo queue standing read from the local client.
type Snapshot struct {
	Queue        string
	Tier         Tier
	Division     Division
	LeaguePoints int
	Wins         int
	Losses       int
}

func (s Snapshot) Games() int {
	return s.Wins + s.Losses
}

func (s Snapshot) WinRate() float64 {
	games := s.Games()
	if games == 0 {
		return 0
	}

	return float64(s.Wins) / float64(games) * 100
}

// Label renders the standing, eg. "Gold II" or "Master".
func (s Snapshot) Label() string {
	if s.Division == DivisionNone || !s.Tier.HasDivisions() {
		return s.Tier.Title()
	}

	return fmt.Sprintf("%s %s", s.Tier.Title(), s.Division)
}

// Next returns the promotion label and estimated games at the supplied average.
func (s Snapshot) Next(avgLPPerWin int) (string, int, bool) {
	label, ok := NextRankLabel(s.Tier, s.Division)
	if !ok {
		return "", 0, false
	}

	return label, EstimateGamesToNext(s.LeaguePoints, avgLPPerWin), true
}
