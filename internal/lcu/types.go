package lcu

import (
	"strings"

	"github.com/despectus/despectus/internal/rank"
)

// Summoner is the /lol-summoner/v1/current-summoner response.
type Summoner struct {
	PUUID         string `json:"puuid"`
	AccountID     int64  `json:"accountId"`
	DisplayName   string `json:"displayName"`
	GameName      string `json:"gameName"`
	TagLine       string `json:"tagLine"`
	SummonerLevel int    `json:"summonerLevel"`
	ProfileIconID int    `json:"profileIconId"`
}

// RegionLocale is the /riotclient/region-locale response.
type RegionLocale struct {
	Region      string `json:"region"`
	Locale      string `json:"locale"`
	WebRegion   string `json:"webRegion"`
	WebLanguage string `json:"webLanguage"`
}

// ChatMe is the /lol-chat/v1/me response, the most reliable source of the riot id.
type ChatMe struct {
	GameName string `json:"gameName"`
	GameTag  string `json:"gameTag"`
	TagLine  string `json:"tagLine"`
	Name     string `json:"name"`
	PUUID    string `json:"puuid"`
	Icon     int    `json:"icon"`
}

// Tag prefers gameTag, older clients only send tagLine.
func (c ChatMe) Tag() string {
	if tag := strings.TrimSpace(c.GameTag); tag != "" {
		return tag
	}

	return strings.TrimSpace(c.TagLine)
}

// RiotID returns the gameName#tag pair, false when either half is missing.
func (c ChatMe) RiotID() (string, string, bool) {
	name := strings.TrimSpace(c.GameName)
	tag := c.Tag()
	if name == "" || tag == "" {
		return "", "", false
	}

	return name, tag, true
}

// RankedStats is the /lol-ranked/v1/current-ranked-stats response. Depending on the client
// version the queues are a list or a map keyed by queue type.
type RankedStats struct {
	Queues   []RankedQueue          `json:"queues"`
	QueueMap map[string]RankedQueue `json:"queueMap"`
}

type RankedQueue struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Division     string `json:"division"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// SoloQueue picks the ranked solo/duo entry.
func (r RankedStats) SoloQueue() (RankedQueue, bool) {
	for _, queue := range r.Queues {
		if queue.QueueType == rank.SoloQueue {
			return queue, true
		}
	}

	for key, queue := range r.QueueMap {
		if queue.QueueType == rank.SoloQueue || (queue.QueueType == "" && key == rank.SoloQueue) {
			return queue, true
		}
	}

	return RankedQueue{}, false
}

// Snapshot converts the queue into a ranked snapshot. False is returned for unranked players
// and tiers that are not recognised.
func (q RankedQueue) Snapshot() (rank.Snapshot, bool) {
	tier, validTier := rank.ParseTier(q.Tier)
	if !validTier || !tier.Ranked() {
		return rank.Snapshot{}, false
	}

	division, _ := rank.ParseDivision(q.Division)
	if !tier.HasDivisions() {
		division = rank.DivisionNone
	}

	return rank.Snapshot{
		Queue:        rank.SoloQueue,
		Tier:         tier,
		Division:     division,
		LeaguePoints: max(0, q.LeaguePoints),
		Wins:         q.Wins,
		Losses:       q.Losses,
	}, true
}
