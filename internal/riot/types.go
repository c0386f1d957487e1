package riot

// Account is the account-v1 riot id lookup response.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Match is the subset of the match-v5 payload that is consumed.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation int64         `json:"gameCreation"`
	GameDuration int64         `json:"gameDuration"`
	QueueID      int           `json:"queueId"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	PUUID                string `json:"puuid"`
	Win                  bool   `json:"win"`
	ChampionID           int    `json:"championId"`
	ChampionName         string `json:"championName"`
	Kills                int    `json:"kills"`
	Deaths               int    `json:"deaths"`
	Assists              int    `json:"assists"`
	TotalMinionsKilled   int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled int    `json:"neutralMinionsKilled"`
	VisionScore          int    `json:"visionScore"`
}

// Participant returns the entry for the puuid if they played in the match.
func (m Match) Participant(puuid string) (Participant, bool) {
	for _, participant := range m.Info.Participants {
		if participant.PUUID == puuid {
			return participant, true
		}
	}

	return Participant{}, false
}
