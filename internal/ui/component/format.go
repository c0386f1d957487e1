package component

import (
	"fmt"
	"strings"

	"github.com/despectus/despectus/internal/rank"
	"github.com/despectus/despectus/internal/stats"
)

func plural(count int, word string) string {
	if count == 1 {
		return word
	}

	return word + "s"
}

// FormatEstimate renders the promotion estimate, eg. "~3 wins @ 22 LP/win".
func FormatEstimate(games int, avgLPPerWin int) string {
	return fmt.Sprintf("~%d %s @ %d LP/win", games, plural(games, "win"), avgLPPerWin)
}

// FormatRecord renders "30W 20L (60.0%)".
func FormatRecord(wins int, losses int, winRate float64) string {
	return fmt.Sprintf("%dW %dL (%.1f%%)", wins, losses, winRate)
}

func FormatStanding(standing rank.Snapshot) string {
	if !standing.Tier.HasDivisions() {
		return fmt.Sprintf("%s %d LP", standing.Label(), standing.LeaguePoints)
	}

	return fmt.Sprintf("%s • %d LP", standing.Label(), standing.LeaguePoints)
}

func FormatResult(win bool) string {
	if win {
		return "WIN"
	}

	return "LOSS"
}

// FormatTopChampions renders "Ahri ×3, Lee Sin ×1".
func FormatTopChampions(champions []stats.ChampionCount) string {
	if len(champions) == 0 {
		return "—"
	}

	parts := make([]string, len(champions))
	for idx, champion := range champions {
		parts[idx] = fmt.Sprintf("%s ×%d", champion.Name, champion.Count)
	}

	return strings.Join(parts, ", ")
}

func FormatMinutes(minutes float64) string {
	return fmt.Sprintf("%.0fm", minutes)
}
