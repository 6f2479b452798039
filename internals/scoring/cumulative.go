package scoring

import (
	"math"
	"sort"

	"github.com/wib2/futsal-record/internals/state"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CumulativeScore is one player's lifetime line. Days counts sessions where
// the player appeared on any roster, whether or not events were recorded.
type CumulativeScore struct {
	PlayerID    string  `json:"player_id"`
	Name        string  `json:"name"`
	TeamName    string  `json:"team_name"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	CleanSheets int     `json:"cleansheets"`
	DefBonus    int     `json:"def"`
	TeamBonus   int     `json:"team_bonus"`
	Total       int     `json:"total"`
	Days        int     `json:"days"`
	Average     float64 `json:"average"`
}

// CalcCumulative folds every session's daily aggregate into lifetime totals.
// Re-derived in full on each call; the dataset is a handful of Sundays.
func CalcCumulative(sessionsByDate map[string]state.Session, players []state.Player, teamNames func(state.Session) map[state.TeamID]string) map[string]CumulativeScore {
	dates := make([]string, 0, len(sessionsByDate))
	for d := range sessionsByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := map[string]CumulativeScore{}
	for _, date := range dates {
		ses := sessionsByDate[date]
		daily := CalcScores(ses, players, teamNames(ses))

		present := map[string]bool{}
		for _, tid := range state.TeamIDs {
			for _, pid := range ses.Rosters[tid] {
				present[pid] = true
			}
		}

		for pid, row := range daily {
			agg := out[pid]
			agg.PlayerID = pid
			agg.Name = row.Name
			if row.TeamName != noTeam {
				agg.TeamName = row.TeamName
			}
			agg.Goals += row.Goals
			agg.Assists += row.Assists
			agg.CleanSheets += row.CleanSheets
			agg.DefBonus += row.DefBonus
			agg.TeamBonus += row.TeamBonus
			agg.Total += row.Total
			if present[pid] {
				agg.Days++
			}
			out[pid] = agg
		}
	}

	for pid, agg := range out {
		if agg.Days > 0 {
			agg.Average = round2(float64(agg.Total) / float64(agg.Days))
		}
		out[pid] = agg
	}
	return out
}

// SortCumulative flattens the lifetime map into display order: total
// descending, ties by Korean collation on name ascending.
func SortCumulative(scores map[string]CumulativeScore) []CumulativeScore {
	rows := make([]CumulativeScore, 0, len(scores))
	for _, row := range scores {
		rows = append(rows, row)
	}
	ko := collate.New(language.Korean)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return ko.CompareString(rows[i].Name, rows[j].Name) < 0
	})
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
