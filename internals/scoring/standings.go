package scoring

import (
	"sort"

	"github.com/wib2/futsal-record/internals/state"
)

// StandingRow is one team's line in the session league table.
type StandingRow struct {
	Team         state.TeamID `json:"team"`
	Points       int          `json:"pts"`
	GoalsFor     int          `json:"gf"`
	GoalsAgainst int          `json:"ga"`
	GoalsDiff    int          `json:"gd"`
	Wins         int          `json:"w"`
	Draws        int          `json:"d"`
	Losses       int          `json:"l"`
}

// ComputeStandings folds a session's matches into the three-team league
// table: win 3 / draw 1 / loss 0, both teams tallying for/against on every
// match. Order is descending points, then goal difference, then goals for,
// then team id — the fixed tie-break the league has always published.
func ComputeStandings(matches []state.Match) []StandingRow {
	byTeam := map[state.TeamID]*StandingRow{}
	rows := make([]StandingRow, 0, len(state.TeamIDs))
	for _, tid := range state.TeamIDs {
		rows = append(rows, StandingRow{Team: tid})
	}
	for i := range rows {
		byTeam[rows[i].Team] = &rows[i]
	}

	for _, m := range matches {
		home, away := byTeam[m.Home], byTeam[m.Away]
		if home == nil || away == nil {
			continue
		}
		hg, ag := m.HomeGoals, m.AwayGoals
		home.GoalsFor += hg
		home.GoalsAgainst += ag
		away.GoalsFor += ag
		away.GoalsAgainst += hg
		switch {
		case hg > ag:
			home.Points += 3
			home.Wins++
			away.Losses++
		case hg < ag:
			away.Points += 3
			away.Wins++
			home.Losses++
		default:
			home.Points++
			away.Points++
			home.Draws++
			away.Draws++
		}
	}

	for i := range rows {
		rows[i].GoalsDiff = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalsDiff != b.GoalsDiff {
			return a.GoalsDiff > b.GoalsDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	return rows
}

// rankBonus is the fixed bonus table for exactly three teams.
var rankBonus = [3]int{4, 2, 1}

// TeamBonus maps each team to its rank bonus: 1st 4, 2nd 2, 3rd 1.
func TeamBonus(standings []StandingRow) map[state.TeamID]int {
	out := map[state.TeamID]int{}
	for i, row := range standings {
		if i < len(rankBonus) {
			out[row.Team] = rankBonus[i]
		}
	}
	return out
}
