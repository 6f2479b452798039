package scoring

import (
	"sort"

	"github.com/wib2/futsal-record/internals/state"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// noTeam marks a player credited with stats while not on any roster.
const noTeam = "-"

// PlayerScore is one player's line in the daily table. Total is always the
// plain integer sum of the five components.
type PlayerScore struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Team        string `json:"team"`
	TeamName    string `json:"team_name"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	CleanSheets int    `json:"cleansheets"`
	DefBonus    int    `json:"def"`
	TeamBonus   int    `json:"team_bonus"`
	Total       int    `json:"total"`
}

// CalcScores aggregates one session into per-player lines. Pure: rosters,
// matches, stats and the player registry in, a map keyed by player id out.
// Every rostered player gets a row even with no recorded events.
func CalcScores(ses state.Session, players []state.Player, teamNames map[state.TeamID]string) map[string]PlayerScore {
	reg := make(map[string]state.Player, len(players))
	for _, p := range players {
		reg[p.ID] = p
	}

	teamOf := func(pid string) string {
		for _, tid := range state.TeamIDs {
			for _, id := range ses.Rosters[tid] {
				if id == pid {
					return string(tid)
				}
			}
		}
		return noTeam
	}

	standings := ComputeStandings(ses.Matches)
	bonus := TeamBonus(standings)
	keeperBonus := splitKeeperBonus(ses, reg)

	out := map[string]PlayerScore{}
	touch := func(pid string) PlayerScore {
		if row, ok := out[pid]; ok {
			return row
		}
		return PlayerScore{PlayerID: pid, Team: teamOf(pid)}
	}

	for _, m := range ses.Matches {
		for pid, line := range ses.MatchStats[m.ID] {
			row := touch(pid)
			row.Goals += line.Goals
			row.Assists += line.Assists
			out[pid] = row
		}
		if m.AwayGoals == 0 {
			if pid := matchKeeper(ses, reg, m, m.Home); pid != "" {
				row := touch(pid)
				row.CleanSheets++
				out[pid] = row
			}
		}
		if m.HomeGoals == 0 {
			if pid := matchKeeper(ses, reg, m, m.Away); pid != "" {
				row := touch(pid)
				row.CleanSheets++
				out[pid] = row
			}
		}
	}

	for _, tid := range state.TeamIDs {
		for _, pid := range ses.Rosters[tid] {
			if _, ok := out[pid]; !ok {
				out[pid] = PlayerScore{PlayerID: pid, Team: string(tid)}
			}
		}
	}

	for pid, row := range out {
		if row.Team != noTeam {
			tid := state.TeamID(row.Team)
			if ses.DefAwards[tid] == pid {
				row.DefBonus = 2
			}
			if tb, ranked := keeperBonus[pid]; ranked {
				row.TeamBonus = tb
			} else {
				row.TeamBonus = bonus[tid]
			}
			row.TeamName = teamNames[tid]
		} else {
			row.TeamName = noTeam
		}
		if p, ok := reg[pid]; ok {
			row.Name = p.Name
		} else {
			row.Name = "?"
		}
		row.Total = row.Goals + row.Assists + row.CleanSheets + row.DefBonus + row.TeamBonus
		out[pid] = row
	}
	return out
}

// matchKeeper resolves the credited goalkeeper for one side of a match: the
// explicitly assigned keeper when set, otherwise the sole GK-position player
// on that team's roster. Two or more unassigned keepers credit nobody.
func matchKeeper(ses state.Session, reg map[string]state.Player, m state.Match, team state.TeamID) string {
	if team == m.Home && m.HomeKeeper != "" {
		return m.HomeKeeper
	}
	if team == m.Away && m.AwayKeeper != "" {
		return m.AwayKeeper
	}
	gks := rosterKeepers(ses, reg, team)
	if len(gks) == 1 {
		return gks[0]
	}
	return ""
}

func rosterKeepers(ses state.Session, reg map[string]state.Player, team state.TeamID) []string {
	var gks []string
	for _, pid := range ses.Rosters[team] {
		if reg[pid].Pos == state.PosKeeper {
			gks = append(gks, pid)
		}
	}
	return gks
}

// keeperSplit is the ranked bonus for rosters carrying two or more
// goalkeepers: top keeper 4, second 2, the rest nothing.
var keeperSplit = [2]int{4, 2}

// splitKeeperBonus returns the ranked team bonus per goalkeeper, for teams
// whose roster has at least two of them. Keepers are ranked by matches their
// team won while they were the assigned keeper, ties broken by Korean
// collation on name. Single-keeper teams get no entry and fall through to
// the flat rank bonus.
func splitKeeperBonus(ses state.Session, reg map[string]state.Player) map[string]int {
	out := map[string]int{}
	ko := collate.New(language.Korean)

	for _, tid := range state.TeamIDs {
		gks := rosterKeepers(ses, reg, tid)
		if len(gks) < 2 {
			continue
		}

		wins := map[string]int{}
		for _, m := range ses.Matches {
			var won bool
			switch tid {
			case m.Home:
				won = m.HomeGoals > m.AwayGoals
			case m.Away:
				won = m.AwayGoals > m.HomeGoals
			default:
				continue
			}
			if !won {
				continue
			}
			if pid := matchKeeper(ses, reg, m, tid); pid != "" {
				wins[pid]++
			}
		}

		sort.SliceStable(gks, func(i, j int) bool {
			if wins[gks[i]] != wins[gks[j]] {
				return wins[gks[i]] > wins[gks[j]]
			}
			return ko.CompareString(reg[gks[i]].Name, reg[gks[j]].Name) < 0
		})

		for i, pid := range gks {
			if i < len(keeperSplit) {
				out[pid] = keeperSplit[i]
			} else {
				out[pid] = 0
			}
		}
	}
	return out
}

// SortDaily flattens the daily map into display order: total descending,
// ties by Korean collation on name ascending.
func SortDaily(scores map[string]PlayerScore) []PlayerScore {
	rows := make([]PlayerScore, 0, len(scores))
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
