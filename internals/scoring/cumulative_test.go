package scoring

import (
	"testing"

	"github.com/wib2/futsal-record/internals/state"
)

func staticTeamNames(state.Session) map[state.TeamID]string {
	return testTeamNames
}

func TestCalcCumulativeSingleSessionMatchesDaily(t *testing.T) {
	ses := state.EmptySession()
	ses.Rosters[state.TeamA] = []string{"p1", "gk1"}
	ses.Rosters[state.TeamB] = []string{"p2"}
	ses.Matches = []state.Match{
		{ID: "m1", Home: state.TeamA, Away: state.TeamB, HomeGoals: 2, AwayGoals: 0},
	}
	ses.MatchStats["m1"] = map[string]state.StatLine{
		"p1": {Goals: 2, Assists: 1},
	}

	daily := CalcScores(ses, testPlayers(), testTeamNames)
	cum := CalcCumulative(map[string]state.Session{"2026-08-23": ses}, testPlayers(), staticTeamNames)

	if len(cum) != len(daily) {
		t.Fatalf("row count mismatch: cumulative %d, daily %d", len(cum), len(daily))
	}
	for pid, d := range daily {
		c, ok := cum[pid]
		if !ok {
			t.Fatalf("player %s missing from cumulative", pid)
		}
		if c.Goals != d.Goals || c.Assists != d.Assists || c.CleanSheets != d.CleanSheets ||
			c.DefBonus != d.DefBonus || c.TeamBonus != d.TeamBonus || c.Total != d.Total {
			t.Fatalf("%s: cumulative %+v != daily %+v", pid, c, d)
		}
		if c.Days != 1 {
			t.Fatalf("%s: days = %d, want 1", pid, c.Days)
		}
		if c.Average != float64(d.Total) {
			t.Fatalf("%s: average = %v, want %d", pid, c.Average, d.Total)
		}
	}
}

func TestCalcCumulativeDaysCountRosterAppearances(t *testing.T) {
	first := state.EmptySession()
	first.Rosters[state.TeamA] = []string{"p1"}
	first.Matches = []state.Match{
		{ID: "m1", Home: state.TeamA, Away: state.TeamB, HomeGoals: 1, AwayGoals: 0},
	}
	first.MatchStats["m1"] = map[string]state.StatLine{"p1": {Goals: 1}}

	// Second Sunday: rostered, nothing recorded. Still counts as a day.
	second := state.EmptySession()
	second.Rosters[state.TeamB] = []string{"p1"}

	cum := CalcCumulative(map[string]state.Session{
		"2026-08-23": first,
		"2026-08-30": second,
	}, testPlayers(), staticTeamNames)

	p1 := cum["p1"]
	if p1.Days != 2 {
		t.Fatalf("days = %d, want 2", p1.Days)
	}
	if p1.Goals != 1 {
		t.Fatalf("goals = %d, want 1", p1.Goals)
	}
}

func TestCalcCumulativeAverageRounding(t *testing.T) {
	// Two idle Sundays bank the second-place bonus; the first banks a draw
	// plus two goals, so the lifetime total does not divide evenly by three.
	sessions := map[string]state.Session{}
	for i, date := range []string{"2026-08-09", "2026-08-16", "2026-08-23"} {
		ses := state.EmptySession()
		ses.Rosters[state.TeamB] = []string{"p2"}
		if i == 0 {
			ses.Matches = []state.Match{
				{ID: "m1", Home: state.TeamB, Away: state.TeamC, HomeGoals: 2, AwayGoals: 2},
			}
			ses.MatchStats["m1"] = map[string]state.StatLine{"p2": {Goals: 2}}
		}
		sessions[date] = ses
	}

	cum := CalcCumulative(sessions, testPlayers(), staticTeamNames)
	p2 := cum["p2"]
	if p2.Days != 3 {
		t.Fatalf("days = %d, want 3", p2.Days)
	}
	want := float64(p2.Total) / 3
	want = float64(int(want*100+0.5)) / 100
	if p2.Average != want {
		t.Fatalf("average = %v, want %v (total %d)", p2.Average, want, p2.Total)
	}
}

func TestSortCumulativeOrdering(t *testing.T) {
	scores := map[string]CumulativeScore{
		"a": {PlayerID: "a", Name: "이용범", Total: 10},
		"b": {PlayerID: "b", Name: "강민성", Total: 10},
		"c": {PlayerID: "c", Name: "최광민", Total: 3},
	}

	rows := SortCumulative(scores)
	want := []string{"b", "a", "c"}
	for i := range want {
		if rows[i].PlayerID != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, rows[i].PlayerID, want[i])
		}
	}
}
