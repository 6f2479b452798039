package scoring

import (
	"reflect"
	"testing"

	"github.com/wib2/futsal-record/internals/state"
)

func TestComputeStandingsSingleMatch(t *testing.T) {
	matches := []state.Match{
		{ID: "m1", Seq: 1, Home: state.TeamA, Away: state.TeamB, HomeGoals: 3, AwayGoals: 1},
	}

	rows := ComputeStandings(matches)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Idle C sits on goal difference 0 and outranks losing B at -2.
	want := []StandingRow{
		{Team: state.TeamA, Points: 3, GoalsFor: 3, GoalsAgainst: 1, GoalsDiff: 2, Wins: 1},
		{Team: state.TeamC},
		{Team: state.TeamB, GoalsFor: 1, GoalsAgainst: 3, GoalsDiff: -2, Losses: 1},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("standings = %+v, want %+v", rows, want)
	}

	bonus := TeamBonus(rows)
	if bonus[state.TeamA] != 4 || bonus[state.TeamC] != 2 || bonus[state.TeamB] != 1 {
		t.Fatalf("bonus = %+v, want A:4 C:2 B:1", bonus)
	}
}

func TestComputeStandingsDeterminism(t *testing.T) {
	matches := []state.Match{
		{ID: "m1", Home: state.TeamA, Away: state.TeamB, HomeGoals: 2, AwayGoals: 2},
		{ID: "m2", Home: state.TeamB, Away: state.TeamC, HomeGoals: 0, AwayGoals: 1},
		{ID: "m3", Home: state.TeamC, Away: state.TeamA, HomeGoals: 4, AwayGoals: 4},
	}

	first := ComputeStandings(matches)
	second := ComputeStandings(matches)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different standings:\n%+v\n%+v", first, second)
	}
}

func TestComputeStandingsResultCounts(t *testing.T) {
	matches := []state.Match{
		{ID: "m1", Home: state.TeamA, Away: state.TeamB, HomeGoals: 1, AwayGoals: 0},
		{ID: "m2", Home: state.TeamB, Away: state.TeamC, HomeGoals: 2, AwayGoals: 2},
		{ID: "m3", Home: state.TeamC, Away: state.TeamA, HomeGoals: 0, AwayGoals: 3},
		{ID: "m4", Home: state.TeamA, Away: state.TeamB, HomeGoals: 0, AwayGoals: 5},
	}

	played := map[state.TeamID]int{}
	for _, m := range matches {
		played[m.Home]++
		played[m.Away]++
	}

	for _, row := range ComputeStandings(matches) {
		if got := row.Wins + row.Draws + row.Losses; got != played[row.Team] {
			t.Fatalf("team %s: W+D+L = %d, want %d", row.Team, got, played[row.Team])
		}
	}
}

func TestComputeStandingsDraw(t *testing.T) {
	rows := ComputeStandings([]state.Match{
		{ID: "m1", Home: state.TeamB, Away: state.TeamC, HomeGoals: 2, AwayGoals: 2},
	})

	for _, row := range rows {
		switch row.Team {
		case state.TeamB, state.TeamC:
			if row.Points != 1 || row.Draws != 1 {
				t.Fatalf("team %s: pts=%d draws=%d, want 1/1", row.Team, row.Points, row.Draws)
			}
		case state.TeamA:
			if row.Points != 0 {
				t.Fatalf("idle team got points: %+v", row)
			}
		}
	}
}

func TestComputeStandingsTieBreaks(t *testing.T) {
	tests := []struct {
		name    string
		matches []state.Match
		order   []state.TeamID
	}{
		{
			name:    "no matches falls back to team id",
			matches: nil,
			order:   []state.TeamID{state.TeamA, state.TeamB, state.TeamC},
		},
		{
			name: "goals for beats team id",
			matches: []state.Match{
				// B and C draw 3-3, both level with A on points after A draws 0-0 twice.
				{ID: "m1", Home: state.TeamB, Away: state.TeamC, HomeGoals: 3, AwayGoals: 3},
				{ID: "m2", Home: state.TeamA, Away: state.TeamB, HomeGoals: 0, AwayGoals: 0},
				{ID: "m3", Home: state.TeamA, Away: state.TeamC, HomeGoals: 0, AwayGoals: 0},
			},
			order: []state.TeamID{state.TeamB, state.TeamC, state.TeamA},
		},
		{
			name: "goals for breaks equal goal difference",
			matches: []state.Match{
				// A and B both win by one, but B scores five doing it.
				{ID: "m1", Home: state.TeamA, Away: state.TeamC, HomeGoals: 1, AwayGoals: 0},
				{ID: "m2", Home: state.TeamB, Away: state.TeamC, HomeGoals: 5, AwayGoals: 4},
			},
			order: []state.TeamID{state.TeamB, state.TeamA, state.TeamC},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ComputeStandings(tt.matches)
			for i, want := range tt.order {
				if rows[i].Team != want {
					t.Fatalf("rank %d = %s, want %s (rows %+v)", i+1, rows[i].Team, want, rows)
				}
			}
		})
	}
}

func TestComputeStandingsTieBreaksByGoalDifference(t *testing.T) {
	// A and B split their pairings with C identically on points; B's win is
	// by seven, A's by one, so goal difference separates them.
	matches := []state.Match{
		{ID: "m1", Home: state.TeamA, Away: state.TeamC, HomeGoals: 1, AwayGoals: 0},
		{ID: "m2", Home: state.TeamC, Away: state.TeamA, HomeGoals: 1, AwayGoals: 0},
		{ID: "m3", Home: state.TeamB, Away: state.TeamC, HomeGoals: 7, AwayGoals: 0},
		{ID: "m4", Home: state.TeamC, Away: state.TeamB, HomeGoals: 1, AwayGoals: 0},
	}

	rows := ComputeStandings(matches)
	want := []state.TeamID{state.TeamC, state.TeamB, state.TeamA}
	for i, tid := range want {
		if rows[i].Team != tid {
			t.Fatalf("rank %d = %s, want %s (rows %+v)", i+1, rows[i].Team, tid, rows)
		}
	}
}
