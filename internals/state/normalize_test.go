package state

import "testing"

func TestNormalizeFillsDefaults(t *testing.T) {
	// A snapshot as it might arrive from a mangled or hand-edited payload.
	raw := PersistShape{
		Players: []Player{
			{ID: "p1", Name: "강민성", Active: true, Pos: "수비"}, // unknown position
			{Name: "유령"}, // no id
		},
		SessionsByDate: map[string]Session{
			"2026-08-24": { // Monday key
				Matches: []Match{
					{ID: "m1", Home: "Z", Away: TeamB, HomeGoals: -3, AwayGoals: -1},
				},
			},
		},
		SessionDate: "junk",
	}

	got := Normalize(raw)

	if len(got.Players) != 1 {
		t.Fatalf("players = %+v, want the id-less one dropped", got.Players)
	}
	if got.Players[0].Pos != PosField {
		t.Fatalf("unknown position not defaulted: %+v", got.Players[0])
	}

	if _, ok := got.SessionsByDate["2026-08-30"]; !ok {
		t.Fatalf("monday key not snapped to sunday: %v", keys(got.SessionsByDate))
	}

	ses := got.SessionsByDate["2026-08-30"]
	if ses.Rosters == nil || ses.MatchStats == nil || ses.DefAwards == nil {
		t.Fatalf("session maps not initialized: %+v", ses)
	}
	m := ses.Matches[0]
	if m.HomeGoals != 0 || m.AwayGoals != 0 {
		t.Fatalf("negative goals not clamped: %+v", m)
	}
	if m.Home != TeamA {
		t.Fatalf("invalid home team not defaulted: %+v", m)
	}
	if m.Seq != 1 {
		t.Fatalf("missing seq not backfilled: %+v", m)
	}

	// The selected date always resolves to an existing Sunday session.
	if got.SessionDate != EnsureSunday(got.SessionDate) {
		t.Fatalf("session date not a sunday: %s", got.SessionDate)
	}
	if _, ok := got.SessionsByDate[got.SessionDate]; !ok {
		t.Fatal("selected date has no session")
	}
}

func TestNormalizeStatLines(t *testing.T) {
	raw := PersistShape{
		SessionsByDate: map[string]Session{
			"2026-08-23": {
				Matches: []Match{{ID: "m1", Home: TeamA, Away: TeamB}},
				MatchStats: map[string]map[string]StatLine{
					"m1": {
						"p1": {Goals: -2, Assists: 3},
						"":   {Goals: 9},
					},
					"": {"p2": {Goals: 1}},
				},
			},
		},
		SessionDate: "2026-08-23",
	}

	ses := Normalize(raw).SessionsByDate["2026-08-23"]
	line := ses.MatchStats["m1"]["p1"]
	if line.Goals != 0 || line.Assists != 3 {
		t.Fatalf("stat line = %+v, want goals clamped", line)
	}
	if _, ok := ses.MatchStats["m1"][""]; ok {
		t.Fatal("empty player id kept")
	}
	if _, ok := ses.MatchStats[""]; ok {
		t.Fatal("empty match id kept")
	}
}

func TestNormalizeSnapCollisionDeterministic(t *testing.T) {
	// Monday and Tuesday keys both snap to the same Sunday: the earlier
	// stray wins, every time.
	raw := PersistShape{
		SessionsByDate: map[string]Session{
			"2026-08-24": {Notes: "monday stray"},
			"2026-08-25": {Notes: "tuesday stray"},
		},
		SessionDate: "2026-08-30",
	}
	for i := 0; i < 10; i++ {
		got := Normalize(raw).SessionsByDate["2026-08-30"]
		if got.Notes != "monday stray" {
			t.Fatalf("run %d: survivor = %q, want the earliest stray", i, got.Notes)
		}
	}

	// A key already on the Sunday beats any snapped stray.
	raw.SessionsByDate["2026-08-30"] = Session{Notes: "the sunday itself"}
	for i := 0; i < 10; i++ {
		got := Normalize(raw).SessionsByDate["2026-08-30"]
		if got.Notes != "the sunday itself" {
			t.Fatalf("run %d: survivor = %q, want the exact key", i, got.Notes)
		}
	}
}

func keys(m map[string]Session) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
