package state

import "sort"

// Normalize is the single defaulting step applied to every snapshot coming
// from outside (Postgres row, Redis mirror, remote fanout). It fills missing
// maps, snaps session keys to Sundays, and clamps counters so the
// aggregation core can assume well-typed input and never has to error.
func Normalize(s PersistShape) PersistShape {
	out := PersistShape{
		Players:        make([]Player, 0, len(s.Players)),
		TeamNames:      map[TeamID]string{},
		SessionsByDate: map[string]Session{},
	}

	for _, p := range s.Players {
		if p.ID == "" {
			continue
		}
		if p.Pos != PosKeeper {
			p.Pos = PosField
		}
		out.Players = append(out.Players, p)
	}

	for _, tid := range TeamIDs {
		if nm, ok := s.TeamNames[tid]; ok {
			out.TeamNames[tid] = nm
		}
	}

	// Stored keys are visited in sorted order so a snap collision always
	// resolves the same way: a key already on a Sunday wins over snapped
	// strays, and among strays the earliest date survives.
	dates := make([]string, 0, len(s.SessionsByDate))
	for date := range s.SessionsByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		key := EnsureSunday(date)
		if _, dup := out.SessionsByDate[key]; dup && date != key {
			continue
		}
		out.SessionsByDate[key] = normalizeSession(s.SessionsByDate[date])
	}

	out.SessionDate = EnsureSunday(s.SessionDate)
	if _, ok := out.SessionsByDate[out.SessionDate]; !ok {
		out.SessionsByDate[out.SessionDate] = EmptySession()
	}
	return out
}

func normalizeSession(ses Session) Session {
	out := EmptySession()

	for _, tid := range TeamIDs {
		for _, pid := range ses.Rosters[tid] {
			if pid != "" {
				out.Rosters[tid] = append(out.Rosters[tid], pid)
			}
		}
	}

	for i, m := range ses.Matches {
		if m.ID == "" {
			continue
		}
		if !validTeam(m.Home) {
			m.Home = TeamA
		}
		if !validTeam(m.Away) {
			m.Away = TeamB
		}
		m.HomeGoals = nonNegative(m.HomeGoals)
		m.AwayGoals = nonNegative(m.AwayGoals)
		if m.Seq <= 0 {
			m.Seq = i + 1
		}
		out.Matches = append(out.Matches, m)
	}

	for mid, lines := range ses.MatchStats {
		if mid == "" || lines == nil {
			continue
		}
		row := map[string]StatLine{}
		for pid, line := range lines {
			if pid == "" {
				continue
			}
			row[pid] = StatLine{
				Goals:   nonNegative(line.Goals),
				Assists: nonNegative(line.Assists),
			}
		}
		out.MatchStats[mid] = row
	}

	for _, tid := range TeamIDs {
		if pid := ses.DefAwards[tid]; pid != "" {
			out.DefAwards[tid] = pid
		}
	}

	out.Notes = ses.Notes
	out.Formation = ses.Formation
	if len(ses.TeamNames) > 0 {
		out.TeamNames = map[TeamID]string{}
		for _, tid := range TeamIDs {
			if nm := ses.TeamNames[tid]; nm != "" {
				out.TeamNames[tid] = nm
			}
		}
	}
	if len(ses.Jerseys) > 0 {
		out.Jerseys = map[TeamID]string{}
		for _, tid := range TeamIDs {
			if c := ses.Jerseys[tid]; c != "" {
				out.Jerseys[tid] = c
			}
		}
	}
	return out
}

func validTeam(t TeamID) bool {
	return t == TeamA || t == TeamB || t == TeamC
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
