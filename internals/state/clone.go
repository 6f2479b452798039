package state

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Clone deep-copies a snapshot. Mutation entry points clone first and return
// the copy, so callers holding an older snapshot never see it change.
func (s PersistShape) Clone() PersistShape {
	out := PersistShape{
		Players:        slices.Clone(s.Players),
		TeamNames:      maps.Clone(s.TeamNames),
		SessionsByDate: make(map[string]Session, len(s.SessionsByDate)),
		SessionDate:    s.SessionDate,
	}
	for date, ses := range s.SessionsByDate {
		out.SessionsByDate[date] = ses.Clone()
	}
	return out
}

// Clone deep-copies a session.
func (ses Session) Clone() Session {
	out := Session{
		Rosters:    make(map[TeamID][]string, len(ses.Rosters)),
		Matches:    slices.Clone(ses.Matches),
		MatchStats: make(map[string]map[string]StatLine, len(ses.MatchStats)),
		DefAwards:  maps.Clone(ses.DefAwards),
		Notes:      ses.Notes,
		TeamNames:  maps.Clone(ses.TeamNames),
		Formation:  ses.Formation,
		Jerseys:    maps.Clone(ses.Jerseys),
	}
	for tid, roster := range ses.Rosters {
		out.Rosters[tid] = slices.Clone(roster)
	}
	for mid, lines := range ses.MatchStats {
		out.MatchStats[mid] = maps.Clone(lines)
	}
	return out
}
