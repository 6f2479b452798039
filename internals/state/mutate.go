package state

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrEmptyName      = errors.New("player name is empty")
	ErrDuplicateName  = errors.New("player name already exists")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownMatch   = errors.New("unknown match")
	ErrUnknownTeam    = errors.New("unknown team")
	ErrPlayerInactive = errors.New("player is inactive")
)

var nameCollator = collate.New(language.Korean)

// patchCurrent clones the snapshot, materializes the current session (lazy
// creation on first touch) and hands it to fn. The clone is returned, so
// every mutation has value semantics.
func patchCurrent(s PersistShape, fn func(ses *Session)) PersistShape {
	next := s.Clone()
	key := EnsureSunday(next.SessionDate)
	next.SessionDate = key
	ses, ok := next.SessionsByDate[key]
	if !ok {
		ses = EmptySession()
	}
	fn(&ses)
	next.SessionsByDate[key] = ses
	return next
}

// AddPlayer appends a new active field player to the global registry and
// re-sorts the registry by Korean collation, as the roster list displays it.
func AddPlayer(s PersistShape, name string) (PersistShape, error) {
	nm := strings.TrimSpace(name)
	if nm == "" {
		return s, ErrEmptyName
	}
	for _, p := range s.Players {
		if p.Name == nm {
			return s, ErrDuplicateName
		}
	}
	next := s.Clone()
	next.Players = append(next.Players, Player{
		ID:     uuid.NewString(),
		Name:   nm,
		Active: true,
		Pos:    PosField,
	})
	slices.SortStableFunc(next.Players, func(a, b Player) int {
		return nameCollator.CompareString(a.Name, b.Name)
	})
	return next, nil
}

// UpdatePlayer edits a player's name and/or position in place. Empty patch
// fields keep current values.
func UpdatePlayer(s PersistShape, id, name, pos string) (PersistShape, error) {
	next := s.Clone()
	for i, p := range next.Players {
		if p.ID != id {
			continue
		}
		if nm := strings.TrimSpace(name); nm != "" {
			next.Players[i].Name = nm
		}
		if pos == PosKeeper || pos == PosField {
			next.Players[i].Pos = pos
		}
		return next, nil
	}
	return s, ErrUnknownPlayer
}

// TogglePlayerActive flips the active flag. Players are never hard-deleted;
// deactivation just hides them from roster pickers.
func TogglePlayerActive(s PersistShape, id string) (PersistShape, error) {
	next := s.Clone()
	for i, p := range next.Players {
		if p.ID == id {
			next.Players[i].Active = !p.Active
			return next, nil
		}
	}
	return s, ErrUnknownPlayer
}

// SetGlobalTeamName sets the default display name for a team across all dates.
func SetGlobalTeamName(s PersistShape, team TeamID, name string) (PersistShape, error) {
	if !validTeam(team) {
		return s, ErrUnknownTeam
	}
	next := s.Clone()
	if next.TeamNames == nil {
		next.TeamNames = map[TeamID]string{}
	}
	next.TeamNames[team] = name
	return next, nil
}

// ToggleRoster adds or removes a player from a team's roster for the current
// session. Adding removes the player from the other two teams first: one
// team per player per date.
func ToggleRoster(s PersistShape, team TeamID, playerID string) (PersistShape, error) {
	if !validTeam(team) {
		return s, ErrUnknownTeam
	}
	p, ok := s.PlayerByID(playerID)
	if !ok {
		return s, ErrUnknownPlayer
	}
	if onRoster := slices.Contains(s.CurrentSession().Rosters[team], playerID); !onRoster && !p.Active {
		return s, ErrPlayerInactive
	}
	return patchCurrent(s, func(ses *Session) {
		if slices.Contains(ses.Rosters[team], playerID) {
			ses.Rosters[team] = remove(ses.Rosters[team], playerID)
			if ses.DefAwards[team] == playerID {
				delete(ses.DefAwards, team)
			}
			return
		}
		for _, tid := range TeamIDs {
			if tid != team {
				ses.Rosters[tid] = remove(ses.Rosters[tid], playerID)
				if ses.DefAwards[tid] == playerID {
					delete(ses.DefAwards, tid)
				}
			}
		}
		ses.Rosters[team] = append(ses.Rosters[team], playerID)
	}), nil
}

// The league plays a repeating three-round pattern; new matches suggest the
// pairing for their slot so scorekeepers only adjust the odd exception.
var pairingPattern = [3][2]TeamID{
	{TeamA, TeamB},
	{TeamB, TeamC},
	{TeamC, TeamA},
}

// AddMatch appends a match to the current session with the next sequence
// number and the suggested home/away pairing for that slot.
func AddMatch(s PersistShape) (PersistShape, Match) {
	var created Match
	next := patchCurrent(s, func(ses *Session) {
		// Seq stays unique across mid-session deletes, so it walks past the
		// highest number ever assigned rather than counting matches.
		seq := 1
		for _, m := range ses.Matches {
			if m.Seq >= seq {
				seq = m.Seq + 1
			}
		}
		pair := pairingPattern[(seq-1)%3]
		created = Match{
			ID:   uuid.NewString(),
			Seq:  seq,
			Home: pair[0],
			Away: pair[1],
		}
		ses.Matches = append(ses.Matches, created)
	})
	return next, created
}

// MatchPatch carries partial match edits. Nil fields are left untouched; a
// pointer to the empty string clears a keeper assignment.
type MatchPatch struct {
	Home       *TeamID `json:"home,omitempty"`
	Away       *TeamID `json:"away,omitempty"`
	HomeGoals  *int    `json:"hg,omitempty"`
	AwayGoals  *int    `json:"ag,omitempty"`
	HomeKeeper *string `json:"gk_home,omitempty"`
	AwayKeeper *string `json:"gk_away,omitempty"`
}

// UpdateMatch applies a partial edit to one match of the current session.
func UpdateMatch(s PersistShape, matchID string, patch MatchPatch) (PersistShape, error) {
	found := false
	next := patchCurrent(s, func(ses *Session) {
		for i, m := range ses.Matches {
			if m.ID != matchID {
				continue
			}
			found = true
			if patch.Home != nil && validTeam(*patch.Home) {
				m.Home = *patch.Home
			}
			if patch.Away != nil && validTeam(*patch.Away) {
				m.Away = *patch.Away
			}
			if patch.HomeGoals != nil {
				m.HomeGoals = nonNegative(*patch.HomeGoals)
			}
			if patch.AwayGoals != nil {
				m.AwayGoals = nonNegative(*patch.AwayGoals)
			}
			if patch.HomeKeeper != nil {
				m.HomeKeeper = *patch.HomeKeeper
			}
			if patch.AwayKeeper != nil {
				m.AwayKeeper = *patch.AwayKeeper
			}
			ses.Matches[i] = m
			return
		}
	})
	if !found {
		return s, ErrUnknownMatch
	}
	return next, nil
}

// DeleteMatch removes a match and its stat entries from the current session.
func DeleteMatch(s PersistShape, matchID string) (PersistShape, error) {
	found := false
	next := patchCurrent(s, func(ses *Session) {
		for i, m := range ses.Matches {
			if m.ID == matchID {
				ses.Matches = append(ses.Matches[:i], ses.Matches[i+1:]...)
				delete(ses.MatchStats, matchID)
				found = true
				return
			}
		}
	})
	if !found {
		return s, ErrUnknownMatch
	}
	return next, nil
}

// SetMatchStat records one player's goals/assists for one match. Negative
// inputs clamp to zero rather than erroring.
func SetMatchStat(s PersistShape, matchID, playerID string, goals, assists int) (PersistShape, error) {
	if _, ok := s.PlayerByID(playerID); !ok {
		return s, ErrUnknownPlayer
	}
	found := false
	next := patchCurrent(s, func(ses *Session) {
		for _, m := range ses.Matches {
			if m.ID == matchID {
				found = true
				break
			}
		}
		if !found {
			return
		}
		row := ses.MatchStats[matchID]
		if row == nil {
			row = map[string]StatLine{}
		}
		row[playerID] = StatLine{Goals: nonNegative(goals), Assists: nonNegative(assists)}
		ses.MatchStats[matchID] = row
	})
	if !found {
		return s, ErrUnknownMatch
	}
	return next, nil
}

// SetDefensiveAward picks (or clears, with an empty player id) the +2
// defensive award recipient for one team this date.
func SetDefensiveAward(s PersistShape, team TeamID, playerID string) (PersistShape, error) {
	if !validTeam(team) {
		return s, ErrUnknownTeam
	}
	return patchCurrent(s, func(ses *Session) {
		if playerID == "" {
			delete(ses.DefAwards, team)
			return
		}
		if ses.DefAwards == nil {
			ses.DefAwards = map[TeamID]string{}
		}
		ses.DefAwards[team] = playerID
	}), nil
}

// SetNotes replaces the current session's free-form notes.
func SetNotes(s PersistShape, notes string) PersistShape {
	return patchCurrent(s, func(ses *Session) {
		ses.Notes = notes
	})
}

// SetSessionTeamName sets a display-name override scoped to this date only.
func SetSessionTeamName(s PersistShape, team TeamID, name string) (PersistShape, error) {
	if !validTeam(team) {
		return s, ErrUnknownTeam
	}
	return patchCurrent(s, func(ses *Session) {
		if ses.TeamNames == nil {
			ses.TeamNames = map[TeamID]string{}
		}
		if name == "" {
			delete(ses.TeamNames, team)
			return
		}
		ses.TeamNames[team] = name
	}), nil
}

// SetSessionLook records the per-date formation choice and jersey colors.
func SetSessionLook(s PersistShape, formation string, jerseys map[TeamID]string) PersistShape {
	return patchCurrent(s, func(ses *Session) {
		ses.Formation = formation
		if len(jerseys) == 0 {
			return
		}
		if ses.Jerseys == nil {
			ses.Jerseys = map[TeamID]string{}
		}
		for _, tid := range TeamIDs {
			if c, ok := jerseys[tid]; ok {
				if c == "" {
					delete(ses.Jerseys, tid)
					continue
				}
				ses.Jerseys[tid] = c
			}
		}
	})
}

// ChangeDate switches the selected date, snapping to Sunday and lazily
// creating the session on first visit. Sessions are never deleted.
func ChangeDate(s PersistShape, date string) PersistShape {
	next := s.Clone()
	key := EnsureSunday(date)
	next.SessionDate = key
	if _, ok := next.SessionsByDate[key]; !ok {
		next.SessionsByDate[key] = EmptySession()
	}
	return next
}

func remove(list []string, id string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
