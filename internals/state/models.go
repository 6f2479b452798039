package state

// TeamID is one of the fixed three team keys.
type TeamID string

const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
	TeamC TeamID = "C"
)

// TeamIDs in display order. Team count is fixed at three everywhere.
var TeamIDs = []TeamID{TeamA, TeamB, TeamC}

// Position labels match what the scorekeepers see in the UI.
const (
	PosField  = "필드"
	PosKeeper = "GK"
)

// Player is global: the registry is shared across every session date.
// Players are deactivated, never deleted.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Pos    string `json:"pos"`
}

// Match belongs to exactly one session. Seq is a 1-based ordering hint
// assigned at creation. Keeper fields are player ids, empty when unset.
type Match struct {
	ID         string `json:"id"`
	Seq        int    `json:"seq"`
	Home       TeamID `json:"home"`
	Away       TeamID `json:"away"`
	HomeGoals  int    `json:"hg"`
	AwayGoals  int    `json:"ag"`
	HomeKeeper string `json:"gk_home,omitempty"`
	AwayKeeper string `json:"gk_away,omitempty"`
}

// StatLine is one player's recorded events for one match. Clean sheets are
// derived from scores and keeper assignments, never stored.
type StatLine struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
}

// Session holds everything tied to one calendar date (snapped to Sunday).
type Session struct {
	Rosters    map[TeamID][]string            `json:"rosters"`
	Matches    []Match                        `json:"matches"`
	MatchStats map[string]map[string]StatLine `json:"match_stats"`
	DefAwards  map[TeamID]string              `json:"def_awards"`
	Notes      string                         `json:"notes"`

	// Per-date cosmetics. TeamNames overrides the global names when non-empty.
	TeamNames map[TeamID]string `json:"team_names,omitempty"`
	Formation string            `json:"formation,omitempty"`
	Jerseys   map[TeamID]string `json:"jerseys,omitempty"`
}

// PersistShape is the root aggregate: the entire application state,
// serialized wholesale on every change.
type PersistShape struct {
	Players        []Player           `json:"players"`
	TeamNames      map[TeamID]string  `json:"team_names"`
	SessionsByDate map[string]Session `json:"sessions_by_date"`
	SessionDate    string             `json:"session_date"`
}

// EmptySession returns a session with every map initialized, so callers can
// index into it without nil checks.
func EmptySession() Session {
	return Session{
		Rosters:    map[TeamID][]string{TeamA: {}, TeamB: {}, TeamC: {}},
		Matches:    []Match{},
		MatchStats: map[string]map[string]StatLine{},
		DefAwards:  map[TeamID]string{},
	}
}

// SessionFor returns the session stored under the Sunday-snapped key for
// date, or an empty session if none exists yet.
func (s PersistShape) SessionFor(date string) Session {
	if ses, ok := s.SessionsByDate[EnsureSunday(date)]; ok {
		return ses
	}
	return EmptySession()
}

// CurrentSession is the session for the currently selected date.
func (s PersistShape) CurrentSession() Session {
	return s.SessionFor(s.SessionDate)
}

// PlayerByID looks a player up in the global registry. Soft failure: a
// missing id yields a zero Player.
func (s PersistShape) PlayerByID(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// EffectiveTeamNames resolves the display name per team: the session's
// override when set, otherwise the global default.
func (s PersistShape) EffectiveTeamNames(ses Session) map[TeamID]string {
	out := make(map[TeamID]string, len(TeamIDs))
	for _, tid := range TeamIDs {
		if nm := ses.TeamNames[tid]; nm != "" {
			out[tid] = nm
			continue
		}
		if nm := s.TeamNames[tid]; nm != "" {
			out[tid] = nm
			continue
		}
		out[tid] = "팀 " + string(tid)
	}
	return out
}
