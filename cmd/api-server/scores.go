package main

import (
	"net/http"

	"github.com/wib2/futsal-record/internals/scoring"
	"github.com/wib2/futsal-record/internals/state"
)

// GetStandings returns the session league table plus the rank bonus column.
func (app *App) GetStandings(w http.ResponseWriter, r *http.Request) {
	snap := app.Syncer.Snapshot()
	ses := snap.SessionFor(dateOrCurrent(r, snap))

	standings := scoring.ComputeStandings(ses.Matches)
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{
		"standings":  standings,
		"team_bonus": scoring.TeamBonus(standings),
		"team_names": snap.EffectiveTeamNames(ses),
	}})
}

// GetDailyScores returns the per-player table for one date, sorted for display.
func (app *App) GetDailyScores(w http.ResponseWriter, r *http.Request) {
	snap := app.Syncer.Snapshot()
	ses := snap.SessionFor(dateOrCurrent(r, snap))

	scores := scoring.CalcScores(ses, snap.Players, snap.EffectiveTeamNames(ses))
	sendResponse(w, httpResp{Status: http.StatusOK, Data: scoring.SortDaily(scores)})
}

// GetCumulativeScores returns lifetime totals across every session date.
func (app *App) GetCumulativeScores(w http.ResponseWriter, r *http.Request) {
	snap := app.Syncer.Snapshot()

	scores := scoring.CalcCumulative(snap.SessionsByDate, snap.Players, func(ses state.Session) map[state.TeamID]string {
		return snap.EffectiveTeamNames(ses)
	})
	sendResponse(w, httpResp{Status: http.StatusOK, Data: scoring.SortCumulative(scores)})
}

func dateOrCurrent(r *http.Request, snap state.PersistShape) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return snap.SessionDate
}
